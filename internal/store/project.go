package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mvaldez/projecttracker/internal/storage"
)

// Project statuses.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusStuck      = "Stuck"
)

// Project is a unit of trackable work. The JSON field names match the durable
// storage format, so a persisted collection round-trips byte-compatible with
// what the web client historically wrote.
type Project struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DueDate       string    `json:"dueDate"`
	Progress      int       `json:"progress"`
	Status        string    `json:"status"`
	CreatorName   string    `json:"creatorName,omitempty"`
	CreatorAvatar string    `json:"creatorAvatar,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ProjectInput carries the fields accepted when creating a project.
type ProjectInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	DueDate       string `json:"dueDate"`
	Progress      *int   `json:"progress"`
	Status        string `json:"status"`
	CreatorName   string `json:"creatorName"`
	CreatorAvatar string `json:"creatorAvatar"`
}

// ProjectUpdate carries a partial update; nil fields are left untouched.
type ProjectUpdate struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	DueDate       *string `json:"dueDate"`
	Progress      *int    `json:"progress"`
	Status        *string `json:"status"`
	CreatorName   *string `json:"creatorName"`
	CreatorAvatar *string `json:"creatorAvatar"`
}

// ProjectStore owns the canonical project collection and keeps it mirrored to
// durable storage under the "projects" key. The collection is kept in
// insertion order; consumers sort for display.
type ProjectStore struct {
	mu          sync.Mutex
	storage     storage.Storage
	seed        []Project
	projects    []Project
	loaded      bool
	loadErr     string
	lastID      int64
	subscribers []func()
	now         func() time.Time
}

func NewProjectStore(st storage.Storage, seed []Project) *ProjectStore {
	return &ProjectStore{
		storage: st,
		seed:    seed,
		now:     time.Now,
	}
}

// Load reads the persisted collection, falling back to the seed dataset when
// storage has no usable data. A stored empty array counts as absent: an
// as-yet-unloaded session may already have scheduled a write of its initial
// empty state, and that placeholder must not shadow the seed. Read or parse
// failures also fall back to the seed and are kept as an observable error
// state; the store stays usable. Only a fully completed load (or a later
// explicit mutation) persists, so a load in progress can never clobber a
// previously saved non-empty collection.
func (s *ProjectStore) Load() {
	s.mu.Lock()

	raw, err := s.storage.Get(storage.KeyProjects)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		s.projects = cloneProjects(s.seed)
	case err != nil:
		s.loadErr = "failed to load projects"
		s.projects = cloneProjects(s.seed)
	default:
		var saved []Project
		if raw == "" || raw == "[]" {
			s.projects = cloneProjects(s.seed)
		} else if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			s.loadErr = "failed to load projects"
			s.projects = cloneProjects(s.seed)
		} else if len(saved) == 0 {
			s.projects = cloneProjects(s.seed)
		} else {
			s.projects = saved
		}
	}

	for _, p := range s.projects {
		if n, err := strconv.ParseInt(p.ID, 10, 64); err == nil && n > s.lastID {
			s.lastID = n
		}
	}

	s.loaded = true
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
}

// LoadError returns the non-fatal error state recorded during Load, or an
// empty string.
func (s *ProjectStore) LoadError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Add creates a new project. Required fields are title, description and
// dueDate; progress defaults to 0 and status to "In Progress".
func (s *ProjectStore) Add(input ProjectInput) (*Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title", ErrMissingField)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description", ErrMissingField)
	}
	if strings.TrimSpace(input.DueDate) == "" {
		return nil, fmt.Errorf("%w: dueDate", ErrMissingField)
	}

	progress := 0
	if input.Progress != nil {
		progress = clampProgress(*input.Progress)
	}
	status := input.Status
	if status == "" {
		status = StatusInProgress
	}

	s.mu.Lock()
	now := s.now()
	project := Project{
		ID:            s.nextIDLocked(now),
		Title:         input.Title,
		Description:   input.Description,
		DueDate:       input.DueDate,
		Progress:      progress,
		Status:        status,
		CreatorName:   input.CreatorName,
		CreatorAvatar: input.CreatorAvatar,
		CreatedAt:     now,
	}
	s.projects = append(s.projects, project)
	err := s.persistLocked()
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	s.notify()
	created := project
	return &created, nil
}

// Update merges the given fields into the project with the given id. Missing
// ids are a silent no-op. Identifier comparison is string-normalized since
// ids may arrive from numeric contexts.
func (s *ProjectStore) Update(id string, upd ProjectUpdate) error {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	p := &s.projects[idx]
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.DueDate != nil {
		p.DueDate = *upd.DueDate
	}
	if upd.Progress != nil {
		p.Progress = clampProgress(*upd.Progress)
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.CreatorName != nil {
		p.CreatorName = *upd.CreatorName
	}
	if upd.CreatorAvatar != nil {
		p.CreatorAvatar = *upd.CreatorAvatar
	}
	err := s.persistLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// Delete removes the project with the given id. Missing ids are a silent
// no-op, so deleting twice is safe.
func (s *ProjectStore) Delete(id string) error {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)
	err := s.persistLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// Get returns a copy of the project with the given id.
func (s *ProjectStore) Get(id string) (*Project, bool) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return nil, false
	}
	p := s.projects[idx]
	return &p, true
}

// List returns a snapshot of the collection in insertion order.
func (s *ProjectStore) List() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProjects(s.projects)
}

// Len returns the number of projects.
func (s *ProjectStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.projects)
}

// Subscribe registers fn to be called synchronously after every successful
// mutation and after the initial load completes.
func (s *ProjectStore) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// persistLocked mirrors the in-memory collection to durable storage as a
// single replace-whole-value write. Writes are refused until Load has
// completed so that a save scheduled early can never overwrite previously
// persisted data with an empty placeholder.
func (s *ProjectStore) persistLocked() error {
	if !s.loaded {
		return nil
	}
	data, err := json.Marshal(s.projects)
	if err != nil {
		return err
	}
	return s.storage.Set(storage.KeyProjects, string(data))
}

// nextIDLocked derives a fresh identifier from the creation timestamp in
// milliseconds. Two adds within the same millisecond would collide, so an id
// that does not exceed the previous one is bumped to previous+1; ids stay
// numeric strings and strictly monotonic.
func (s *ProjectStore) nextIDLocked(now time.Time) string {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func (s *ProjectStore) indexOfLocked(id string) int {
	for i := range s.projects {
		if strings.TrimSpace(s.projects[i].ID) == id {
			return i
		}
	}
	return -1
}

func (s *ProjectStore) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func cloneProjects(src []Project) []Project {
	dst := make([]Project, len(src))
	copy(dst, src)
	return dst
}

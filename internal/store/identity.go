package store

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/mvaldez/projecttracker/internal/storage"
	"github.com/mvaldez/projecttracker/internal/utils"
)

// Ranks selectable on the profile page, lowest first.
var Ranks = []string{"Intern", "Associate", "Senior", "Lead"}

// Avatars selectable on the login and profile pages.
var Avatars = []string{
	"https://i.pravatar.cc/150?img=3",
	"https://i.pravatar.cc/150?img=6",
	"https://i.pravatar.cc/150?img=8",
	"https://i.pravatar.cc/150?img=12",
}

// Template defaults applied when login supplies no explicit profile fields.
const (
	DefaultAvatar = "https://i.pravatar.cc/150?img=47"
	DefaultRank   = "Intern"
)

// Identity is the current session's authenticated user profile. Email is
// derived at login and immutable afterwards; name, avatar and rank are
// editable through UpdateProfile.
type Identity struct {
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Rank      string    `json:"rank"`
	LoginTime time.Time `json:"loginTime"`
}

// LoginOptions are the optional profile fields accepted at login.
type LoginOptions struct {
	Name   string
	Avatar string
	Rank   string
}

// ProfileUpdate carries a partial profile update; nil fields are untouched.
type ProfileUpdate struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
	Rank   *string `json:"rank"`
}

// IdentityStore owns the current session identity. Authentication is a mocked
// credential check: any non-empty identifier plus the shared password.
// The store persists under the "user" and "isAuthenticated" keys.
type IdentityStore struct {
	mu            sync.Mutex
	storage       storage.Storage
	passwordHash  string
	authenticated bool
	user          *Identity
	logoutHooks   []func()
	subscribers   []func()
	now           func() time.Time
}

// NewIdentityStore creates an IdentityStore. passwordHash is the bcrypt hash
// of the shared mock password.
func NewIdentityStore(st storage.Storage, passwordHash string) *IdentityStore {
	return &IdentityStore{
		storage:      st,
		passwordHash: passwordHash,
		now:          time.Now,
	}
}

// Load restores a persisted session, if any. A malformed persisted identity
// degrades to an anonymous session.
func (s *IdentityStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if flag, err := s.storage.Get(storage.KeyIsAuthenticated); err == nil {
		s.authenticated = flag == "true"
	}

	raw, err := s.storage.Get(storage.KeyUser)
	if err != nil {
		return
	}
	var user Identity
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.user = nil
		s.authenticated = false
		return
	}
	s.user = &user
}

// Login performs the mock credential check. It succeeds only when identifier
// is non-empty and password matches the shared constant. An identifier
// containing "@" is treated as an email and the username is its local part;
// otherwise the identifier is the username and a placeholder email is
// synthesized. Returns false on failure, leaving state unchanged.
func (s *IdentityStore) Login(identifier, password string, opts LoginOptions) bool {
	if identifier == "" || !utils.CheckPassword(password, s.passwordHash) {
		return false
	}

	username := strings.TrimSpace(strings.SplitN(identifier, "@", 2)[0])

	email := identifier
	if !strings.Contains(identifier, "@") {
		email = username + "@example.com"
	}

	name := opts.Name
	if name == "" {
		name = capitalize(username)
	}
	avatar := opts.Avatar
	if avatar == "" {
		avatar = DefaultAvatar
	}
	rank := opts.Rank
	if rank == "" {
		rank = DefaultRank
	}

	s.mu.Lock()
	s.authenticated = true
	s.user = &Identity{
		Name:      name,
		Username:  username,
		Email:     email,
		Avatar:    avatar,
		Rank:      rank,
		LoginTime: s.now(),
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return true
}

// UpdateProfile merges the given fields into the current identity. Returns
// false when no session is active.
func (s *IdentityStore) UpdateProfile(upd ProfileUpdate) bool {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return false
	}

	if upd.Name != nil {
		s.user.Name = *upd.Name
	}
	if upd.Avatar != nil {
		s.user.Avatar = *upd.Avatar
	}
	if upd.Rank != nil {
		s.user.Rank = *upd.Rank
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return true
}

// Logout clears the session from memory and durable storage, then fires the
// registered logout hooks. The theme reset on logout is delivered through a
// hook so the preference store keeps exclusive ownership of its keys.
func (s *IdentityStore) Logout() {
	s.mu.Lock()
	s.authenticated = false
	s.user = nil
	s.storage.Set(storage.KeyIsAuthenticated, "false")
	s.storage.Delete(storage.KeyUser)
	hooks := make([]func(), len(s.logoutHooks))
	copy(hooks, s.logoutHooks)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	s.notify()
}

// OnLogout registers fn to run after every logout.
func (s *IdentityStore) OnLogout(fn func()) {
	s.mu.Lock()
	s.logoutHooks = append(s.logoutHooks, fn)
	s.mu.Unlock()
}

// Current returns a copy of the session identity, or nil when anonymous.
func (s *IdentityStore) Current() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsAuthenticated reports whether a session is active.
func (s *IdentityStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Subscribe registers fn to be called synchronously after every state change.
func (s *IdentityStore) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *IdentityStore) persistLocked() {
	if s.authenticated {
		s.storage.Set(storage.KeyIsAuthenticated, "true")
	} else {
		s.storage.Set(storage.KeyIsAuthenticated, "false")
	}
	if s.user != nil {
		if data, err := json.Marshal(s.user); err == nil {
			s.storage.Set(storage.KeyUser, string(data))
		}
	} else {
		s.storage.Delete(storage.KeyUser)
	}
}

func (s *IdentityStore) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

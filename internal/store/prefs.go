package store

import (
	"strconv"
	"sync"

	"github.com/mvaldez/projecttracker/internal/storage"
)

// Themes cycle light -> dark -> colorful -> light.
const (
	ThemeLight    = "light"
	ThemeDark     = "dark"
	ThemeColorful = "colorful"
)

// Font size bounds in pixels.
const (
	DefaultFontSize = 16
	MinFontSize     = 12
	MaxFontSize     = 22
	FontStep        = 2
)

// Preferences is a snapshot of the presentation settings.
type Preferences struct {
	Theme      string `json:"theme"`
	ColorTheme string `json:"colorTheme,omitempty"`
	FontSize   int    `json:"fontSize"`
}

// PreferenceStore owns the persisted presentation preferences under the
// "theme", "colorTheme" and "fontSize" keys.
type PreferenceStore struct {
	mu          sync.Mutex
	storage     storage.Storage
	theme       string
	colorTheme  string
	fontSize    int
	subscribers []func()
}

func NewPreferenceStore(st storage.Storage) *PreferenceStore {
	return &PreferenceStore{
		storage:  st,
		theme:    ThemeLight,
		fontSize: DefaultFontSize,
	}
}

// Load restores persisted preferences, applying defaults for anything absent
// or malformed.
func (s *PreferenceStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if theme, err := s.storage.Get(storage.KeyTheme); err == nil && validTheme(theme) {
		s.theme = theme
	}
	if colorTheme, err := s.storage.Get(storage.KeyColorTheme); err == nil {
		s.colorTheme = colorTheme
	}
	if raw, err := s.storage.Get(storage.KeyFontSize); err == nil {
		if size, err := strconv.Atoi(raw); err == nil {
			s.fontSize = clampFontSize(size)
		}
	}
}

// Preferences returns a snapshot of the current settings.
func (s *PreferenceStore) Preferences() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Preferences{Theme: s.theme, ColorTheme: s.colorTheme, FontSize: s.fontSize}
}

// SetTheme sets the theme; unknown values are ignored and reported false.
func (s *PreferenceStore) SetTheme(theme string) bool {
	if !validTheme(theme) {
		return false
	}
	s.mu.Lock()
	s.theme = theme
	s.storage.Set(storage.KeyTheme, theme)
	s.mu.Unlock()

	s.notify()
	return true
}

// CycleTheme advances light -> dark -> colorful -> light and returns the new
// theme.
func (s *PreferenceStore) CycleTheme() string {
	s.mu.Lock()
	switch s.theme {
	case ThemeLight:
		s.theme = ThemeDark
	case ThemeDark:
		s.theme = ThemeColorful
	default:
		s.theme = ThemeLight
	}
	theme := s.theme
	s.storage.Set(storage.KeyTheme, theme)
	s.mu.Unlock()

	s.notify()
	return theme
}

// SetColorTheme stores the accent color preference.
func (s *PreferenceStore) SetColorTheme(colorTheme string) {
	s.mu.Lock()
	s.colorTheme = colorTheme
	s.storage.Set(storage.KeyColorTheme, colorTheme)
	s.mu.Unlock()

	s.notify()
}

// IncreaseFontSize bumps the font size one step, capped at MaxFontSize, and
// returns the new size.
func (s *PreferenceStore) IncreaseFontSize() int {
	return s.stepFontSize(FontStep)
}

// DecreaseFontSize lowers the font size one step, floored at MinFontSize, and
// returns the new size.
func (s *PreferenceStore) DecreaseFontSize() int {
	return s.stepFontSize(-FontStep)
}

func (s *PreferenceStore) stepFontSize(delta int) int {
	s.mu.Lock()
	s.fontSize = clampFontSize(s.fontSize + delta)
	size := s.fontSize
	s.storage.Set(storage.KeyFontSize, strconv.Itoa(size))
	s.mu.Unlock()

	s.notify()
	return size
}

// ResetTheme removes the persisted theme preference so the next session
// starts on the default. Logout is wired to this.
func (s *PreferenceStore) ResetTheme() {
	s.mu.Lock()
	s.theme = ThemeLight
	s.storage.Delete(storage.KeyTheme)
	s.mu.Unlock()

	s.notify()
}

// Subscribe registers fn to be called synchronously after every change.
func (s *PreferenceStore) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *PreferenceStore) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

func validTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark || theme == ThemeColorful
}

func clampFontSize(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

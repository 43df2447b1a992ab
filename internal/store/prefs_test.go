package store

import (
	"testing"

	"github.com/mvaldez/projecttracker/internal/storage"
)

func TestCycleTheme(t *testing.T) {
	s := NewPreferenceStore(storage.NewMemory())

	order := []string{ThemeDark, ThemeColorful, ThemeLight, ThemeDark}
	for i, want := range order {
		if got := s.CycleTheme(); got != want {
			t.Errorf("cycle %d = %q, expected %q", i, got, want)
		}
	}
}

func TestSetTheme_RejectsUnknown(t *testing.T) {
	s := NewPreferenceStore(storage.NewMemory())

	if s.SetTheme("neon") {
		t.Error("expected unknown theme to be rejected")
	}
	if got := s.Preferences().Theme; got != ThemeLight {
		t.Errorf("Theme = %q, expected default untouched", got)
	}

	if !s.SetTheme(ThemeColorful) {
		t.Error("expected valid theme to be accepted")
	}
}

func TestFontSizeBounds(t *testing.T) {
	s := NewPreferenceStore(storage.NewMemory())

	for i := 0; i < 10; i++ {
		s.IncreaseFontSize()
	}
	if got := s.Preferences().FontSize; got != MaxFontSize {
		t.Errorf("FontSize = %d, expected cap at %d", got, MaxFontSize)
	}

	for i := 0; i < 10; i++ {
		s.DecreaseFontSize()
	}
	if got := s.Preferences().FontSize; got != MinFontSize {
		t.Errorf("FontSize = %d, expected floor at %d", got, MinFontSize)
	}
}

func TestPreferencesLoad(t *testing.T) {
	mem := storage.NewMemory()
	mem.Set(storage.KeyTheme, ThemeDark)
	mem.Set(storage.KeyColorTheme, "emerald")
	mem.Set(storage.KeyFontSize, "40")

	s := NewPreferenceStore(mem)
	s.Load()

	prefs := s.Preferences()
	if prefs.Theme != ThemeDark {
		t.Errorf("Theme = %q, expected %q", prefs.Theme, ThemeDark)
	}
	if prefs.ColorTheme != "emerald" {
		t.Errorf("ColorTheme = %q, expected %q", prefs.ColorTheme, "emerald")
	}
	if prefs.FontSize != MaxFontSize {
		t.Errorf("FontSize = %d, expected out-of-range value clamped to %d", prefs.FontSize, MaxFontSize)
	}
}

func TestPreferencesLoad_MalformedFontSize(t *testing.T) {
	mem := storage.NewMemory()
	mem.Set(storage.KeyFontSize, "big")

	s := NewPreferenceStore(mem)
	s.Load()

	if got := s.Preferences().FontSize; got != DefaultFontSize {
		t.Errorf("FontSize = %d, expected default %d", got, DefaultFontSize)
	}
}

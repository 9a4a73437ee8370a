// Package theme holds the light/dark color scheme preference and persists it.
package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/bestekar/internal/models"
	"github.com/desertthunder/bestekar/internal/shared"
)

// Theme is a color scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse accepts "light" or "dark".
func Parse(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("%w: theme must be light or dark, got %q", shared.ErrInvalidArgument, s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Icon is the glyph shown on the toggle button: a moon offers dark mode, a sun offers light mode.
func (t Theme) Icon() string {
	if t == Dark {
		return "☀️"
	}
	return "🌙"
}

// Preferences is the key/value storage a [Store] persists into.
type Preferences interface {
	Get(ctx context.Context, key string) (*models.Preference, error)
	Set(ctx context.Context, pref *models.Preference) error
	Delete(ctx context.Context, key string) error
}

// Store loads and saves the theme under [models.ThemeKey].
type Store struct {
	prefs    Preferences
	fallback Theme
}

// NewStore creates a [Store]. fallback is used when nothing, or something unparseable, is saved.
func NewStore(prefs Preferences, fallback Theme) *Store {
	if fallback != Dark {
		fallback = Light
	}
	return &Store{prefs: prefs, fallback: fallback}
}

// Load returns the saved theme or the fallback. Only storage failures are errors.
func (s *Store) Load(ctx context.Context) (Theme, error) {
	pref, err := s.prefs.Get(ctx, models.ThemeKey)
	if errors.Is(err, shared.ErrPreferenceMissing) {
		return s.fallback, nil
	}
	if err != nil {
		return s.fallback, err
	}

	t, err := Parse(pref.Value)
	if err != nil {
		return s.fallback, nil
	}
	return t, nil
}

// Save persists t.
func (s *Store) Save(ctx context.Context, t Theme) error {
	return s.prefs.Set(ctx, &models.Preference{Key: models.ThemeKey, Value: string(t)})
}

// Reset forgets the saved theme so Load returns the fallback again.
func (s *Store) Reset(ctx context.Context) (Theme, error) {
	if err := s.prefs.Delete(ctx, models.ThemeKey); err != nil {
		return s.fallback, err
	}
	return s.fallback, nil
}

// Toggle flips the saved theme and returns the new value.
func (s *Store) Toggle(ctx context.Context) (Theme, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return current, err
	}
	next := current.Toggle()
	if err := s.Save(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

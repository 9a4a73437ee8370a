package models

import (
	"fmt"
	"strings"
	"time"
)

// ThemeKey is the preference key holding the color scheme.
const ThemeKey = "bestekar-theme"

// Preference is a single persisted key/value setting.
type Preference struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks that the key is present.
func (p Preference) Validate() error {
	if strings.TrimSpace(p.Key) == "" {
		return fmt.Errorf("preference key is required")
	}
	return nil
}

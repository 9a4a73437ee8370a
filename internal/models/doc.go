// Package models defines the persisted entities of bestekar.
//
// The only persisted state is UI preferences:
//   - [Preference] : a key/value pair such as the selected theme
//
// Playback, generation and sample state is transient and lives in its own packages.
package models

// Package repositories implements SQLite persistence for [models.Preference].
//
// Key Implementations:
//   - [PreferenceRepository] : upsert and lookup of key/value preferences
package repositories

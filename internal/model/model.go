// Package model defines the domain models for alarmbook.
package model

// Model is the interface implemented by records kept in the key/value
// view-state store.
type Model interface {
	// SetKey sets the database key for this model.
	SetKey(key string)
	// GetKey returns the database key for this model.
	GetKey() string
}

// Key constants for the key/value store.
const (
	KeyViewState = "viewstate"
)

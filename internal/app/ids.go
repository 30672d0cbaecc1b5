package app

import "github.com/google/uuid"

// newSessionID returns a random identifier for a game session.
func newSessionID() string {
	return uuid.NewString()
}

// validSessionID reports whether id looks like one produced by newSessionID.
// Lookups with anything else are answered with ErrNotFound without touching the map.
func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

package state

import "github.com/google/uuid"

// newID returns a fresh identity for a drawable. Redo restores the same
// value, so ids are stable for the lifetime of the session.
func newID() string {
	return uuid.NewString()
}

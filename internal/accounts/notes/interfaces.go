package notes

import "context"

// NoteStore defines the interface for note persistence. ExistsForUser is the
// contract consumed by the user service's referential guard.
type NoteStore interface {
	ExistsForUser(ctx context.Context, userID string) (bool, error)
}

package notes

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// PostgresStore implements the NoteStore interface using PostgreSQL
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL note store
func NewPostgresStore(db *bun.DB) NoteStore {
	return &PostgresStore{db: db}
}

// ExistsForUser reports whether at least one note references the user
func (s *PostgresStore) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("userID cannot be empty")
	}

	count, err := s.db.NewSelect().
		Model((*Note)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check notes for user: %w", err)
	}
	return count > 0, nil
}

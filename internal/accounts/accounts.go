package accounts

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/accountd/accountd/internal/accounts/notes"
	"github.com/accountd/accountd/internal/accounts/users"
	"github.com/accountd/accountd/internal/auth"
)

// Services bundles the account services built over a shared database handle.
// The handle is constructed by the caller and passed in explicitly; there is
// no package-level connection state.
type Services struct {
	Users     users.UserManager
	UserStore users.UserStore
	NoteStore notes.NoteStore
}

// NewServices wires the stores and services for the accounts subsystem
func NewServices(db *bun.DB, hasher auth.Hasher) *Services {
	userStore := users.NewPostgresStore(db)
	noteStore := notes.NewPostgresStore(db)

	return &Services{
		Users:     users.NewService(userStore, noteStore, hasher),
		UserStore: userStore,
		NoteStore: noteStore,
	}
}

// Initialize creates the schema the accounts service depends on
func Initialize(ctx context.Context, db *bun.DB) error {
	if err := CreateTables(ctx, db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if err := CreateIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

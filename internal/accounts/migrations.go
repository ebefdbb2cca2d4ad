package accounts

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/accountd/accountd/internal/accounts/notes"
	"github.com/accountd/accountd/internal/accounts/users"
)

// indexes created outside of bun's table builder. The case-folded unique
// index is the authoritative guard against duplicate usernames; the raw
// column's unique constraint remains as the backstop on the stored value.
var indexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_lower_idx ON users (lower(username))`,
	`CREATE INDEX IF NOT EXISTS notes_user_id_idx ON notes (user_id)`,
}

// CreateTables creates all tables for the accounts service
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*users.User)(nil),
		(*notes.Note)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}

	return nil
}

// CreateIndexes creates all indexes for the accounts service
func CreateIndexes(ctx context.Context, db *bun.DB) error {
	for _, indexSQL := range indexes {
		_, err := db.ExecContext(ctx, indexSQL)
		if err != nil {
			return fmt.Errorf("failed to create index with SQL %q: %w", indexSQL, err)
		}
	}

	return nil
}

package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PostgresStore implements the UserStore interface using PostgreSQL
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL user store
func NewPostgresStore(db *bun.DB) UserStore {
	return &PostgresStore{db: db}
}

// isUniqueViolation reports whether the driver error is a Postgres unique
// constraint failure.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

// ListUsers retrieves all users, excluding the secret hash from the projection
func (s *PostgresStore) ListUsers(ctx context.Context) ([]*User, error) {
	var list []*User
	err := s.db.NewSelect().
		Model(&list).
		ExcludeColumn("secret_hash").
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return list, nil
}

// GetUser retrieves a user by ID from storage
func (s *PostgresStore) GetUser(ctx context.Context, userID string) (*User, error) {
	user := &User{}
	err := s.db.NewSelect().Model(user).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewUserNotFoundError(userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// FindByUsername retrieves a user whose username equals the given name under
// case folding. The comparison is anchored over the full string, never a
// substring or pattern match. Returns (nil, nil) when no user matches.
func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	err := s.db.NewSelect().
		Model(user).
		Where("lower(username) = lower(?)", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// CreateUser assigns an ID and persists the user. A unique-index collision
// from a racing insert surfaces as a duplicate-username error.
func (s *PostgresStore) CreateUser(ctx context.Context, user *User) (*User, error) {
	user.ID = uuid.New().String()

	_, err := s.db.NewInsert().
		Model(user).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, NewDuplicateUsernameError(user.Username)
		}
		return nil, NewInsertionFailedError(user.Username, err)
	}

	return user, nil
}

// UpdateUser persists a full replacement of the user's mutable fields
func (s *PostgresStore) UpdateUser(ctx context.Context, user *User) error {
	result, err := s.db.NewUpdate().
		Model(user).
		Column("username", "secret_hash", "roles", "active", "updated_at").
		Where("id = ?", user.ID).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return NewDuplicateUsernameError(user.Username)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return NewUserNotFoundError(user.ID)
	}
	return nil
}

// DeleteUser removes a user from storage
func (s *PostgresStore) DeleteUser(ctx context.Context, userID string) error {
	result, err := s.db.NewDelete().Model((*User)(nil)).Where("id = ?", userID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return NewUserNotFoundError(userID)
	}
	return nil
}

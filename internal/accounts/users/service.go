package users

import (
	"context"
	"fmt"
	"time"

	"github.com/accountd/accountd/internal/auth"
)

// Service implements the UserManager interface
type Service struct {
	store  UserStore
	notes  NoteChecker
	hasher auth.Hasher
}

// NewService creates a new user service
func NewService(store UserStore, notes NoteChecker, hasher auth.Hasher) UserManager {
	return &Service{
		store:  store,
		notes:  notes,
		hasher: hasher,
	}
}

// ListUsers returns all users, secret hashes excluded
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	list, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if len(list) == 0 {
		return nil, NewNoUsersFoundError()
	}
	return list, nil
}

// CreateUser creates a new user after validation and the duplicate check.
// The new user is active and its secret is stored only as a hash.
func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Pre-check for an existing user with the same name, any case. The
	// store's unique index remains the backstop for a racing insert.
	existing, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate username: %w", err)
	}
	if existing != nil {
		return nil, NewDuplicateUsernameError(req.Username)
	}

	hash, err := s.hasher.Hash(req.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash secret: %w", err)
	}

	now := time.Now()
	user := &User{
		Username:   req.Username,
		SecretHash: hash,
		Roles:      req.Roles,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, NewInsertionFailedError(req.Username, nil)
	}

	return created, nil
}

// UpdateUser replaces the user's username, roles, and active flag, and
// rotates the secret hash when a new secret is supplied.
func (s *Service) UpdateUser(ctx context.Context, req *UpdateUserRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// A case-variant of the user's own current name is not a conflict.
	match, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate username: %w", err)
	}
	if match != nil && match.ID != user.ID {
		return nil, NewDuplicateUsernameError(req.Username)
	}

	user.Username = req.Username
	user.Roles = req.Roles
	user.Active = *req.Active

	if req.Secret != nil && *req.Secret != "" {
		hash, err := s.hasher.Hash(*req.Secret)
		if err != nil {
			return nil, fmt.Errorf("failed to hash secret: %w", err)
		}
		user.SecretHash = hash
	}

	user.UpdatedAt = time.Now()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user once the referential guard passes. The dependency
// check runs before the existence check.
func (s *Service) DeleteUser(ctx context.Context, req *DeleteUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	hasNotes, err := s.notes.ExistsForUser(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("failed to check for dependent notes: %w", err)
	}
	if hasNotes {
		return NewHasDependentsError(req.UserID)
	}

	if _, err := s.store.GetUser(ctx, req.UserID); err != nil {
		return err
	}

	if err := s.store.DeleteUser(ctx, req.UserID); err != nil {
		return err
	}

	return nil
}

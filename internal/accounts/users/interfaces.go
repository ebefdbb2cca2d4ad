package users

import "context"

// UserStore defines the interface for user persistence operations
type UserStore interface {
	// ListUsers returns every user with the secret hash excluded from the projection.
	ListUsers(ctx context.Context) ([]*User, error)
	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*User, error)
	// FindByUsername looks up a user by anchored, case-folded username equality.
	// A missing user is (nil, nil), not an error.
	FindByUsername(ctx context.Context, username string) (*User, error)
	// CreateUser assigns an ID and persists the user. The store's unique
	// constraint is the final authority on username uniqueness.
	CreateUser(ctx context.Context, user *User) (*User, error)
	// UpdateUser persists a full replacement of the user's mutable fields.
	UpdateUser(ctx context.Context, user *User) error
	// DeleteUser removes the record permanently.
	DeleteUser(ctx context.Context, userID string) error
}

// NoteChecker is the consumed contract of the note subsystem: it reports
// whether any dependent note references a user.
type NoteChecker interface {
	ExistsForUser(ctx context.Context, userID string) (bool, error)
}

// UserManager defines the interface for user lifecycle operations
type UserManager interface {
	ListUsers(ctx context.Context) ([]*User, error)
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	UpdateUser(ctx context.Context, req *UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, req *DeleteUserRequest) error
}

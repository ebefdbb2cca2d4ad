package users

import (
	"time"

	"github.com/uptrace/bun"
)

// User represents a user account in the system. The secret hash is never
// serialized to callers.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID         string    `json:"id" bun:"id,pk"`
	Username   string    `json:"username" bun:"username,notnull,unique"`
	SecretHash string    `json:"-" bun:"secret_hash,notnull"`
	Roles      []string  `json:"roles" bun:"roles,array,type:text[],notnull"`
	Active     bool      `json:"active" bun:"active,notnull,default:true"`
	CreatedAt  time.Time `json:"created_at" bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt  time.Time `json:"updated_at" bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// CreateUserRequest represents a request to create a new user
type CreateUserRequest struct {
	Username string   `json:"username"`
	Secret   string   `json:"secret"`
	Roles    []string `json:"roles"`
}

// Validate validates the create user request
func (r *CreateUserRequest) Validate() error {
	if r.Username == "" {
		return NewValidationError("username is required")
	}
	if r.Secret == "" {
		return NewValidationError("secret is required")
	}
	if len(r.Roles) == 0 {
		return NewValidationError("at least one role is required")
	}
	return nil
}

// UpdateUserRequest represents a request to update an existing user.
// Active is a pointer so that an absent value is distinguishable from false.
// Secret is optional; a non-empty value rotates the stored hash.
type UpdateUserRequest struct {
	UserID   string   `json:"-"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Active   *bool    `json:"active"`
	Secret   *string  `json:"secret,omitempty"`
}

// Validate validates the update user request
func (r *UpdateUserRequest) Validate() error {
	if r.UserID == "" {
		return NewValidationError("user id is required")
	}
	if r.Username == "" {
		return NewValidationError("username is required")
	}
	if len(r.Roles) == 0 {
		return NewValidationError("at least one role is required")
	}
	if r.Active == nil {
		return NewValidationError("active flag is required")
	}
	return nil
}

// DeleteUserRequest represents a request to delete a user
type DeleteUserRequest struct {
	UserID string `json:"user_id"`
}

// Validate validates the delete user request
func (r *DeleteUserRequest) Validate() error {
	if r.UserID == "" {
		return NewValidationError("user id is required")
	}
	return nil
}

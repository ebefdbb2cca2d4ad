package users

import (
	"errors"
	"fmt"
)

// Error types for account operations

// UserError represents errors related to user lifecycle operations
type UserError struct {
	Type    string
	UserID  string
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("user error [%s]: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("user error [%s]: %s", e.Type, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// User error types
const (
	UserErrorTypeValidationFailed    = "validation_failed"
	UserErrorTypeDuplicateUsername   = "duplicate_username"
	UserErrorTypeNotFound            = "not_found"
	UserErrorTypeNoUsersFound        = "no_users_found"
	UserErrorTypeHasDependents       = "has_dependents"
	UserErrorTypeConstraintViolation = "constraint_violation"
	UserErrorTypeInsertionFailed     = "insertion_failed"
)

// NewValidationError creates an error for malformed or missing input
func NewValidationError(message string) *UserError {
	return &UserError{
		Type:    UserErrorTypeValidationFailed,
		Message: message,
	}
}

// NewDuplicateUsernameError creates an error for a username collision with an existing user
func NewDuplicateUsernameError(username string) *UserError {
	return &UserError{
		Type:    UserErrorTypeDuplicateUsername,
		Message: fmt.Sprintf("username %q is already taken", username),
	}
}

// NewUserNotFoundError creates an error for when a referenced user does not exist
func NewUserNotFoundError(userID string) *UserError {
	return &UserError{
		Type:    UserErrorTypeNotFound,
		UserID:  userID,
		Message: fmt.Sprintf("user %s not found", userID),
	}
}

// NewNoUsersFoundError creates an error for when the user collection is empty
func NewNoUsersFoundError() *UserError {
	return &UserError{
		Type:    UserErrorTypeNoUsersFound,
		Message: "no users found",
	}
}

// NewHasDependentsError creates an error for a delete refused by the referential guard
func NewHasDependentsError(userID string) *UserError {
	return &UserError{
		Type:    UserErrorTypeHasDependents,
		UserID:  userID,
		Message: fmt.Sprintf("user %s has dependent notes - delete the notes first", userID),
	}
}

// NewConstraintViolationError creates an error for a store-level constraint failure
func NewConstraintViolationError(message string, cause error) *UserError {
	return &UserError{
		Type:    UserErrorTypeConstraintViolation,
		Message: message,
		Cause:   cause,
	}
}

// NewInsertionFailedError creates an error for an insert that produced no record
func NewInsertionFailedError(username string, cause error) *UserError {
	return &UserError{
		Type:    UserErrorTypeInsertionFailed,
		Message: fmt.Sprintf("failed to insert user %q", username),
		Cause:   cause,
	}
}

// errorTypeIs reports whether err is a UserError of the given type
func errorTypeIs(err error, errType string) bool {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Type == errType
	}
	return false
}

// IsValidationError reports whether err is a validation failure
func IsValidationError(err error) bool {
	return errorTypeIs(err, UserErrorTypeValidationFailed)
}

// IsDuplicateUsername reports whether err is a username conflict
func IsDuplicateUsername(err error) bool {
	return errorTypeIs(err, UserErrorTypeDuplicateUsername)
}

// IsNotFound reports whether err is a missing-user condition
func IsNotFound(err error) bool {
	return errorTypeIs(err, UserErrorTypeNotFound)
}

// IsNoUsersFound reports whether err is an empty list result
func IsNoUsersFound(err error) bool {
	return errorTypeIs(err, UserErrorTypeNoUsersFound)
}

// IsHasDependents reports whether err is a delete refused by the referential guard
func IsHasDependents(err error) bool {
	return errorTypeIs(err, UserErrorTypeHasDependents)
}

// IsConflict reports whether err should surface as a conflict to the caller
func IsConflict(err error) bool {
	return IsDuplicateUsername(err) ||
		IsHasDependents(err) ||
		errorTypeIs(err, UserErrorTypeConstraintViolation)
}

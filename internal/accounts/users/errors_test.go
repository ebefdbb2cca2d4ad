package users

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError("username is required")))
	assert.True(t, IsDuplicateUsername(NewDuplicateUsernameError("alice")))
	assert.True(t, IsNotFound(NewUserNotFoundError("u1")))
	assert.True(t, IsNoUsersFound(NewNoUsersFoundError()))
	assert.True(t, IsHasDependents(NewHasDependentsError("u1")))

	assert.False(t, IsNotFound(NewValidationError("nope")))
	assert.False(t, IsDuplicateUsername(errors.New("plain error")))
	assert.False(t, IsNotFound(nil))
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(NewDuplicateUsernameError("alice")))
	assert.True(t, IsConflict(NewHasDependentsError("u1")))
	assert.True(t, IsConflict(NewConstraintViolationError("unique index", nil)))
	assert.False(t, IsConflict(NewUserNotFoundError("u1")))
	assert.False(t, IsConflict(NewInsertionFailedError("alice", nil)))
}

func TestErrorClassificationSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("delete refused: %w", NewHasDependentsError("u1"))
	assert.True(t, IsHasDependents(wrapped))
}

func TestUserError_Unwrap(t *testing.T) {
	cause := errors.New("driver failure")
	err := NewInsertionFailedError("alice", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "caused by")
}

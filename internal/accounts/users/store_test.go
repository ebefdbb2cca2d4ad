package users

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := errors.New(`ERROR: duplicate key value violates unique constraint "users_username_lower_idx" (SQLSTATE=23505)`)
	assert.True(t, isUniqueViolation(pgErr))

	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(errors.New(`ERROR: null value in column "username" violates not-null constraint`)))
}

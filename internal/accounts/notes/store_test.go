package notes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExistsForUser_EmptyUserID(t *testing.T) {
	// The guard rejects an empty ID before any query runs
	store := NewPostgresStore(nil)

	exists, err := store.ExistsForUser(context.Background(), "")
	assert.Error(t, err)
	assert.False(t, exists)
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("HashNeverEqualsPlaintext", func(t *testing.T) {
		hash, err := hasher.Hash("pw123")
		require.NoError(t, err)
		assert.NotEqual(t, "pw123", hash)
		assert.NotEmpty(t, hash)
	})

	t.Run("EmptySecretRejected", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.Error(t, err)
	})

	t.Run("HashesAreSalted", func(t *testing.T) {
		first, err := hasher.Hash("pw123")
		require.NoError(t, err)
		second, err := hasher.Hash("pw123")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestBcryptHasher_Verify(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("pw123")
	require.NoError(t, err)

	assert.True(t, hasher.Verify("pw123", hash))
	assert.False(t, hasher.Verify("wrong", hash))
	assert.False(t, hasher.Verify("pw123", "not-a-hash"))
}

func TestNewBcryptHasher_CostClamping(t *testing.T) {
	// Out-of-range costs fall back to the default work factor
	hasher := NewBcryptHasher(99)
	require.NotNil(t, hasher)
	assert.Equal(t, DefaultCost, hasher.cost)

	hasher = NewBcryptHasher(-1)
	assert.Equal(t, DefaultCost, hasher.cost)
}

func TestNewBcryptHasher_DefaultCostApplied(t *testing.T) {
	hasher := NewBcryptHasher(DefaultCost)

	hash, err := hasher.Hash("pw123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

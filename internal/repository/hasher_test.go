package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("PacManINB")
	require.NoError(t, err)

	assert.NotEqual(t, "PacManINB", hash)
	assert.True(t, h.Matches(hash, "PacManINB"))
	assert.False(t, h.Matches(hash, "pacmaninb"))
	assert.False(t, h.Matches("PacManINB", "PacManINB"))
}

func TestBcryptHasher_HashesBcryptLookingPasswords(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret")
	require.NoError(t, err)

	again, err := h.Hash(hash)
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
	assert.True(t, h.Matches(again, hash))
	assert.False(t, h.Matches(again, "secret"))
}

func TestNewBcryptHasher_CostRange(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).Cost)
	assert.Equal(t, 12, NewBcryptHasher(12).Cost)
}

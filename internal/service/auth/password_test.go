package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cost     int
		wantCost int
	}{
		{name: "valid cost", cost: 12, wantCost: 12},
		{name: "min cost", cost: bcrypt.MinCost, wantCost: bcrypt.MinCost},
		{name: "zero uses default", cost: 0, wantCost: bcrypt.DefaultCost},
		{name: "too low uses default", cost: 3, wantCost: bcrypt.DefaultCost},
		{name: "too high uses default", cost: 32, wantCost: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantCost, NewBcryptHasher(tt.cost).Cost())
		})
	}
}

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.NotContains(t, hash, "password123")

	assert.NoError(t, h.Compare(hash, "password123"))
	assert.ErrorIs(t, h.Compare(hash, "wrong-password"), ErrInvalidCredentials)
	assert.Error(t, h.Compare("not-a-hash", "password123"))
}

func TestBcryptHasher_TooLong(t *testing.T) {
	t.Parallel()

	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("x", 73))
	assert.Error(t, err)
}

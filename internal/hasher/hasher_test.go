package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	h := New(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.True(t, h.Compare(hash, "secret123"))
	assert.False(t, h.Compare(hash, "secret124"))
	assert.False(t, h.Compare(hash, ""))
	assert.False(t, h.Compare("not-a-hash", "secret123"))
}

func TestBcrypt_SaltsEachHash(t *testing.T) {
	h := New(bcrypt.MinCost)

	first, err := h.Hash("password")
	assert.NoError(t, err)
	second, err := h.Hash("password")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Compare(first, "password"))
	assert.True(t, h.Compare(second, "password"))
}

func TestNew_CostBounds(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"zero falls back", 0, bcrypt.DefaultCost},
		{"too high falls back", bcrypt.MaxCost + 1, bcrypt.DefaultCost},
		{"min cost kept", bcrypt.MinCost, bcrypt.MinCost},
		{"custom cost kept", 12, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.cost).cost)
		})
	}
}

func TestBcrypt_TooLongPassword(t *testing.T) {
	h := New(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", 73))
	assert.Error(t, err)
}

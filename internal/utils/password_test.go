package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestCheckPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("passer123"), bcrypt.MinCost)
	assert.NoError(t, err)

	assert.True(t, CheckPasswordHash("passer123", string(hash)))
	assert.False(t, CheckPasswordHash("wrongpass", string(hash)))
	assert.False(t, CheckPasswordHash("passer123", "not-a-bcrypt-hash"))
}

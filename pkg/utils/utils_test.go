package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unnamedbank/banking/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()
	hash, err := utils.HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)
	assert.True(t, utils.CheckPasswordHash("password", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}

func TestCheckPasswordHash_AnyCost(t *testing.T) {
	t.Parallel()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	assert.True(t, utils.CheckPasswordHash("password", string(hash)))
}

func TestIsEmail(t *testing.T) {
	t.Parallel()
	assert.True(t, utils.IsEmail("ivan@example.com"))
	assert.False(t, utils.IsEmail("not-an-email"))
	assert.False(t, utils.IsEmail(""))
}

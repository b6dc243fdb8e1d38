package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	c, err := NewPasswordConfig()
	require.NoError(t, err)

	assert.Equal(t, 12, c.BcryptCost)
	assert.Empty(t, c.Pepper)
}

func TestNewPasswordConfig_CostOutOfRange(t *testing.T) {
	for _, cost := range []string{"9", "15", "0"} {
		t.Setenv("BCRYPT_COST", cost)

		_, err := NewPasswordConfig()
		require.Error(t, err, "cost %s", cost)
		assert.Contains(t, err.Error(), "BCRYPT_COST")
	}
}

func TestNewPasswordConfig_InvalidCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "twelve")

	_, err := NewPasswordConfig()
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	c := &PasswordConfig{BcryptCost: 10}

	hash, err := c.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, c.VerifyPassword("hunter2hunter2", hash))
	assert.False(t, c.VerifyPassword("wrong-password", hash))
}

func TestHashPassword_PepperChangesHashInput(t *testing.T) {
	plain := &PasswordConfig{BcryptCost: 10}
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "global-secret"}

	hash, err := peppered.HashPassword("hunter2hunter2")
	require.NoError(t, err)

	// A hash minted with pepper does not verify without it, and vice versa.
	assert.True(t, peppered.VerifyPassword("hunter2hunter2", hash))
	assert.False(t, plain.VerifyPassword("hunter2hunter2", hash))

	plainHash, err := plain.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.False(t, peppered.VerifyPassword("hunter2hunter2", plainHash))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	c := &PasswordConfig{BcryptCost: 10}

	first, err := c.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	second, err := c.HashPassword("hunter2hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, c.VerifyPassword("hunter2hunter2", first))
	assert.True(t, c.VerifyPassword("hunter2hunter2", second))
}

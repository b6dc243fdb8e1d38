package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt cost bounds. Below 10 is too cheap to brute-force-resist; above 14
// a single login hash stalls a request for seconds.
const (
	minBcryptCost = 10
	maxBcryptCost = 14
)

// PasswordConfig holds password hashing settings. Pepper, when set, is a
// server-side secret appended to every password before hashing, so a leaked
// database alone is not enough to attack the hashes offline.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string
}

// NewPasswordConfig reads hashing settings from the environment:
// BCRYPT_COST (default 12) and PASSWORD_PEPPER (optional).
func NewPasswordConfig() (*PasswordConfig, error) {
	c := &PasswordConfig{
		BcryptCost: 12,
		Pepper:     os.Getenv("PASSWORD_PEPPER"),
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
		}
		c.BcryptCost = cost
	}

	if err := c.normalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// normalize validates the configuration.
func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < minBcryptCost || c.BcryptCost > maxBcryptCost {
		return fmt.Errorf("BCRYPT_COST out of range: %d (must be %d-%d)",
			c.BcryptCost, minBcryptCost, maxBcryptCost)
	}
	return nil
}

// HashPassword hashes a peppered password with bcrypt.
func (c *PasswordConfig) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
func (c *PasswordConfig) VerifyPassword(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password+c.Pepper)) == nil
}

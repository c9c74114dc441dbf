package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/cinemind/studio-api/internal/core/ports"
)

// PlainPasswords stores passwords exactly as submitted.
type PlainPasswords struct{}

func (PlainPasswords) Prepare(password string) (string, error) {
	return password, nil
}

// BcryptPasswords stores a bcrypt hash of the password.
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Prepare(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// NewPasswordPolicy returns BcryptPasswords when hash is true.
func NewPasswordPolicy(hash bool) ports.PasswordPolicy {
	if hash {
		return BcryptPasswords{}
	}
	return PlainPasswords{}
}

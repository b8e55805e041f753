package auth

import (
	"errors"
	"strings"

	"ecommerce_service/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

const passwordTooLongMessage = "Password must be at most 72 bytes."

// BcryptHasher hashes passwords with a random per-password salt.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash hashes one plaintext password for persistent storage. Passwords longer
// than MaxPasswordBytes are rejected with a validation error.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", domain.NewValidationError(passwordTooLongMessage)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.NewValidationError(passwordTooLongMessage)
		}
		return "", err
	}
	return string(hashed), nil
}

// Verify verifies a plaintext password against a bcrypt hash.
func (h *BcryptHasher) Verify(passwordHash, candidate string) bool {
	if strings.TrimSpace(passwordHash) == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(candidate)) == nil
}

package user

import (
	"time"

	"github.com/google/uuid"
)

// NewFromRegistration builds a User for a freshly registered identity.
// The password must already be hashed by the caller; the store never
// sees plaintext.
func NewFromRegistration(email, passwordHash, name string) User {
	now := time.Now().UTC()

	return User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

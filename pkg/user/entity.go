package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered account. The plaintext
// password is hashed at sign-up and never stored.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// OTP is a single-use 4-digit passcode (1000-9999) issued for a password
// reset. One row per email; a new issuance replaces the previous code.
// The code is compared numerically, never as a string.
type OTP struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Code  int       `gorm:"not null"`

	ExpiresAt time.Time
	CreatedAt time.Time
}

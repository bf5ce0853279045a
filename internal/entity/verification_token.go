package entity

import (
	"time"

	"github.com/google/uuid"
)

// VerificationToken proves control of an email address. At most one row
// exists per user (regeneration replaces it), only the sha256 of the raw
// token is stored, and the row is deleted once consumed.
type VerificationToken struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	TokenHash string `gorm:"type:text;not null;index"`

	ExpiresAt time.Time
	CreatedAt time.Time
}

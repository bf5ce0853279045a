package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side record keyed by a cookie-carried id. It holds a
// snapshot of the user taken at sign-in; the snapshot is allowed to go
// stale until the next sign-in. ExpiresAt implements the inactivity window
// and is pushed forward on each authenticated request.
type Session struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	UserName string `gorm:"type:varchar(100);not null"`
	Email    string `gorm:"type:varchar(255);not null"`
	Verified bool   `gorm:"not null"`
	Credits  int64  `gorm:"not null"`
	JoinedAt time.Time

	ExpiresAt time.Time
	CreatedAt time.Time
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the durable account record. Email and username are stored in
// lowercase and are each globally unique. Credits are held in cents.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserName     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`

	Credits  int64 `gorm:"not null;default:0"`
	Verified bool  `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

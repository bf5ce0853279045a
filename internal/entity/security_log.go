package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SecurityAction string

const (
	Signup          SecurityAction = "signup"
	SigninSuccess   SecurityAction = "signin_success"
	SigninFailed    SecurityAction = "signin_failed"
	Logout          SecurityAction = "logout"
	EmailVerified   SecurityAction = "email_verified"
	OTPIssued       SecurityAction = "otp_issued"
	OTPCheckFailed  SecurityAction = "otp_check_failed"
	PasswordChanged SecurityAction = "password_changed"
)

// SecurityLog is a write-only audit trail of account activity. Failures
// to write an entry are ignored by callers.
type SecurityLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID *uuid.UUID `gorm:"type:uuid;index"`
	User   *User      `gorm:"constraint:OnDelete:SET NULL"`

	IPAddress *string        `gorm:"type:varchar(45)"`
	Action    SecurityAction `gorm:"type:varchar(32);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}

package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	SessionTTL           time.Duration
	VerificationTokenTTL time.Duration
	OTPTTL               time.Duration
	AppBaseURL           string
}

// EmailSender delivers transactional mail. Implementations used in request
// paths must honor at-most-once fire-and-forget semantics (see
// AsyncEmailSender); the service never retries a send.
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, email string, link string) error
	SendOTPEmail(ctx context.Context, email string, code int) error
	SendPasswordChangedEmail(ctx context.Context, email string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

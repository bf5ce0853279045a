package service

import (
	"time"

	"kemlabels/internal/entity"

	"github.com/google/uuid"
)

type SignUpInput struct {
	UserName  string
	Email     string
	Password  string
	IPAddress *string
}

type SignInInput struct {
	Email    string
	Password string
	// CurrentSessionID is the session carried by the request's cookie, if
	// any. Sign-in destroys it before establishing the new session.
	CurrentSessionID *uuid.UUID
	IPAddress        *string
}

type UserInfo struct {
	UserName     string
	CreditAmount int64
	JoinedDate   time.Time
	IsVerified   bool
}

type SignUpResult struct {
	Session  *entity.Session
	Redirect string
}

type SignInResult struct {
	Session  *entity.Session
	Redirect string
	UserInfo UserInfo
}

package dto

import "time"

type SignUpRequest struct {
	UserName string `json:"userName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

type UserInfo struct {
	UserName     string    `json:"username"`
	CreditAmount int64     `json:"creditAmount"`
	JoinedDate   time.Time `json:"joinedDate"`
	IsVerified   bool      `json:"isVerified"`
}

type SignInResponse struct {
	Redirect string   `json:"redirect"`
	UserInfo UserInfo `json:"userInfo"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required"`
}

type EmailExistsResponse struct {
	EmailExists bool `json:"emailExists"`
}

type CheckOTPRequest struct {
	EnteredOTP int    `json:"enteredOTP" validate:"required"`
	Email      string `json:"email" validate:"required"`
}

type UpdatePasswordRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ErrorResponse struct {
	Msg string `json:"msg"`
}

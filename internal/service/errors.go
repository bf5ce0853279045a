package service

import "errors"

// The error messages below are the wire contract: handlers serialize them
// verbatim into the {"msg": ...} body, so the frontend matches on them.
var (
	ErrMissingFields      = errors.New("Please enter all fields.")
	ErrEmailTaken         = errors.New("This email is already associated with an account.")
	ErrUserNameTaken      = errors.New("This username is already taken.")
	ErrInvalidCredentials = errors.New("Incorrect email or password.")
	ErrNoSession          = errors.New("No user found in session.")
	ErrLinkInvalid        = errors.New("Link Invalid")
	ErrLinkExpired        = errors.New("Link Expired")
	ErrEmailNotRegistered = errors.New("This email is not associated with an account.")
	ErrInvalidOTP         = errors.New("Invalid Code")
	ErrOTPMismatch        = errors.New("Hmm... your code was incorrect. Please try again.")
	ErrAccountLookup      = errors.New("An error occured.")
	ErrPasswordUpdate     = errors.New("Unexpected error occured")
)

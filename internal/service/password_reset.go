package service

import (
	"context"
	"strings"

	"kemlabels/internal/entity"
	"kemlabels/internal/utils"
)

// The forgot-password flow is client-driven: emailExists gates the UI,
// IssueOTP mails a passcode, CheckOTP consumes it, UpdatePassword writes
// the new hash. The server does not thread a proof of OTP verification
// into UpdatePassword; each step stands alone.

func (s *AuthService) EmailExists(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrMissingFields
	}
	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotRegistered
	}
	return nil
}

// IssueOTP stores a fresh passcode for the email and mails it. A previous
// unconsumed code for the same address is replaced in the same statement.
func (s *AuthService) IssueOTP(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrMissingFields
	}
	email = utils.NormalizeEmail(email)

	code, err := utils.RandomOTP()
	if err != nil {
		return err
	}

	otp := &entity.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(s.otpTTL()),
		CreatedAt: s.now(),
	}
	if err := s.otps.Upsert(ctx, otp); err != nil {
		return err
	}

	_ = s.logSecurity(ctx, nil, nil, entity.OTPIssued, map[string]any{"email": email})

	if s.emailSender == nil {
		return nil
	}
	return s.emailSender.SendOTPEmail(ctx, email, code)
}

func (s *AuthService) CheckOTP(ctx context.Context, email string, entered int) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidOTP
	}
	email = utils.NormalizeEmail(email)

	otp, err := s.otps.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if otp == nil || s.now().After(otp.ExpiresAt) {
		return ErrInvalidOTP
	}

	if entered != otp.Code {
		_ = s.logSecurity(ctx, nil, nil, entity.OTPCheckFailed, map[string]any{"email": email})
		return ErrOTPMismatch
	}

	return s.otps.Delete(ctx, otp.ID)
}

func (s *AuthService) UpdatePassword(ctx context.Context, email string, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrPasswordUpdate
	}

	hash, err := s.passwordHash.Hash(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	_ = s.logSecurity(ctx, &user.ID, nil, entity.PasswordChanged, nil)

	if s.emailSender == nil {
		return nil
	}
	return s.emailSender.SendPasswordChangedEmail(ctx, user.Email)
}

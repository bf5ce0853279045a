package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"kemlabels/internal/entity"
	"kemlabels/internal/repository"
	"kemlabels/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type AuthService struct {
	users        repository.UserRepository
	sessions     repository.SessionRepository
	tokens       repository.VerificationTokenRepository
	otps         repository.OTPRepository
	securityLogs repository.SecurityLogRepository

	emailSender  EmailSender
	passwordHash PasswordHasher
	clock        Clock
	config       AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	tokens repository.VerificationTokenRepository,
	otps repository.OTPRepository,
	securityLogs repository.SecurityLogRepository,
	emailSender EmailSender,
	passwordHash PasswordHasher,
	clock Clock,
	config AuthConfig,
) *AuthService {
	return &AuthService{
		users:        users,
		sessions:     sessions,
		tokens:       tokens,
		otps:         otps,
		securityLogs: securityLogs,
		emailSender:  emailSender,
		passwordHash: passwordHash,
		clock:        clock,
		config:       config,
	}
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*SignUpResult, error) {
	if strings.TrimSpace(input.UserName) == "" || strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrMissingFields
	}

	email := utils.NormalizeEmail(input.Email)
	userName := utils.NormalizeUserName(input.UserName)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.users.FindByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserNameTaken
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
		Credits:      0,
		Verified:     false,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// The user row is kept even if token creation or the email send fails;
	// /generateToken lets the client request a fresh link.
	if err := s.sendVerificationLink(ctx, user.ID, user.Email); err != nil {
		return nil, err
	}

	session, err := s.createSession(ctx, user)
	if err != nil {
		return nil, err
	}

	_ = s.logSecurity(ctx, &user.ID, input.IPAddress, entity.Signup, map[string]any{"email": email})
	return &SignUpResult{Session: session, Redirect: "/verify-email"}, nil
}

func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrMissingFields
	}

	email := utils.NormalizeEmail(input.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		_ = s.logSecurity(ctx, nil, input.IPAddress, entity.SigninFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		_ = s.logSecurity(ctx, &user.ID, input.IPAddress, entity.SigninFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if input.CurrentSessionID != nil {
		if err := s.sessions.Delete(ctx, *input.CurrentSessionID); err != nil {
			return nil, err
		}
	}

	session, err := s.createSession(ctx, user)
	if err != nil {
		return nil, err
	}

	redirect := "/"
	if !user.Verified {
		redirect = "/verify-email"
	}

	_ = s.logSecurity(ctx, &user.ID, input.IPAddress, entity.SigninSuccess, nil)
	return &SignInResult{
		Session:  session,
		Redirect: redirect,
		UserInfo: UserInfo{
			UserName:     user.UserName,
			CreditAmount: user.Credits,
			JoinedDate:   user.CreatedAt,
			IsVerified:   user.Verified,
		},
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, session *entity.Session) error {
	if session == nil || session.Email == "" {
		return ErrNoSession
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return err
	}
	_ = s.logSecurity(ctx, &session.UserID, nil, entity.Logout, map[string]any{"email": session.Email})
	return nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, userID uuid.UUID, rawToken string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrLinkInvalid
	}

	token, err := s.tokens.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if token == nil || token.TokenHash != utils.HashToken(rawToken) {
		return ErrLinkInvalid
	}
	if s.now().After(token.ExpiresAt) {
		return ErrLinkExpired
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return err
	}
	if err := s.tokens.Delete(ctx, token.ID); err != nil {
		return err
	}

	_ = s.logSecurity(ctx, &user.ID, nil, entity.EmailVerified, nil)
	return nil
}

// CheckVerified re-reads the user record rather than trusting the session
// snapshot, which may predate the verification.
func (s *AuthService) CheckVerified(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrAccountLookup
	}
	return user.Verified, nil
}

// ResendVerification replaces the user's verification token and re-sends
// the confirmation link.
func (s *AuthService) ResendVerification(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrAccountLookup
	}
	return s.sendVerificationLink(ctx, user.ID, user.Email)
}

func (s *AuthService) sendVerificationLink(ctx context.Context, userID uuid.UUID, email string) error {
	rawToken, err := utils.GenerateVerificationToken()
	if err != nil {
		return err
	}

	token := &entity.VerificationToken{
		UserID:    userID,
		TokenHash: utils.HashToken(rawToken),
		ExpiresAt: s.now().Add(s.verificationTokenTTL()),
		CreatedAt: s.now(),
	}
	if err := s.tokens.Upsert(ctx, token); err != nil {
		return err
	}

	if s.emailSender == nil {
		return nil
	}
	link := fmt.Sprintf("%s/users/%s/verify/%s", strings.TrimRight(s.config.AppBaseURL, "/"), userID, rawToken)
	return s.emailSender.SendVerificationEmail(ctx, email, link)
}

func (s *AuthService) createSession(ctx context.Context, user *entity.User) (*entity.Session, error) {
	session := &entity.Session{
		UserID:    user.ID,
		UserName:  user.UserName,
		Email:     user.Email,
		Verified:  user.Verified,
		Credits:   user.Credits,
		JoinedAt:  user.CreatedAt,
		ExpiresAt: s.now().Add(s.sessionTTL()),
		CreatedAt: s.now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AuthService) logSecurity(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.SecurityAction,
	metadata map[string]any,
) error {
	if s.securityLogs == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}

	log := &entity.SecurityLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	}
	return s.securityLogs.Log(ctx, log)
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.config.SessionTTL > 0 {
		return s.config.SessionTTL
	}
	return 10 * time.Minute
}

func (s *AuthService) verificationTokenTTL() time.Duration {
	if s.config.VerificationTokenTTL > 0 {
		return s.config.VerificationTokenTTL
	}
	return 24 * time.Hour
}

func (s *AuthService) otpTTL() time.Duration {
	if s.config.OTPTTL > 0 {
		return s.config.OTPTTL
	}
	return 10 * time.Minute
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailExists(t *testing.T) {
	env := newTestEnv()
	env.signUp(t, "abc", "a@x.com", "Passw0rd!")

	assert.NoError(t, env.svc.EmailExists(context.Background(), "A@x.com"))
	assert.ErrorIs(t, env.svc.EmailExists(context.Background(), "nobody@x.com"), ErrEmailNotRegistered)
}

func TestIssueOTPStoresFourDigitCode(t *testing.T) {
	env := newTestEnv()

	require.NoError(t, env.svc.IssueOTP(context.Background(), "a@x.com"))

	code := env.mail.lastCode()
	assert.GreaterOrEqual(t, code, 1000)
	assert.LessOrEqual(t, code, 9999)

	stored := env.otps.byEmail["a@x.com"]
	require.NotNil(t, stored)
	assert.Equal(t, code, stored.Code)
}

func TestIssueOTPReplacesPreviousCode(t *testing.T) {
	env := newTestEnv()
	require.NoError(t, env.svc.IssueOTP(context.Background(), "a@x.com"))
	first := env.mail.lastCode()

	// reissue until the replacement differs; the range is small enough
	// for an occasional collision
	second := first
	for attempts := 0; second == first && attempts < 50; attempts++ {
		require.NoError(t, env.svc.IssueOTP(context.Background(), "a@x.com"))
		second = env.mail.lastCode()
	}
	require.NotEqual(t, first, second)

	assert.ErrorIs(t, env.svc.CheckOTP(context.Background(), "a@x.com", first), ErrOTPMismatch)
	assert.NoError(t, env.svc.CheckOTP(context.Background(), "a@x.com", second))
}

func TestCheckOTPWrongCodeKeepsStoredCode(t *testing.T) {
	env := newTestEnv()
	require.NoError(t, env.svc.IssueOTP(context.Background(), "a@x.com"))
	code := env.mail.lastCode()

	wrong := code + 1
	if wrong > 9999 {
		wrong = 1000
	}
	assert.ErrorIs(t, env.svc.CheckOTP(context.Background(), "a@x.com", wrong), ErrOTPMismatch)

	// the stored code survives a failed attempt
	require.NotNil(t, env.otps.byEmail["a@x.com"])
	assert.NoError(t, env.svc.CheckOTP(context.Background(), "a@x.com", code))
}

func TestCheckOTPConsumesCode(t *testing.T) {
	env := newTestEnv()
	require.NoError(t, env.svc.IssueOTP(context.Background(), "a@x.com"))
	code := env.mail.lastCode()

	require.NoError(t, env.svc.CheckOTP(context.Background(), "a@x.com", code))

	assert.ErrorIs(t, env.svc.CheckOTP(context.Background(), "a@x.com", code), ErrInvalidOTP)
}

func TestCheckOTPUnknownEmail(t *testing.T) {
	env := newTestEnv()

	assert.ErrorIs(t, env.svc.CheckOTP(context.Background(), "a@x.com", 1234), ErrInvalidOTP)
}

func TestCheckOTPExpired(t *testing.T) {
	env := newTestEnv()
	require.NoError(t, env.svc.IssueOTP(context.Background(), "a@x.com"))
	code := env.mail.lastCode()

	env.clock.Advance(11 * time.Minute)

	assert.ErrorIs(t, env.svc.CheckOTP(context.Background(), "a@x.com", code), ErrInvalidOTP)
}

func TestUpdatePasswordRotatesHash(t *testing.T) {
	env := newTestEnv()
	env.signUp(t, "abc", "a@x.com", "Passw0rd!")

	require.NoError(t, env.svc.UpdatePassword(context.Background(), "A@x.com", "NewPassw0rd!"))

	_, err := env.svc.SignIn(context.Background(), SignInInput{Email: "a@x.com", Password: "Passw0rd!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.svc.SignIn(context.Background(), SignInInput{Email: "a@x.com", Password: "NewPassw0rd!"})
	assert.NoError(t, err)

	assert.Equal(t, []string{"a@x.com"}, env.mail.passwordChanged)
}

func TestUpdatePasswordUnknownEmail(t *testing.T) {
	env := newTestEnv()

	err := env.svc.UpdatePassword(context.Background(), "nobody@x.com", "NewPassw0rd!")
	assert.ErrorIs(t, err, ErrPasswordUpdate)
	assert.Empty(t, env.mail.passwordChanged)
}

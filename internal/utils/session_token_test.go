package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	manager := SessionTokenManager{Secret: []byte("secret"), TTL: time.Minute}
	sessionID := uuid.New()

	token, err := manager.IssueSessionToken(sessionID)
	require.NoError(t, err)

	parsed, err := manager.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, parsed)
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	issuer := SessionTokenManager{Secret: []byte("secret"), TTL: time.Minute}
	verifier := SessionTokenManager{Secret: []byte("other"), TTL: time.Minute}

	token, err := issuer.IssueSessionToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.ParseSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSessionTokenRejectsGarbage(t *testing.T) {
	manager := SessionTokenManager{Secret: []byte("secret")}

	_, err := manager.ParseSessionToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

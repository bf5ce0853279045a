package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kemlabels/internal/entity"
	"kemlabels/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionStore mirrors the row-level expiry filter of the real
// repository: a row past its expiry is not found.
type sessionStore struct {
	sessions map[uuid.UUID]*entity.Session
	touched  int
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *sessionStore) Create(ctx context.Context, s *entity.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.sessions[s.ID] = s
	return nil
}

func (f *sessionStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	s, ok := f.sessions[id]
	if !ok || !s.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return s, nil
}

func (f *sessionStore) Touch(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	f.touched++
	if s, ok := f.sessions[id]; ok {
		s.ExpiresAt = expiresAt
	}
	return nil
}

func (f *sessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.sessions, id)
	return nil
}

func (f *sessionStore) DeleteExpired(ctx context.Context) error { return nil }

func newSessionMiddleware(store *sessionStore) (SessionMiddleware, *utils.SessionTokenManager) {
	tokens := &utils.SessionTokenManager{
		Secret: []byte("test-secret"),
		TTL:    10 * time.Minute,
	}
	return SessionMiddleware{
		Tokens:     tokens,
		Sessions:   store,
		CookieName: "sessionID",
		SessionTTL: 10 * time.Minute,
	}, tokens
}

func serveWithSession(t *testing.T, m SessionMiddleware, cookie *http.Cookie) (*httptest.ResponseRecorder, *entity.Session) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *entity.Session
	next := m.RequireSession(func(c echo.Context) error {
		seen, _ = SessionFromContext(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, next(c))
	return rec, seen
}

func TestRequireSessionMissingCookie(t *testing.T) {
	m, _ := newSessionMiddleware(newSessionStore())

	rec, seen := serveWithSession(t, m, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"msg":"No user found in session."}`, rec.Body.String())
	assert.Nil(t, seen)
}

func TestRequireSessionBadToken(t *testing.T) {
	m, _ := newSessionMiddleware(newSessionStore())

	rec, seen := serveWithSession(t, m, &http.Cookie{Name: "sessionID", Value: "not-a-token"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Nil(t, seen)
}

func TestRequireSessionExpiredWindow(t *testing.T) {
	store := newSessionStore()
	m, tokens := newSessionMiddleware(store)

	session := &entity.Session{ID: uuid.New(), ExpiresAt: time.Now().Add(-time.Second)}
	store.sessions[session.ID] = session
	token, err := tokens.IssueSessionToken(session.ID)
	require.NoError(t, err)

	rec, seen := serveWithSession(t, m, &http.Cookie{Name: "sessionID", Value: token})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"msg":"No user found in session."}`, rec.Body.String())
	assert.Nil(t, seen)
	assert.Zero(t, store.touched)
}

func TestRequireSessionSlidesExpiry(t *testing.T) {
	store := newSessionStore()
	m, tokens := newSessionMiddleware(store)

	session := &entity.Session{
		ID:        uuid.New(),
		UserName:  "abc",
		ExpiresAt: time.Now().Add(time.Minute),
	}
	store.sessions[session.ID] = session
	token, err := tokens.IssueSessionToken(session.ID)
	require.NoError(t, err)

	rec, seen := serveWithSession(t, m, &http.Cookie{Name: "sessionID", Value: token})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "abc", seen.UserName)

	// the inactivity window restarts on each authenticated request
	assert.Equal(t, 1, store.touched)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), session.ExpiresAt, 5*time.Second)
}

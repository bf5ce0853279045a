package middleware

import (
	"net/http"
	"time"

	"kemlabels/internal/repository"
	"kemlabels/internal/utils"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware resolves the session cookie into a server-side session
// record. The cookie value is a signed token; the signature is checked
// before the store is touched. Each authenticated request pushes the
// session's inactivity expiry forward.
type SessionMiddleware struct {
	Tokens     *utils.SessionTokenManager
	Sessions   repository.SessionRepository
	CookieName string
	SessionTTL time.Duration
}

func (m SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.Tokens == nil || m.Sessions == nil {
			return noSession(c)
		}
		cookie, err := c.Cookie(m.CookieName)
		if err != nil || cookie.Value == "" {
			return noSession(c)
		}
		sessionID, err := m.Tokens.ParseSessionToken(cookie.Value)
		if err != nil {
			return noSession(c)
		}
		session, err := m.Sessions.FindByID(c.Request().Context(), sessionID)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"msg": "Internal server error"})
		}
		if session == nil {
			return noSession(c)
		}

		ttl := m.SessionTTL
		if ttl == 0 {
			ttl = 10 * time.Minute
		}
		_ = m.Sessions.Touch(c.Request().Context(), session.ID, time.Now().Add(ttl))

		SetSessionContext(c, session)
		return next(c)
	}
}

func noSession(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]string{"msg": "No user found in session."})
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"kemlabels/api/middleware"
	"kemlabels/internal/dto"
	"kemlabels/internal/service"
	"kemlabels/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service       *service.AuthService
	Validate      *validator.Validate
	SessionTokens *utils.SessionTokenManager
	CookieName    string
	CookieDomain  string
	SecureCookies bool
	SameSite      http.SameSite
	SessionTTL    time.Duration
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate, tokens *utils.SessionTokenManager) *AuthHandler {
	return &AuthHandler{
		Service:       svc,
		Validate:      validate,
		SessionTokens: tokens,
		CookieName:    "sessionID",
		SecureCookies: true,
		SameSite:      http.SameSiteStrictMode,
		SessionTTL:    10 * time.Minute,
	}
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	var req dto.SignUpRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusNotFound, service.ErrMissingFields)
	}
	input := service.SignUpInput{
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: stringPtr(c.RealIP()),
	}
	result, err := h.Service.SignUp(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.setSessionCookie(c, result.Session.ID); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.RedirectResponse{Redirect: result.Redirect})
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	var req dto.SignInRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusNotFound, service.ErrMissingFields)
	}
	input := service.SignInInput{
		Email:            req.Email,
		Password:         req.Password,
		CurrentSessionID: h.currentSessionID(c),
		IPAddress:        stringPtr(c.RealIP()),
	}
	result, err := h.Service.SignIn(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.setSessionCookie(c, result.Session.ID); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.SignInResponse{
		Redirect: result.Redirect,
		UserInfo: userInfoResponse(result.UserInfo),
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return writeError(c, http.StatusNotFound, service.ErrNoSession)
	}
	if err := h.Service.Logout(c.Request().Context(), session); err != nil {
		return writeServiceError(c, err)
	}
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: "/signin"})
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, service.ErrLinkInvalid)
	}
	token := c.Param("token")
	if token == "" {
		return writeError(c, http.StatusBadRequest, service.ErrLinkInvalid)
	}
	if err := h.Service.VerifyEmail(c.Request().Context(), userID, token); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: "/"})
}

func (h *AuthHandler) IsUserVerified(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return writeError(c, http.StatusNotFound, service.ErrNoSession)
	}
	verified, err := h.Service.CheckVerified(c.Request().Context(), session.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if !verified {
		return writeError(c, http.StatusBadRequest,
			errors.New("Please check your inbox for a verification link to verify your account."))
	}
	return c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: "/"})
}

func (h *AuthHandler) CheckVerification(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return writeError(c, http.StatusNotFound, service.ErrNoSession)
	}
	verified, err := h.Service.CheckVerified(c.Request().Context(), session.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if !verified {
		return writeError(c, http.StatusBadRequest, errors.New("User is not verified"))
	}
	return c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: "/"})
}

func (h *AuthHandler) RegenerateToken(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return writeError(c, http.StatusNotFound, service.ErrNoSession)
	}
	if err := h.Service.ResendVerification(c.Request().Context(), session.UserID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, sessionID uuid.UUID) error {
	if h.SessionTokens == nil {
		return nil
	}
	token, err := h.SessionTokens.IssueSessionToken(sessionID)
	if err != nil {
		return err
	}
	ttl := h.SessionTTL
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	c.SetCookie(&http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: h.SameSite,
	})
	return nil
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: h.SameSite,
	})
}

// currentSessionID reads the session carried by the request, if any, so
// sign-in can destroy it before creating a replacement.
func (h *AuthHandler) currentSessionID(c echo.Context) *uuid.UUID {
	if h.SessionTokens == nil {
		return nil
	}
	cookie, err := c.Cookie(h.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	sessionID, err := h.SessionTokens.ParseSessionToken(cookie.Value)
	if err != nil {
		return nil
	}
	return &sessionID
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, dto.ErrorResponse{Msg: err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrNoSession):
		return writeError(c, http.StatusNotFound, err)
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUserNameTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrLinkInvalid),
		errors.Is(err, service.ErrLinkExpired),
		errors.Is(err, service.ErrEmailNotRegistered),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrOTPMismatch),
		errors.Is(err, service.ErrAccountLookup),
		errors.Is(err, service.ErrPasswordUpdate):
		return writeError(c, http.StatusBadRequest, err)
	}
	c.Logger().Error(err)
	return writeError(c, http.StatusInternalServerError, errors.New("Internal server error"))
}

func userInfoResponse(info service.UserInfo) dto.UserInfo {
	return dto.UserInfo{
		UserName:     info.UserName,
		CreditAmount: info.CreditAmount,
		JoinedDate:   info.JoinedDate,
		IsVerified:   info.IsVerified,
	}
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

package handler

import (
	"net/http"

	"kemlabels/internal/dto"
	"kemlabels/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *AuthHandler) EmailExists(c echo.Context) error {
	var req dto.EmailRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, service.ErrMissingFields)
	}
	if err := h.Service.EmailExists(c.Request().Context(), req.Email); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.EmailExistsResponse{EmailExists: true})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	return h.issueOTP(c)
}

// GenerateNewOTP re-issues a passcode; the upsert in the store replaces
// whatever code was outstanding for the address.
func (h *AuthHandler) GenerateNewOTP(c echo.Context) error {
	return h.issueOTP(c)
}

func (h *AuthHandler) issueOTP(c echo.Context) error {
	var req dto.EmailRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, service.ErrMissingFields)
	}
	if err := h.Service.IssueOTP(c.Request().Context(), req.Email); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *AuthHandler) CheckOTP(c echo.Context) error {
	var req dto.CheckOTPRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, service.ErrMissingFields)
	}
	if err := h.Service.CheckOTP(c.Request().Context(), req.Email, req.EnteredOTP); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, "success")
}

func (h *AuthHandler) UpdateUserPass(c echo.Context) error {
	var req dto.UpdatePasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, service.ErrMissingFields)
	}
	if err := h.Service.UpdatePassword(c.Request().Context(), req.Email, req.Password); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: "/signin"})
}

// Package http provides HTTP handlers for registration and account management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/zkvault/zkvault/internal/auth/http"
	apperrors "github.com/zkvault/zkvault/internal/errors"
	"github.com/zkvault/zkvault/internal/httputil"
	"github.com/zkvault/zkvault/internal/user/http/dto"
	"github.com/zkvault/zkvault/internal/user/usecase"
	customValidation "github.com/zkvault/zkvault/internal/validation"
)

// AccountHandler handles registration and account-level requests.
type AccountHandler struct {
	userUseCase     usecase.UserUseCase
	rotationUseCase usecase.RotationUseCase
	logger          *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(
	userUseCase usecase.UserUseCase,
	rotationUseCase usecase.RotationUseCase,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		userUseCase:     userUseCase,
		rotationUseCase: rotationUseCase,
		logger:          logger,
	}
}

// RegisterHandler creates an account.
// POST /v1/auth/register - Returns 201 Created, or 409 Conflict for a taken email.
func (h *AccountHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Register(c.Request.Context(), req.ToRegisterInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// GetVaultKeyHandler returns the caller's encrypted vault key.
// GET /v1/account/vault-key
func (h *AccountHandler) GetVaultKeyHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	material, err := h.userUseCase.GetVaultKeyMaterial(c.Request.Context(), user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVaultKeyToResponse(material))
}

// RotateCredentialsHandler atomically replaces the auth hash, the vault key and
// every re-encrypted vault item.
// POST /v1/account/rotate - Returns 204 No Content.
func (h *AccountHandler) RotateCredentialsHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.RotateCredentialsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.rotationUseCase.RotateCredentials(c.Request.Context(), user.ID, req.ToRotateInput()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// DeleteAccountHandler removes the caller's account and everything it owns.
// DELETE /v1/account - Requires the current auth hash in the body.
func (h *AccountHandler) DeleteAccountHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.DeleteAccountRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.userUseCase.DeleteAccount(c.Request.Context(), user.ID, req.AuthHash); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zkvault/zkvault/internal/auth/http/dto"
	authUseCase "github.com/zkvault/zkvault/internal/auth/usecase"
	"github.com/zkvault/zkvault/internal/httputil"
	customValidation "github.com/zkvault/zkvault/internal/validation"
)

// SessionHandler handles login, refresh and logout.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(sessionUseCase authUseCase.SessionUseCase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// LoginHandler opens a session.
// POST /v1/auth/login - Returns 200 OK with an access token and a refresh token.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	session, err := h.sessionUseCase.Login(c.Request.Context(), req.Email, req.AuthHash)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}

// RefreshHandler exchanges a refresh token for a new token pair.
// POST /v1/auth/refresh - The submitted refresh token cannot be used again.
func (h *SessionHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	session, err := h.sessionUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}

// LogoutHandler revokes a refresh token.
// POST /v1/auth/logout - Always returns 204 No Content, whatever the token state.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	var req dto.RefreshTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.Data(http.StatusNoContent, "application/json", nil)
		return
	}

	if err := h.sessionUseCase.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.logger.Warn("logout could not delete refresh token", slog.Any("error", err))
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

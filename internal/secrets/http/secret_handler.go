// Package http provides HTTP handlers for ephemeral secret sharing. Creating,
// listing and revoking act on the caller's own secrets; access is public and the
// token in the URL is the only credential.
package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/zkvault/zkvault/internal/auth/http"
	apperrors "github.com/zkvault/zkvault/internal/errors"
	"github.com/zkvault/zkvault/internal/httputil"
	"github.com/zkvault/zkvault/internal/secrets/http/dto"
	"github.com/zkvault/zkvault/internal/secrets/usecase"
	customValidation "github.com/zkvault/zkvault/internal/validation"
)

// SecretHandler handles HTTP requests for secrets.
type SecretHandler struct {
	secretUseCase usecase.SecretUseCase
	logger        *slog.Logger
}

// NewSecretHandler creates a new SecretHandler.
func NewSecretHandler(secretUseCase usecase.SecretUseCase, logger *slog.Logger) *SecretHandler {
	return &SecretHandler{
		secretUseCase: secretUseCase,
		logger:        logger,
	}
}

// CreateHandler shares a new secret. The response is the only time the access
// token is returned.
// POST /v1/secrets - Returns 201 Created.
func (h *SecretHandler) CreateHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req dto.CreateSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	created, err := h.secretUseCase.Create(c.Request.Context(), ownerID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCreatedSecretToResponse(created))
}

// ListHandler returns metadata for the caller's secrets, newest first.
// GET /v1/secrets?offset=0&limit=50
func (h *SecretHandler) ListHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	secrets, err := h.secretUseCase.ListOwned(c.Request.Context(), ownerID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretsToListResponse(secrets))
}

// AccessHandler reads a secret and consumes one access.
// POST /v1/secrets/access/:token - The JSON body with a password is optional.
func (h *SecretHandler) AccessHandler(c *gin.Context) {
	var req dto.AccessSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	accessed, err := h.secretUseCase.Access(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.MapAccessedSecretToResponse(accessed))
}

// RevokeHandler permanently blocks further reads of a secret.
// POST /v1/secrets/:id/revoke - Returns 204 No Content, also when already revoked.
func (h *SecretHandler) RevokeHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	secretID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid secret ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.secretUseCase.Revoke(c.Request.Context(), ownerID, secretID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *SecretHandler) ownerID(c *gin.Context) (uuid.UUID, bool) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return uuid.Nil, false
	}
	return user.ID, true
}

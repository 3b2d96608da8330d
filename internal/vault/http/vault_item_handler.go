// Package http provides HTTP handlers for vault item operations. Every handler
// runs behind the authentication middleware and acts on the caller's own vault.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/zkvault/zkvault/internal/auth/http"
	apperrors "github.com/zkvault/zkvault/internal/errors"
	"github.com/zkvault/zkvault/internal/httputil"
	customValidation "github.com/zkvault/zkvault/internal/validation"
	"github.com/zkvault/zkvault/internal/vault/http/dto"
	"github.com/zkvault/zkvault/internal/vault/usecase"
)

// VaultItemHandler handles HTTP requests for vault items.
type VaultItemHandler struct {
	vaultItemUseCase usecase.VaultItemUseCase
	logger           *slog.Logger
}

// NewVaultItemHandler creates a new VaultItemHandler.
func NewVaultItemHandler(vaultItemUseCase usecase.VaultItemUseCase, logger *slog.Logger) *VaultItemHandler {
	return &VaultItemHandler{
		vaultItemUseCase: vaultItemUseCase,
		logger:           logger,
	}
}

// ListHandler returns the caller's vault items.
// GET /v1/vault/items?offset=0&limit=50
func (h *VaultItemHandler) ListHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	items, err := h.vaultItemUseCase.List(c.Request.Context(), ownerID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVaultItemsToListResponse(items))
}

// CreateHandler stores a new vault item owned by the caller.
// POST /v1/vault/items - Returns 201 Created.
func (h *VaultItemHandler) CreateHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	item, err := h.vaultItemUseCase.Create(c.Request.Context(), ownerID, req.Site, req.EncryptedPassword)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapVaultItemToResponse(item))
}

// UpdateHandler replaces the site and ciphertext of a vault item.
// PUT /v1/vault/items/:id - Returns 403 Forbidden for items owned by another user.
func (h *VaultItemHandler) UpdateHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	itemID, ok := h.itemID(c)
	if !ok {
		return
	}

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	item, err := h.vaultItemUseCase.Update(
		c.Request.Context(),
		ownerID,
		itemID,
		req.Site,
		req.EncryptedPassword,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVaultItemToResponse(item))
}

// DeleteHandler removes a vault item.
// DELETE /v1/vault/items/:id - Returns 204 No Content.
func (h *VaultItemHandler) DeleteHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	itemID, ok := h.itemID(c)
	if !ok {
		return
	}

	if err := h.vaultItemUseCase.Delete(c.Request.Context(), ownerID, itemID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *VaultItemHandler) ownerID(c *gin.Context) (uuid.UUID, bool) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return uuid.Nil, false
	}
	return user.ID, true
}

func (h *VaultItemHandler) itemID(c *gin.Context) (uuid.UUID, bool) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid vault item ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return itemID, true
}

func (h *VaultItemHandler) bindRequest(c *gin.Context) (*dto.VaultItemRequest, bool) {
	var req dto.VaultItemRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, false
	}

	return &req, true
}

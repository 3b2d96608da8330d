// Package http provides HTTP handlers for breach lookups.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	"github.com/zkvault/zkvault/internal/httputil"
	"github.com/zkvault/zkvault/internal/leaks/http/dto"
	"github.com/zkvault/zkvault/internal/leaks/usecase"
	customValidation "github.com/zkvault/zkvault/internal/validation"
)

// LeakHandler handles HTTP requests for breach lookups.
type LeakHandler struct {
	leakUseCase usecase.LeakUseCase
	logger      *slog.Logger
}

// NewLeakHandler creates a new LeakHandler.
func NewLeakHandler(leakUseCase usecase.LeakUseCase, logger *slog.Logger) *LeakHandler {
	return &LeakHandler{
		leakUseCase: leakUseCase,
		logger:      logger,
	}
}

// EmailCheckHandler looks up an email address.
// POST /v1/leaks/email/check - Returns 503 when no provider could answer.
func (h *LeakHandler) EmailCheckHandler(c *gin.Context) {
	var req dto.EmailLeakCheckRequest
	if !h.bind(c, &req) {
		return
	}

	leaked, err := h.leakUseCase.CheckEmail(c.Request.Context(), req.Email)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.LeakCheckResponse{Leaked: leaked})
}

// PasswordCheckHandler looks up the SHA-1 digest of a password.
// POST /v1/leaks/password/check - Returns 503 when no provider could answer.
func (h *LeakHandler) PasswordCheckHandler(c *gin.Context) {
	var req dto.PasswordLeakCheckRequest
	if !h.bind(c, &req) {
		return
	}

	leaked, err := h.leakUseCase.CheckPassword(c.Request.Context(), req.SHA1)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.LeakCheckResponse{Leaked: leaked})
}

func (h *LeakHandler) bind(c *gin.Context, req validation.Validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return false
	}

	return true
}

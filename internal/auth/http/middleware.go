package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	authService "github.com/zkvault/zkvault/internal/auth/service"
	apperrors "github.com/zkvault/zkvault/internal/errors"
	"github.com/zkvault/zkvault/internal/httputil"
	userDomain "github.com/zkvault/zkvault/internal/user/domain"
)

// UserLoader loads the user named by an access token.
type UserLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// AuthenticationMiddleware authenticates requests carrying "Authorization: Bearer <access token>".
//
// The token signature and expiry are checked first, then the user is loaded so that
// tokens of deleted accounts stop working immediately. The user is stored in the
// request context for GetUser.
//
// Error handling:
//   - Missing or malformed header → 401 Unauthorized
//   - Invalid or expired token → 401 Unauthorized
//   - Unknown user → 401 Unauthorized
//   - Other errors → mapped by httputil.HandleErrorGin
func AuthenticationMiddleware(
	accessTokens authService.AccessTokenService,
	users UserLoader,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		accessToken := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if accessToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		userID, err := accessTokens.Parse(accessToken)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if apperrors.Is(err, userDomain.ErrUserNotFound) {
				logger.Debug("authentication failed: user no longer exists",
					slog.String("user_id", userID.String()))
				err = authDomain.ErrInvalidAccessToken
			}
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))

		logger.Debug("authentication successful", slog.String("user_id", user.ID.String()))

		c.Next()
	}
}

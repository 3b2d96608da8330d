package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	httpMocks "github.com/zkvault/zkvault/internal/auth/http/mocks"
	userDomain "github.com/zkvault/zkvault/internal/user/domain"
)

func newAuthenticatedRouter(
	accessTokens *httpMocks.MockAccessTokenService,
	users *httpMocks.MockUserLoader,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.GET("/protected", AuthenticationMiddleware(accessTokens, users, logger), func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, user.ID.String())
	})
	return router
}

func TestAuthenticationMiddleware(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		accessTokens := &httpMocks.MockAccessTokenService{}
		users := &httpMocks.MockUserLoader{}
		router := newAuthenticatedRouter(accessTokens, users)

		accessTokens.On("Parse", "good-token").Return(userID, nil).Once()
		users.On("GetByID", mock.Anything, userID).Return(&userDomain.User{ID: userID}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String(), w.Body.String())
	})

	t.Run("MissingHeader", func(t *testing.T) {
		router := newAuthenticatedRouter(&httpMocks.MockAccessTokenService{}, &httpMocks.MockUserLoader{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		router := newAuthenticatedRouter(&httpMocks.MockAccessTokenService{}, &httpMocks.MockUserLoader{})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		accessTokens := &httpMocks.MockAccessTokenService{}
		users := &httpMocks.MockUserLoader{}
		router := newAuthenticatedRouter(accessTokens, users)

		accessTokens.On("Parse", "expired").Return(uuid.Nil, authDomain.ErrInvalidAccessToken).Once()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer expired")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("DeletedUser", func(t *testing.T) {
		accessTokens := &httpMocks.MockAccessTokenService{}
		users := &httpMocks.MockUserLoader{}
		router := newAuthenticatedRouter(accessTokens, users)

		accessTokens.On("Parse", "good-token").Return(userID, nil).Once()
		users.On("GetByID", mock.Anything, userID).Return(nil, userDomain.ErrUserNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		accessTokens := &httpMocks.MockAccessTokenService{}
		users := &httpMocks.MockUserLoader{}
		router := newAuthenticatedRouter(accessTokens, users)

		accessTokens.On("Parse", "good-token").Return(userID, nil).Once()
		users.On("GetByID", mock.Anything, userID).Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

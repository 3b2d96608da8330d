package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	apperrors "github.com/zkvault/zkvault/internal/errors"
)

const accessTokenIssuer = "zkvault"

// MinAccessTokenSecretLength is the shortest HS256 signing secret accepted, in bytes.
const MinAccessTokenSecretLength = 32

// jwtAccessTokenService implements AccessTokenService with HS256 JWTs whose subject
// is the user id.
type jwtAccessTokenService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// Issue signs a new access token.
func (s *jwtAccessTokenService) Issue(userID uuid.UUID) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.expiration)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    accessTokenIssuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.Must(uuid.NewV7()).String(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign access token")
	}
	return signed, expiresAt, nil
}

// Parse verifies an access token and returns its subject.
func (s *jwtAccessTokenService) Parse(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(accessTokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return uuid.Nil, authDomain.ErrInvalidAccessToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, authDomain.ErrInvalidAccessToken
	}
	return userID, nil
}

// NewAccessTokenService creates an AccessTokenService signing with secret.
// A blank secret, or one shorter than MinAccessTokenSecretLength bytes, is
// rejected with ErrWeakAccessTokenSecret.
func NewAccessTokenService(secret string, expiration time.Duration) (AccessTokenService, error) {
	if len(strings.TrimSpace(secret)) < MinAccessTokenSecretLength {
		return nil, authDomain.ErrWeakAccessTokenSecret
	}
	return &jwtAccessTokenService{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}, nil
}

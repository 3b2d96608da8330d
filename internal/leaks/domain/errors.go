package domain

import (
	apperrors "github.com/zkvault/zkvault/internal/errors"
)

// ErrProvidersUnavailable indicates that no breach provider could answer.
var ErrProvidersUnavailable = apperrors.Coded(
	apperrors.ErrUpstreamUnavailable,
	"leak_providers_unavailable",
	"Leak-check providers are unavailable",
)

package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/zkvault/zkvault/internal/errors"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

var (
	errInvalidOffset = apperrors.Wrap(
		apperrors.ErrInvalidInput,
		"invalid offset parameter: must be a non-negative integer",
	)
	errInvalidLimit = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid limit parameter: must be between 1 and 100")
)

// ParsePagination reads the offset and limit query parameters.
// Offset defaults to 0 and limit to 50; limit may not exceed 100.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, errInvalidOffset
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, 0, errInvalidLimit
	}

	return offset, limit, nil
}

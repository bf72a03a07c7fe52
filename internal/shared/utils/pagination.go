package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/errors"
)

// ParseSearchPage reads the zero-based "page" query parameter. A missing value is
// the first page; a negative, oversized or non-numeric value is rejected rather
// than clamped.
func ParseSearchPage(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("page"))
	if raw == "" {
		return constants.FirstSearchPage, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError("page must be an integer", raw)
	}
	if page < 0 {
		return 0, errors.NewValidationError("page must be >= 0", raw)
	}
	if page > constants.MaxSearchPage {
		return 0, errors.NewValidationError("page is too large", raw)
	}
	return page, nil
}

// ClampPageSize applies the default when size is unset and caps it at the maximum.
func ClampPageSize(size int) int {
	if size < 1 {
		return constants.DefaultSearchPageSize
	}
	if size > constants.MaxSearchPageSize {
		return constants.MaxSearchPageSize
	}
	return size
}

// SearchOffset is the row offset of a zero-based page. Page and size are
// clamped to their maximums so the product cannot overflow.
func SearchOffset(page, pageSize int) int {
	if page <= 0 || pageSize <= 0 {
		return 0
	}
	return min(page, constants.MaxSearchPage) * min(pageSize, constants.MaxSearchPageSize)
}

package pager

import (
	"strings"

	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/errors"
)

// PageCursor is the filter state of one search results page.
type PageCursor struct {
	query      string
	category   string
	locale     string
	pageNumber int
	hasMore    bool
}

// NewPageCursor builds a cursor. pageNumber is zero based and lies in
// [0, constants.MaxSearchPage]; hasMore reports whether the query found rows
// past this page. The last addressable page never links further.
func NewPageCursor(query, category, locale string, pageNumber int, hasMore bool) (PageCursor, error) {
	if pageNumber < 0 {
		return PageCursor{}, errors.NewValidationError("page number must not be negative")
	}
	if pageNumber > constants.MaxSearchPage {
		return PageCursor{}, errors.NewValidationError("page number is too large")
	}
	if pageNumber == constants.MaxSearchPage {
		hasMore = false
	}
	return PageCursor{
		query:      strings.TrimSpace(query),
		category:   strings.TrimSpace(category),
		locale:     strings.TrimSpace(locale),
		pageNumber: pageNumber,
		hasMore:    hasMore,
	}, nil
}

func (c PageCursor) Query() string    { return c.query }
func (c PageCursor) Category() string { return c.category }
func (c PageCursor) Locale() string   { return c.locale }
func (c PageCursor) PageNumber() int  { return c.pageNumber }
func (c PageCursor) HasMore() bool    { return c.hasMore }

package pager

import (
	"golang.org/x/text/language"

	"github.com/rollerweb/roller/internal/domain/entry"
	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/locale"
	"github.com/rollerweb/roller/internal/shared/logger"
)

// SearchResultsPager navigates between pages of weblog search results.
// Search results have no month or year grouping, so collection links are
// always absent.
type SearchResultsPager[T entry.Identified] struct {
	urls    URLStrategy
	catalog MessageCatalog
	weblog  weblog.Ref
	cursor  PageCursor
	entries *entry.Bucket[T]

	// viewLocale picks labels; linkLocale is carried into generated URLs.
	viewLocale language.Tag
	linkLocale string
}

// NewSearchResultsPager resolves the display locale once. A locale that does
// not parse is logged and replaced by the weblog's own locale, and is then
// left out of generated links.
func NewSearchResultsPager[T entry.Identified](
	urls URLStrategy,
	catalog MessageCatalog,
	cursor PageCursor,
	w weblog.Ref,
	entries *entry.Bucket[T],
	log logger.Interface,
) (*SearchResultsPager[T], error) {
	if urls == nil || catalog == nil || w == nil {
		return nil, errors.NewInternalError("search pager requires url strategy, catalog and weblog")
	}
	if cursor.PageNumber() < 0 {
		return nil, errors.NewValidationError("page number must not be negative")
	}
	if entries == nil {
		entries = entry.NewBucket[T]()
	}

	viewLocale, err := locale.Resolve(cursor.Locale(), w.LocaleTag())
	linkLocale := cursor.Locale()
	if err != nil {
		log.Warnw("invalid search locale, using weblog default",
			"weblog", w.Handle(),
			"locale", cursor.Locale(),
			"error", err,
		)
		linkLocale = ""
	}

	return &SearchResultsPager[T]{
		urls:       urls,
		catalog:    catalog,
		weblog:     w,
		cursor:     cursor,
		entries:    entries,
		viewLocale: viewLocale,
		linkLocale: linkLocale,
	}, nil
}

// Entries returns the bucket given at construction, unchanged.
func (p *SearchResultsPager[T]) Entries() *entry.Bucket[T] {
	return p.entries
}

// Locale is the resolved display locale.
func (p *SearchResultsPager[T]) Locale() language.Tag {
	return p.viewLocale
}

func (p *SearchResultsPager[T]) HomeLink() Link {
	return Some(p.urls.WeblogURL(p.weblog, p.linkLocale, false))
}

func (p *SearchResultsPager[T]) HomeName() Label {
	return Some(p.catalog.Lookup(p.viewLocale, constants.MsgSearchPagerHome))
}

func (p *SearchResultsPager[T]) NextLink() Link {
	if !p.cursor.HasMore() {
		return None[string]()
	}
	return Some(p.searchURL(p.cursor.PageNumber() + 1))
}

func (p *SearchResultsPager[T]) NextName() Label {
	if !p.NextLink().Present() {
		return None[string]()
	}
	return Some(p.catalog.Lookup(p.viewLocale, constants.MsgSearchPagerNext))
}

func (p *SearchResultsPager[T]) PrevLink() Link {
	if p.cursor.PageNumber() <= 0 {
		return None[string]()
	}
	return Some(p.searchURL(p.cursor.PageNumber() - 1))
}

func (p *SearchResultsPager[T]) PrevName() Label {
	if !p.PrevLink().Present() {
		return None[string]()
	}
	return Some(p.catalog.Lookup(p.viewLocale, constants.MsgSearchPagerPrev))
}

func (p *SearchResultsPager[T]) NextCollectionLink() Link  { return None[string]() }
func (p *SearchResultsPager[T]) NextCollectionName() Label { return None[string]() }
func (p *SearchResultsPager[T]) PrevCollectionLink() Link  { return None[string]() }
func (p *SearchResultsPager[T]) PrevCollectionName() Label { return None[string]() }

func (p *SearchResultsPager[T]) searchURL(page int) string {
	return p.urls.WeblogSearchURL(p.weblog, p.linkLocale, p.cursor.Query(), p.cursor.Category(), page, false)
}

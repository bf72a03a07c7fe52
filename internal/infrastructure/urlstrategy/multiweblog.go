// Package urlstrategy builds the public URLs of weblogs, entries and the
// AtomPub service.
package urlstrategy

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/shared/constants"
)

// MultiWeblogURLStrategy lays out many weblogs under one server, each rooted
// at /{handle}/ with an optional /{locale}/ segment.
type MultiWeblogURLStrategy struct {
	baseURL string
}

// NewMultiWeblogURLStrategy takes the absolute server URL used for absolute links.
func NewMultiWeblogURLStrategy(baseURL string) *MultiWeblogURLStrategy {
	return &MultiWeblogURLStrategy{baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *MultiWeblogURLStrategy) prefix(absolute bool) string {
	if absolute {
		return s.baseURL
	}
	return ""
}

func (s *MultiWeblogURLStrategy) weblogPath(w weblog.Ref, locale string) string {
	p := "/" + url.PathEscape(w.Handle()) + "/"
	if locale != "" {
		p += url.PathEscape(locale) + "/"
	}
	return p
}

// WeblogURL is the weblog's front page.
func (s *MultiWeblogURLStrategy) WeblogURL(w weblog.Ref, locale string, absolute bool) string {
	return s.prefix(absolute) + s.weblogPath(w, locale)
}

// WeblogSearchURL links to a page of search results. Page 0 and an empty
// category are left out so the first page has a single canonical form.
func (s *MultiWeblogURLStrategy) WeblogSearchURL(w weblog.Ref, locale, query, category string, page int, absolute bool) string {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if category != "" {
		params.Set("cat", category)
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	u := s.prefix(absolute) + s.weblogPath(w, locale) + "search"
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func (s *MultiWeblogURLStrategy) EntryURL(w weblog.Ref, locale, anchor string, absolute bool) string {
	return s.prefix(absolute) + s.weblogPath(w, locale) + "entry/" + url.PathEscape(anchor)
}

func (s *MultiWeblogURLStrategy) CommentsURL(w weblog.Ref, locale, anchor string, absolute bool) string {
	return s.EntryURL(w, locale, anchor, absolute) + "#comments"
}

func (s *MultiWeblogURLStrategy) WeblogCategoryURL(w weblog.Ref, locale, category string, absolute bool) string {
	return s.prefix(absolute) + s.weblogPath(w, locale) + "category/" + url.PathEscape(category)
}

// AtomServiceURL is the absolute URL of the AtomPub service document.
func (s *MultiWeblogURLStrategy) AtomServiceURL() string {
	return s.baseURL + constants.AtomServicePath
}

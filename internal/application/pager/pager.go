// Package pager computes the navigation links shown around a page of weblog
// entries.
package pager

import (
	"golang.org/x/text/language"

	"github.com/rollerweb/roller/internal/domain/entry"
	"github.com/rollerweb/roller/internal/domain/weblog"
)

// WeblogEntriesPager is the navigation contract shared by entry listings.
// Collection links move between months or years where a listing has them.
type WeblogEntriesPager[T entry.Identified] interface {
	Entries() *entry.Bucket[T]

	HomeLink() Link
	HomeName() Label
	NextLink() Link
	NextName() Label
	PrevLink() Link
	PrevName() Label

	NextCollectionLink() Link
	NextCollectionName() Label
	PrevCollectionLink() Link
	PrevCollectionName() Label
}

// URLStrategy builds weblog URLs. Same inputs always give the same URL.
type URLStrategy interface {
	WeblogURL(w weblog.Ref, locale string, absolute bool) string
	WeblogSearchURL(w weblog.Ref, locale, query, category string, page int, absolute bool) string
}

// MessageCatalog looks up localized labels, returning the key on a miss.
type MessageCatalog interface {
	Lookup(tag language.Tag, key string) string
}

// Navigation is every link a pager offers, ready for rendering.
type Navigation struct {
	Home           NavigationLink `json:"home"`
	Next           NavigationLink `json:"next"`
	Prev           NavigationLink `json:"prev"`
	NextCollection NavigationLink `json:"next_collection"`
	PrevCollection NavigationLink `json:"prev_collection"`
}

func NavigationOf[T entry.Identified](p WeblogEntriesPager[T]) Navigation {
	return Navigation{
		Home:           newNavigationLink(p.HomeLink(), p.HomeName()),
		Next:           newNavigationLink(p.NextLink(), p.NextName()),
		Prev:           newNavigationLink(p.PrevLink(), p.PrevName()),
		NextCollection: newNavigationLink(p.NextCollectionLink(), p.NextCollectionName()),
		PrevCollection: newNavigationLink(p.PrevCollectionLink(), p.PrevCollectionName()),
	}
}

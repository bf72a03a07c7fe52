package usecases

import (
	"context"
	"io"

	"github.com/rollerweb/roller/internal/application/planet/dto"
	"github.com/rollerweb/roller/internal/domain/planet"
)

// FetchedFeed is a parsed feed. Entries carry GUID and content but no IDs.
type FetchedFeed struct {
	Title   string
	SiteURL string
	Entries []planet.SubscriptionEntry
}

type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) (*FetchedFeed, error)
}

// PageRenderer executes a named template from the planet template directory.
type PageRenderer interface {
	Has(name string) bool
	Render(w io.Writer, name string, data dto.PageData) error
}

// GroupSettings is a configured planet group and the feeds it aggregates.
type GroupSettings struct {
	Group    planet.Group
	FeedURLs []string
}

// Package feed fetches and parses RSS and Atom feeds for planet subscriptions.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/rollerweb/roller/internal/application/planet/usecases"
	"github.com/rollerweb/roller/internal/domain/planet"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Roller Planet Aggregator"
)

// Fetcher implements usecases.FeedFetcher with gofeed.
type Fetcher struct {
	parser *gofeed.Parser
	now    func() time.Time
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = DefaultUserAgent
	return &Fetcher{parser: parser, now: time.Now}
}

var _ usecases.FeedFetcher = (*Fetcher)(nil)

func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (*usecases.FetchedFeed, error) {
	parsed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", feedURL, err)
	}
	return f.convert(parsed), nil
}

func (f *Fetcher) convert(parsed *gofeed.Feed) *usecases.FetchedFeed {
	now := f.now().UTC()
	out := &usecases.FetchedFeed{
		Title:   strings.TrimSpace(parsed.Title),
		SiteURL: parsed.Link,
		Entries: make([]planet.SubscriptionEntry, 0, len(parsed.Items)),
	}

	for _, item := range parsed.Items {
		if item == nil {
			continue
		}

		// Undated items take the fetch time so they sort as new.
		pub := now
		if item.PublishedParsed != nil {
			pub = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			pub = item.UpdatedParsed.UTC()
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		out.Entries = append(out.Entries, planet.SubscriptionEntry{
			GUID:      strings.TrimSpace(item.GUID),
			Title:     strings.TrimSpace(item.Title),
			Permalink: item.Link,
			Author:    authorOf(item),
			Content:   content,
			PubTime:   pub,
		})
	}
	return out
}

func authorOf(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return ""
}

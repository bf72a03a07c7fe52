package planet

import (
	"fmt"
	"strings"
	"time"
)

// Subscription is an external feed aggregated into a planet group.
type Subscription struct {
	id          string
	groupHandle string
	feedURL     string
	title       string
	siteURL     string
	lastUpdated *time.Time
}

func NewSubscription(id, groupHandle, feedURL string) (*Subscription, error) {
	if id == "" {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if strings.TrimSpace(groupHandle) == "" {
		return nil, fmt.Errorf("group handle is required")
	}
	if strings.TrimSpace(feedURL) == "" {
		return nil, fmt.Errorf("feed URL is required")
	}
	return &Subscription{id: id, groupHandle: groupHandle, feedURL: strings.TrimSpace(feedURL)}, nil
}

func ReconstructSubscription(id, groupHandle, feedURL, title, siteURL string, lastUpdated *time.Time) *Subscription {
	return &Subscription{
		id:          id,
		groupHandle: groupHandle,
		feedURL:     feedURL,
		title:       title,
		siteURL:     siteURL,
		lastUpdated: lastUpdated,
	}
}

func (s *Subscription) ID() string              { return s.id }
func (s *Subscription) GroupHandle() string     { return s.groupHandle }
func (s *Subscription) FeedURL() string         { return s.feedURL }
func (s *Subscription) Title() string           { return s.title }
func (s *Subscription) SiteURL() string         { return s.siteURL }
func (s *Subscription) LastUpdated() *time.Time { return s.lastUpdated }

// DisplayTitle falls back to the feed URL until a fetch has named the subscription.
func (s *Subscription) DisplayTitle() string {
	if s.title != "" {
		return s.title
	}
	return s.feedURL
}

// MarkFetched records the feed's metadata after a successful fetch.
func (s *Subscription) MarkFetched(title, siteURL string, at time.Time) {
	if title != "" {
		s.title = title
	}
	if siteURL != "" {
		s.siteURL = siteURL
	}
	at = at.UTC()
	s.lastUpdated = &at
}

// SubscriptionEntry is one item of a subscribed feed.
type SubscriptionEntry struct {
	ID             string
	SubscriptionID string
	GUID           string
	Title          string
	Permalink      string
	Author         string
	Content        string
	PubTime        time.Time
}

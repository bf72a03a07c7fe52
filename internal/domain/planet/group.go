package planet

import (
	"context"
	"time"
)

// Group is a named aggregation of subscriptions, rendered as one planet page.
type Group struct {
	Handle string
	Title  string
}

// GroupEntry is a subscription entry together with the feed it came from.
type GroupEntry struct {
	SubscriptionEntry
	SourceTitle string
	SourceURL   string
}

type Repository interface {
	ListSubscriptions(ctx context.Context, groupHandle string) ([]*Subscription, error)
	ListAllSubscriptions(ctx context.Context) ([]*Subscription, error)
	// UpsertSubscription creates the subscription or updates the one with the same group and feed URL.
	UpsertSubscription(ctx context.Context, s *Subscription) error
	// SaveEntries stores entries whose GUID is new for the subscription and
	// returns how many were stored.
	SaveEntries(ctx context.Context, subscriptionID string, entries []SubscriptionEntry) (int, error)
	// RecentEntries returns the newest entries across a group's subscriptions.
	RecentEntries(ctx context.Context, groupHandle string, since time.Time, limit int) ([]GroupEntry, error)
}

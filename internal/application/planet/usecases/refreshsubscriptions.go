package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rollerweb/roller/internal/application/planet/dto"
	"github.com/rollerweb/roller/internal/domain/planet"
	"github.com/rollerweb/roller/internal/shared/db"
	"github.com/rollerweb/roller/internal/shared/goroutine"
	"github.com/rollerweb/roller/internal/shared/id"
	"github.com/rollerweb/roller/internal/shared/logger"
)

const defaultFetchConcurrency = 4

type RefreshSubscriptionsUseCase struct {
	repo        planet.Repository
	fetcher     FeedFetcher
	txMgr       *db.TransactionManager
	groups      []GroupSettings
	concurrency int
	logger      logger.Interface
	now         func() time.Time
}

func NewRefreshSubscriptionsUseCase(
	repo planet.Repository,
	fetcher FeedFetcher,
	txMgr *db.TransactionManager,
	groups []GroupSettings,
	concurrency int,
	logger logger.Interface,
) *RefreshSubscriptionsUseCase {
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}
	return &RefreshSubscriptionsUseCase{
		repo:        repo,
		fetcher:     fetcher,
		txMgr:       txMgr,
		groups:      groups,
		concurrency: concurrency,
		logger:      logger,
		now:         time.Now,
	}
}

// Execute registers configured feeds that are not stored yet, then fetches
// every subscription. A failing feed is counted and logged; it does not stop
// the others.
func (uc *RefreshSubscriptionsUseCase) Execute(ctx context.Context) (*dto.RefreshResult, error) {
	uc.logger.Infow("executing refresh subscriptions use case", "groups", len(uc.groups))

	if err := uc.syncConfigured(ctx); err != nil {
		return nil, err
	}

	subs, err := uc.repo.ListAllSubscriptions(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, err
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = &dto.RefreshResult{Subscriptions: len(subs)}
		slots  = make(chan struct{}, uc.concurrency)
	)
	record := func(saved int, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
			return
		}
		result.NewEntries += saved
	}

	for _, sub := range subs {
		slots <- struct{}{}
		goroutine.SafeGoGroup(&wg, uc.logger, "planet-fetch", func() {
			defer func() { <-slots }()
			record(uc.refreshOne(ctx, sub))
		})
	}
	wg.Wait()

	uc.logger.Infow("planet subscriptions refreshed",
		"subscriptions", result.Subscriptions,
		"failed", result.Failed,
		"new_entries", result.NewEntries,
	)
	return result, nil
}

func (uc *RefreshSubscriptionsUseCase) refreshOne(ctx context.Context, sub *planet.Subscription) (int, error) {
	feed, err := uc.fetcher.Fetch(ctx, sub.FeedURL())
	if err != nil {
		uc.logger.Warnw("failed to fetch feed", "feed", sub.FeedURL(), "error", err)
		return 0, fmt.Errorf("%s: %w", sub.FeedURL(), err)
	}

	entries := make([]planet.SubscriptionEntry, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		if e.GUID == "" {
			e.GUID = e.Permalink
		}
		if e.GUID == "" {
			continue
		}
		e.ID = id.New(id.PrefixFeedEntry)
		e.SubscriptionID = sub.ID()
		entries = append(entries, e)
	}

	// new entries and the fetch time are stored together
	var saved int
	err = uc.inTransaction(ctx, func(ctx context.Context) error {
		n, err := uc.repo.SaveEntries(ctx, sub.ID(), entries)
		if err != nil {
			uc.logger.Errorw("failed to save feed entries", "feed", sub.FeedURL(), "error", err)
			return err
		}
		sub.MarkFetched(feed.Title, feed.SiteURL, uc.now())
		if err := uc.repo.UpsertSubscription(ctx, sub); err != nil {
			uc.logger.Errorw("failed to update subscription", "feed", sub.FeedURL(), "error", err)
			return err
		}
		saved = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", sub.FeedURL(), err)
	}
	return saved, nil
}

// inTransaction runs fn in a transaction when a manager is configured.
func (uc *RefreshSubscriptionsUseCase) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if uc.txMgr == nil {
		return fn(ctx)
	}
	return uc.txMgr.RunInTransaction(ctx, fn)
}

func (uc *RefreshSubscriptionsUseCase) syncConfigured(ctx context.Context) error {
	if len(uc.groups) == 0 {
		return nil
	}
	existing, err := uc.repo.ListAllSubscriptions(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err)
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, s := range existing {
		known[s.GroupHandle()+"\x00"+s.FeedURL()] = true
	}

	for _, g := range uc.groups {
		for _, feedURL := range g.FeedURLs {
			if known[g.Group.Handle+"\x00"+feedURL] {
				continue
			}
			sub, err := planet.NewSubscription(id.New(id.PrefixSubscription), g.Group.Handle, feedURL)
			if err != nil {
				uc.logger.Warnw("skipping invalid planet subscription", "group", g.Group.Handle, "feed", feedURL, "error", err)
				continue
			}
			if err := uc.repo.UpsertSubscription(ctx, sub); err != nil {
				uc.logger.Errorw("failed to register subscription", "group", g.Group.Handle, "feed", feedURL, "error", err)
				return err
			}
			known[g.Group.Handle+"\x00"+feedURL] = true
			uc.logger.Infow("planet subscription registered", "group", g.Group.Handle, "feed", feedURL)
		}
	}
	return nil
}

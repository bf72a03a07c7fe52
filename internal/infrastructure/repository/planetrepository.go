package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rollerweb/roller/internal/domain/planet"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/mappers"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/models"
	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/db"
	"github.com/rollerweb/roller/internal/shared/logger"
)

type PlanetRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanetRepository(db *gorm.DB, logger logger.Interface) *PlanetRepository {
	return &PlanetRepository{db: db, logger: logger}
}

var _ planet.Repository = (*PlanetRepository)(nil)

func (r *PlanetRepository) ListSubscriptions(ctx context.Context, groupHandle string) ([]*planet.Subscription, error) {
	var rows []models.PlanetSubscriptionModel
	if err := db.Conn(ctx, r.db).
		Where("group_handle = ?", groupHandle).
		Order("feed_url ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return toSubscriptions(rows), nil
}

func (r *PlanetRepository) ListAllSubscriptions(ctx context.Context) ([]*planet.Subscription, error) {
	var rows []models.PlanetSubscriptionModel
	if err := db.Conn(ctx, r.db).
		Order("group_handle ASC").Order("feed_url ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return toSubscriptions(rows), nil
}

func toSubscriptions(rows []models.PlanetSubscriptionModel) []*planet.Subscription {
	out := make([]*planet.Subscription, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.SubscriptionToDomain(&rows[i]))
	}
	return out
}

// UpsertSubscription keys on group handle and feed URL. An existing row keeps
// its ID and takes the new title, site URL and fetch time.
func (r *PlanetRepository) UpsertSubscription(ctx context.Context, s *planet.Subscription) error {
	model := mappers.SubscriptionToModel(s)
	err := db.Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_handle"}, {Name: "feed_url"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "site_url", "last_updated"}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert subscription", "feed_url", s.FeedURL(), "error", err)
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

// SaveEntries inserts entries whose GUID the subscription has not stored yet.
func (r *PlanetRepository) SaveEntries(ctx context.Context, subscriptionID string, entries []planet.SubscriptionEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	rows := make([]models.PlanetEntryModel, 0, len(entries))
	for _, e := range entries {
		e.SubscriptionID = subscriptionID
		rows = append(rows, mappers.PlanetEntryToModel(e))
	}

	result := db.Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subscription_id"}, {Name: "guid"}},
		DoNothing: true,
	}).CreateInBatches(&rows, 100)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to save subscription entries: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

type groupEntryRow struct {
	models.PlanetEntryModel
	SourceTitle   string
	SourceFeedURL string
	SourceURL     string
}

func (r *PlanetRepository) RecentEntries(ctx context.Context, groupHandle string, since time.Time, limit int) ([]planet.GroupEntry, error) {
	e, s := constants.TableSubscriptionItems, constants.TableSubscriptions
	query := db.Conn(ctx, r.db).
		Table(e).
		Select(e+".*, "+s+".title AS source_title, "+s+".feed_url AS source_feed_url, "+s+".site_url AS source_url").
		Joins("JOIN "+s+" ON "+s+".id = "+e+".subscription_id").
		Where(s+".group_handle = ?", groupHandle).
		Where(e+".pub_time >= ?", since.UTC()).
		Order(e + ".pub_time DESC").Order(e + ".id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []groupEntryRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent planet entries: %w", err)
	}

	out := make([]planet.GroupEntry, 0, len(rows))
	for i := range rows {
		title := rows[i].SourceTitle
		if title == "" {
			title = rows[i].SourceFeedURL
		}
		out = append(out, planet.GroupEntry{
			SubscriptionEntry: mappers.PlanetEntryToDomain(&rows[i].PlanetEntryModel),
			SourceTitle:       title,
			SourceURL:         rows[i].SourceURL,
		})
	}
	return out, nil
}

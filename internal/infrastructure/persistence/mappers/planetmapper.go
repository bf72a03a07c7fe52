package mappers

import (
	"github.com/rollerweb/roller/internal/domain/planet"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/models"
)

// Planet rows map with plain functions; subscription entries are value types.

func SubscriptionToModel(s *planet.Subscription) *models.PlanetSubscriptionModel {
	return &models.PlanetSubscriptionModel{
		ID:          s.ID(),
		GroupHandle: s.GroupHandle(),
		FeedURL:     s.FeedURL(),
		Title:       s.Title(),
		SiteURL:     s.SiteURL(),
		LastUpdated: s.LastUpdated(),
	}
}

func SubscriptionToDomain(model *models.PlanetSubscriptionModel) *planet.Subscription {
	lastUpdated := model.LastUpdated
	if lastUpdated != nil {
		t := lastUpdated.UTC()
		lastUpdated = &t
	}
	return planet.ReconstructSubscription(model.ID, model.GroupHandle, model.FeedURL, model.Title, model.SiteURL, lastUpdated)
}

func PlanetEntryToModel(e planet.SubscriptionEntry) models.PlanetEntryModel {
	return models.PlanetEntryModel{
		ID:             e.ID,
		SubscriptionID: e.SubscriptionID,
		GUID:           e.GUID,
		Title:          e.Title,
		Permalink:      e.Permalink,
		Author:         e.Author,
		Content:        e.Content,
		PubTime:        e.PubTime.UTC(),
	}
}

func PlanetEntryToDomain(model *models.PlanetEntryModel) planet.SubscriptionEntry {
	return planet.SubscriptionEntry{
		ID:             model.ID,
		SubscriptionID: model.SubscriptionID,
		GUID:           model.GUID,
		Title:          model.Title,
		Permalink:      model.Permalink,
		Author:         model.Author,
		Content:        model.Content,
		PubTime:        model.PubTime.UTC(),
	}
}

package models

import (
	"time"

	"github.com/rollerweb/roller/internal/shared/constants"
)

type PlanetSubscriptionModel struct {
	ID          string `gorm:"primaryKey;size:48"`
	GroupHandle string `gorm:"size:48;not null;uniqueIndex:idx_subscription_group_feed"`
	FeedURL     string `gorm:"size:512;not null;uniqueIndex:idx_subscription_group_feed"`
	Title       string `gorm:"size:255"`
	SiteURL     string `gorm:"size:512"`
	LastUpdated *time.Time
}

func (PlanetSubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

type PlanetEntryModel struct {
	ID             string    `gorm:"primaryKey;size:48"`
	SubscriptionID string    `gorm:"size:48;not null;uniqueIndex:idx_planet_entry_guid"`
	GUID           string    `gorm:"size:512;not null;uniqueIndex:idx_planet_entry_guid"`
	Title          string    `gorm:"size:255"`
	Permalink      string    `gorm:"size:512"`
	Author         string    `gorm:"size:255"`
	Content        string    `gorm:"type:text"`
	PubTime        time.Time `gorm:"not null;index"`
}

func (PlanetEntryModel) TableName() string {
	return constants.TableSubscriptionItems
}

// All returns every model in creation order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&WeblogModel{},
		&WeblogCategoryModel{},
		&WeblogPermissionModel{},
		&MediaDirectoryModel{},
		&WeblogEntryModel{},
		&WeblogEntryTagModel{},
		&WeblogCommentModel{},
		&PlanetSubscriptionModel{},
		&PlanetEntryModel{},
	}
}

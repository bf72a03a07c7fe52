package models

import (
	"time"

	"github.com/rollerweb/roller/internal/shared/constants"
)

// WeblogModel is the persistence form of weblog.Weblog.
type WeblogModel struct {
	ID              string `gorm:"primaryKey;size:48"`
	Handle          string `gorm:"uniqueIndex;size:48;not null"`
	Name            string `gorm:"size:255;not null"`
	Tagline         string `gorm:"size:255"`
	Locale          string `gorm:"size:20"`
	Timezone        string `gorm:"size:50"`
	EnableMultiLang bool   `gorm:"not null"`
	CreatorID       string `gorm:"size:48;index"`
	Active          bool   `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (WeblogModel) TableName() string {
	return constants.TableWeblogs
}

type WeblogCategoryModel struct {
	ID          string `gorm:"primaryKey;size:48"`
	WeblogID    string `gorm:"size:48;not null;uniqueIndex:idx_category_weblog_name"`
	Name        string `gorm:"size:255;not null;uniqueIndex:idx_category_weblog_name"`
	Description string `gorm:"size:255"`
	Position    int    `gorm:"not null"`
}

func (WeblogCategoryModel) TableName() string {
	return constants.TableWeblogCategories
}

// WeblogPermissionModel stores granted actions comma separated, one row per
// user and weblog.
type WeblogPermissionModel struct {
	UserID   string `gorm:"primaryKey;size:48"`
	WeblogID string `gorm:"primaryKey;size:48;index"`
	Actions  string `gorm:"size:255;not null"`
}

func (WeblogPermissionModel) TableName() string {
	return constants.TablePermissions
}

type MediaDirectoryModel struct {
	ID          string `gorm:"primaryKey;size:48"`
	WeblogID    string `gorm:"size:48;not null;uniqueIndex:idx_media_weblog_name"`
	Name        string `gorm:"size:255;not null;uniqueIndex:idx_media_weblog_name"`
	Description string `gorm:"size:255"`
}

func (MediaDirectoryModel) TableName() string {
	return constants.TableMediaDirectories
}

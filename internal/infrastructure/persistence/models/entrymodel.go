package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/rollerweb/roller/internal/shared/constants"
)

type WeblogEntryModel struct {
	ID                string     `gorm:"primaryKey;size:48"`
	WeblogID          string     `gorm:"size:48;not null;uniqueIndex:idx_entry_weblog_anchor;index:idx_entry_weblog_status_pub"`
	CategoryID        string     `gorm:"size:48;index"`
	CreatorID         string     `gorm:"size:48;not null"`
	Anchor            string     `gorm:"size:255;not null;uniqueIndex:idx_entry_weblog_anchor"`
	Title             string     `gorm:"size:255"`
	Summary           string     `gorm:"type:text"`
	Text              string     `gorm:"type:text"`
	ContentType       string     `gorm:"size:48"`
	ContentSrc        string     `gorm:"size:255"`
	SearchDescription string     `gorm:"size:255"`
	Link              string     `gorm:"size:255"`
	Plugins           string     `gorm:"size:255"`
	Status            string     `gorm:"size:20;not null;index:idx_entry_weblog_status_pub"`
	PubTime           *time.Time `gorm:"index:idx_entry_weblog_status_pub"`
	UpdateTime        time.Time
	AllowComments     bool   `gorm:"not null"`
	CommentDays       int    `gorm:"not null"`
	RightToLeft       bool   `gorm:"not null"`
	PinnedToMain      bool   `gorm:"not null"`
	Locale            string `gorm:"size:20;index"`
	Attributes        datatypes.JSONMap

	Tags []WeblogEntryTagModel `gorm:"foreignKey:EntryID"`
}

func (WeblogEntryModel) TableName() string {
	return constants.TableEntries
}

type WeblogEntryTagModel struct {
	EntryID  string `gorm:"primaryKey;size:48"`
	Name     string `gorm:"primaryKey;size:255;index"`
	WeblogID string `gorm:"size:48;not null;index"`
}

func (WeblogEntryTagModel) TableName() string {
	return constants.TableEntryTags
}

type WeblogCommentModel struct {
	ID         string    `gorm:"primaryKey;size:48"`
	EntryID    string    `gorm:"size:48;not null;index:idx_comment_entry_time"`
	Name       string    `gorm:"size:255"`
	Email      string    `gorm:"size:255"`
	URL        string    `gorm:"size:255"`
	Content    string    `gorm:"type:text;not null"`
	RemoteHost string    `gorm:"size:128"`
	Status     string    `gorm:"size:20;not null;index"`
	PostTime   time.Time `gorm:"not null;index:idx_comment_entry_time"`
}

func (WeblogCommentModel) TableName() string {
	return constants.TableComments
}

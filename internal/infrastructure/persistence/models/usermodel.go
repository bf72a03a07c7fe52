package models

import (
	"time"

	"github.com/rollerweb/roller/internal/shared/constants"
)

// UserModel represents the database persistence model for users.
// Externally authenticated users carry the marker value in PasswordHash.
type UserModel struct {
	ID           string `gorm:"primaryKey;size:48"`
	UserName     string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	ScreenName   string `gorm:"size:255;not null"`
	FullName     string `gorm:"size:255"`
	Email        string `gorm:"size:255;index"`
	Locale       string `gorm:"size:20"`
	Timezone     string `gorm:"size:50"`
	Enabled      bool   `gorm:"not null"`
	CreatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}

package repository

import (
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/rollerweb/roller/internal/shared/errors"
)

// rowExists backs up a zero RowsAffected: mysql reports 0 when an update
// writes the values already stored.
func rowExists(tx *gorm.DB, model interface{}, id string) (bool, error) {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check row existence: %w", err)
	}
	return n > 0, nil
}

func notFoundOr(err error, message, id string) error {
	if err != nil {
		return err
	}
	return apperrors.NewNotFoundError(message, id)
}

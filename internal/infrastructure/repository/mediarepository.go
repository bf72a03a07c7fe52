package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rollerweb/roller/internal/domain/media"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/mappers"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/models"
	"github.com/rollerweb/roller/internal/shared/db"
	apperrors "github.com/rollerweb/roller/internal/shared/errors"
)

type MediaDirectoryRepository struct {
	db     *gorm.DB
	mapper mappers.WeblogMapper
}

func NewMediaDirectoryRepository(db *gorm.DB) *MediaDirectoryRepository {
	return &MediaDirectoryRepository{db: db, mapper: mappers.NewWeblogMapper()}
}

var _ media.Repository = (*MediaDirectoryRepository)(nil)

func (r *MediaDirectoryRepository) Create(ctx context.Context, d *media.Directory) error {
	if err := db.Conn(ctx, r.db).Create(r.mapper.DirectoryToModel(d)).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("media directory already exists", d.Name())
		}
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	return nil
}

func (r *MediaDirectoryRepository) ListByWeblog(ctx context.Context, weblogID string) ([]*media.Directory, error) {
	var rows []models.MediaDirectoryModel
	if err := db.Conn(ctx, r.db).
		Where("weblog_id = ?", weblogID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list media directories: %w", err)
	}

	out := make([]*media.Directory, 0, len(rows))
	for i := range rows {
		d, err := r.mapper.DirectoryToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/mappers"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/models"
	"github.com/rollerweb/roller/internal/shared/db"
	apperrors "github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
)

type WeblogRepository struct {
	db     *gorm.DB
	mapper mappers.WeblogMapper
	logger logger.Interface
}

func NewWeblogRepository(db *gorm.DB, logger logger.Interface) *WeblogRepository {
	return &WeblogRepository{
		db:     db,
		mapper: mappers.NewWeblogMapper(),
		logger: logger,
	}
}

var _ weblog.Repository = (*WeblogRepository)(nil)

func (r *WeblogRepository) Create(ctx context.Context, w *weblog.Weblog) error {
	model := r.mapper.ToModel(w)
	if err := db.Conn(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("weblog handle already exists", w.Handle())
		}
		r.logger.Errorw("failed to create weblog", "handle", w.Handle(), "error", err)
		return fmt.Errorf("failed to create weblog: %w", err)
	}
	return nil
}

func (r *WeblogRepository) Update(ctx context.Context, w *weblog.Weblog) error {
	model := r.mapper.ToModel(w)
	result := db.Conn(ctx, r.db).
		Model(&models.WeblogModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update weblog", "id", w.ID(), "error", result.Error)
		return fmt.Errorf("failed to update weblog: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if ok, err := rowExists(db.Conn(ctx, r.db), &models.WeblogModel{}, model.ID); err != nil || !ok {
			return notFoundOr(err, "weblog not found", w.ID())
		}
	}
	return nil
}

func (r *WeblogRepository) GetByID(ctx context.Context, id string) (*weblog.Weblog, error) {
	var model models.WeblogModel
	if err := db.Conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("weblog not found", id)
		}
		return nil, fmt.Errorf("failed to get weblog: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *WeblogRepository) GetByHandle(ctx context.Context, handle string) (*weblog.Weblog, error) {
	var model models.WeblogModel
	if err := db.Conn(ctx, r.db).Where("handle = ?", handle).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("weblog not found", handle)
		}
		return nil, fmt.Errorf("failed to get weblog by handle: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *WeblogRepository) List(ctx context.Context, activeOnly bool) ([]*weblog.Weblog, error) {
	query := db.Conn(ctx, r.db).Model(&models.WeblogModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var rows []models.WeblogModel
	if err := query.Order("handle ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list weblogs: %w", err)
	}

	out := make([]*weblog.Weblog, 0, len(rows))
	for i := range rows {
		w, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

type CategoryRepository struct {
	db     *gorm.DB
	mapper mappers.WeblogMapper
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db, mapper: mappers.NewWeblogMapper()}
}

var _ weblog.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(ctx context.Context, c *weblog.Category) error {
	if err := db.Conn(ctx, r.db).Create(r.mapper.CategoryToModel(c)).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("category already exists", c.Name())
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) ListByWeblog(ctx context.Context, weblogID string) ([]*weblog.Category, error) {
	var rows []models.WeblogCategoryModel
	if err := db.Conn(ctx, r.db).
		Where("weblog_id = ?", weblogID).
		Order("position ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	out := make([]*weblog.Category, 0, len(rows))
	for i := range rows {
		c, err := r.mapper.CategoryToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, weblogID, name string) (*weblog.Category, error) {
	var model models.WeblogCategoryModel
	if err := db.Conn(ctx, r.db).
		Where("weblog_id = ? AND name = ?", weblogID, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("category not found", name)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return r.mapper.CategoryToDomain(&model)
}

type PermissionRepository struct {
	db     *gorm.DB
	mapper mappers.WeblogMapper
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db, mapper: mappers.NewWeblogMapper()}
}

var _ weblog.PermissionRepository = (*PermissionRepository)(nil)

// Grant stores p, replacing the actions of an existing grant for the same
// user and weblog.
func (r *PermissionRepository) Grant(ctx context.Context, p *weblog.Permission) error {
	model := r.mapper.PermissionToModel(p)
	if err := db.Conn(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	return nil
}

func (r *PermissionRepository) ListByUser(ctx context.Context, userID string) ([]*weblog.Permission, error) {
	var rows []models.WeblogPermissionModel
	if err := db.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("weblog_id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	out := make([]*weblog.Permission, 0, len(rows))
	for i := range rows {
		p, err := r.mapper.PermissionToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

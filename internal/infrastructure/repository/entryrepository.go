package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rollerweb/roller/internal/domain/entry"
	vo "github.com/rollerweb/roller/internal/domain/entry/valueobjects"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/mappers"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/models"
	"github.com/rollerweb/roller/internal/shared/db"
	apperrors "github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
)

// likeEscape is the LIKE escape character. '!' needs no quoting in either
// mysql or sqlite string literals.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

func containsPattern(term string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(term)) + "%"
}

type EntryRepository struct {
	db     *gorm.DB
	mapper mappers.EntryMapper
	logger logger.Interface
}

func NewEntryRepository(db *gorm.DB, logger logger.Interface) *EntryRepository {
	return &EntryRepository{
		db:     db,
		mapper: mappers.NewEntryMapper(),
		logger: logger,
	}
}

var _ entry.Repository = (*EntryRepository)(nil)

// Create stores the entry and its tag rows in one transaction.
func (r *EntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	model := r.mapper.ToModel(e)
	err := db.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(model).Error; err != nil {
			return err
		}
		return r.insertTags(tx, model.Tags)
	})
	if err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("entry anchor already exists", e.Anchor())
		}
		r.logger.Errorw("failed to create entry", "id", e.ID(), "error", err)
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// Update rewrites every column and replaces the tag rows.
func (r *EntryRepository) Update(ctx context.Context, e *entry.Entry) error {
	model := r.mapper.ToModel(e)
	err := db.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.WeblogEntryModel{}).
			Where("id = ?", model.ID).
			Select("*").
			Omit("id", "Tags").
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if ok, err := rowExists(tx, &models.WeblogEntryModel{}, model.ID); err != nil || !ok {
				return notFoundOr(err, "entry not found", e.ID())
			}
		}
		if err := tx.Where("entry_id = ?", model.ID).Delete(&models.WeblogEntryTagModel{}).Error; err != nil {
			return err
		}
		return r.insertTags(tx, model.Tags)
	})
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return err
		}
		r.logger.Errorw("failed to update entry", "id", e.ID(), "error", err)
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return nil
}

func (r *EntryRepository) insertTags(tx *gorm.DB, tags []models.WeblogEntryTagModel) error {
	if len(tags) == 0 {
		return nil
	}
	return tx.Create(&tags).Error
}

func (r *EntryRepository) GetByID(ctx context.Context, id string) (*entry.Entry, error) {
	var model models.WeblogEntryModel
	if err := db.Conn(ctx, r.db).Preload("Tags").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("entry not found", id)
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *EntryRepository) GetByAnchor(ctx context.Context, weblogID, anchor string) (*entry.Entry, error) {
	var model models.WeblogEntryModel
	if err := db.Conn(ctx, r.db).
		Preload("Tags").
		Where("weblog_id = ? AND anchor = ?", weblogID, anchor).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("entry not found", anchor)
		}
		return nil, fmt.Errorf("failed to get entry by anchor: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// Search matches every term against title or text, case-insensitively.
// An unknown category name yields no rows.
func (r *EntryRepository) Search(ctx context.Context, c entry.SearchCriteria, now time.Time) ([]*entry.Entry, error) {
	conn := db.Conn(ctx, r.db)
	query := conn.Model(&models.WeblogEntryModel{}).
		Where("weblog_id = ?", c.WeblogID).
		Where("status = ?", vo.PubStatusPublished.String()).
		Where("pub_time IS NOT NULL AND pub_time <= ?", now.UTC())

	for _, term := range c.Terms {
		pattern := containsPattern(term)
		query = query.Where(
			"(LOWER(title) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(text) LIKE ? ESCAPE '"+likeEscape+"')",
			pattern, pattern,
		)
	}

	if c.CategoryName != "" {
		categoryIDs := conn.Model(&models.WeblogCategoryModel{}).
			Select("id").
			Where("weblog_id = ? AND name = ?", c.WeblogID, c.CategoryName)
		query = query.Where("category_id IN (?)", categoryIDs)
	}

	if c.Locale != "" {
		query = query.Where("locale = ?", c.Locale)
	}

	query = query.Order("pub_time DESC").Order("id ASC")
	if c.Offset > 0 {
		query = query.Offset(c.Offset)
	}
	if c.Limit > 0 {
		query = query.Limit(c.Limit)
	}

	var rows []models.WeblogEntryModel
	if err := query.Preload("Tags").Find(&rows).Error; err != nil {
		r.logger.Errorw("entry search failed", "weblog_id", c.WeblogID, "error", err)
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	return r.toDomainList(rows)
}

func (r *EntryRepository) ListRecent(ctx context.Context, c entry.ListCriteria) ([]*entry.Entry, error) {
	query := db.Conn(ctx, r.db).Model(&models.WeblogEntryModel{}).
		Where("weblog_id = ?", c.WeblogID)
	if c.Status != "" {
		query = query.Where("status = ?", c.Status.String())
	}
	query = query.Order("pub_time DESC").Order("id ASC")
	if c.Limit > 0 {
		query = query.Limit(c.Limit)
	}

	var rows []models.WeblogEntryModel
	if err := query.Preload("Tags").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return r.toDomainList(rows)
}

func (r *EntryRepository) toDomainList(rows []models.WeblogEntryModel) ([]*entry.Entry, error) {
	out := make([]*entry.Entry, 0, len(rows))
	for i := range rows {
		e, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.EntryMapper
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db, mapper: mappers.NewEntryMapper()}
}

var _ entry.CommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) Create(ctx context.Context, c *entry.Comment) error {
	if err := db.Conn(ctx, r.db).Create(r.mapper.CommentToModel(c)).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, c *entry.Comment) error {
	model := r.mapper.CommentToModel(c)
	result := db.Conn(ctx, r.db).
		Model(&models.WeblogCommentModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if ok, err := rowExists(db.Conn(ctx, r.db), &models.WeblogCommentModel{}, model.ID); err != nil || !ok {
			return notFoundOr(err, "comment not found", c.ID())
		}
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entry.Comment, error) {
	var model models.WeblogCommentModel
	if err := db.Conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("comment not found", id)
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return r.mapper.CommentToDomain(&model)
}

func (r *CommentRepository) ListByEntry(ctx context.Context, entryID string) ([]*entry.Comment, error) {
	var rows []models.WeblogCommentModel
	if err := db.Conn(ctx, r.db).
		Where("entry_id = ?", entryID).
		Order("post_time ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	out := make([]*entry.Comment, 0, len(rows))
	for i := range rows {
		c, err := r.mapper.CommentToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

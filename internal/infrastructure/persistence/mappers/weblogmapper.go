package mappers

import (
	"fmt"

	"github.com/rollerweb/roller/internal/domain/media"
	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/models"
)

// WeblogMapper converts weblogs and their satellites between domain and persistence form.
type WeblogMapper interface {
	ToModel(w *weblog.Weblog) *models.WeblogModel
	ToDomain(model *models.WeblogModel) (*weblog.Weblog, error)

	CategoryToModel(c *weblog.Category) *models.WeblogCategoryModel
	CategoryToDomain(model *models.WeblogCategoryModel) (*weblog.Category, error)

	PermissionToModel(p *weblog.Permission) *models.WeblogPermissionModel
	PermissionToDomain(model *models.WeblogPermissionModel) (*weblog.Permission, error)

	DirectoryToModel(d *media.Directory) *models.MediaDirectoryModel
	DirectoryToDomain(model *models.MediaDirectoryModel) (*media.Directory, error)
}

type WeblogMapperImpl struct{}

func NewWeblogMapper() WeblogMapper {
	return &WeblogMapperImpl{}
}

func (m *WeblogMapperImpl) ToModel(w *weblog.Weblog) *models.WeblogModel {
	return &models.WeblogModel{
		ID:              w.ID(),
		Handle:          w.Handle(),
		Name:            w.Name(),
		Tagline:         w.Tagline(),
		Locale:          w.Locale(),
		Timezone:        w.Timezone(),
		EnableMultiLang: w.EnableMultiLang(),
		CreatorID:       w.CreatorID(),
		Active:          w.IsActive(),
		CreatedAt:       w.CreatedAt(),
		UpdatedAt:       w.UpdatedAt(),
	}
}

func (m *WeblogMapperImpl) ToDomain(model *models.WeblogModel) (*weblog.Weblog, error) {
	if model == nil {
		return nil, nil
	}
	w, err := weblog.ReconstructWeblog(
		model.ID,
		model.Handle,
		model.Name,
		model.Tagline,
		model.Locale,
		model.Timezone,
		model.EnableMultiLang,
		model.CreatorID,
		model.Active,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct weblog: %w", err)
	}
	return w, nil
}

func (m *WeblogMapperImpl) CategoryToModel(c *weblog.Category) *models.WeblogCategoryModel {
	return &models.WeblogCategoryModel{
		ID:          c.ID(),
		WeblogID:    c.WeblogID(),
		Name:        c.Name(),
		Description: c.Description(),
		Position:    c.Position(),
	}
}

func (m *WeblogMapperImpl) CategoryToDomain(model *models.WeblogCategoryModel) (*weblog.Category, error) {
	c, err := weblog.NewCategory(model.ID, model.WeblogID, model.Name, model.Description, model.Position)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct category: %w", err)
	}
	return c, nil
}

func (m *WeblogMapperImpl) PermissionToModel(p *weblog.Permission) *models.WeblogPermissionModel {
	return &models.WeblogPermissionModel{
		UserID:   p.UserID(),
		WeblogID: p.WeblogID(),
		Actions:  p.ActionsString(),
	}
}

func (m *WeblogMapperImpl) PermissionToDomain(model *models.WeblogPermissionModel) (*weblog.Permission, error) {
	p, err := weblog.NewPermission(model.UserID, model.WeblogID, weblog.ParseActions(model.Actions)...)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct permission: %w", err)
	}
	return p, nil
}

func (m *WeblogMapperImpl) DirectoryToModel(d *media.Directory) *models.MediaDirectoryModel {
	return &models.MediaDirectoryModel{
		ID:          d.ID(),
		WeblogID:    d.WeblogID(),
		Name:        d.Name(),
		Description: d.Description(),
	}
}

func (m *WeblogMapperImpl) DirectoryToDomain(model *models.MediaDirectoryModel) (*media.Directory, error) {
	d, err := media.NewDirectory(model.ID, model.WeblogID, model.Name, model.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct media directory: %w", err)
	}
	return d, nil
}

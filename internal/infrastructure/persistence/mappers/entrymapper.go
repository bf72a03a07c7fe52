package mappers

import (
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/rollerweb/roller/internal/domain/entry"
	vo "github.com/rollerweb/roller/internal/domain/entry/valueobjects"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/models"
)

// EntryMapper handles the conversion between entries, comments and their models.
type EntryMapper interface {
	// ToModel converts an entry including its tags. Tag rows carry no ID yet.
	ToModel(e *entry.Entry) *models.WeblogEntryModel
	// ToDomain expects model.Tags to be preloaded.
	ToDomain(model *models.WeblogEntryModel) (*entry.Entry, error)

	CommentToModel(c *entry.Comment) *models.WeblogCommentModel
	CommentToDomain(model *models.WeblogCommentModel) (*entry.Comment, error)
}

type EntryMapperImpl struct{}

func NewEntryMapper() EntryMapper {
	return &EntryMapperImpl{}
}

func (m *EntryMapperImpl) ToModel(e *entry.Entry) *models.WeblogEntryModel {
	model := &models.WeblogEntryModel{
		ID:                e.ID(),
		WeblogID:          e.WeblogID(),
		CategoryID:        e.CategoryID(),
		CreatorID:         e.CreatorID(),
		Anchor:            e.Anchor(),
		Title:             e.Title(),
		Summary:           e.Summary(),
		Text:              e.Text(),
		ContentType:       e.ContentType(),
		ContentSrc:        e.ContentSrc(),
		SearchDescription: e.SearchDescription(),
		Link:              e.Link(),
		Plugins:           strings.Join(e.Plugins(), ","),
		Status:            e.Status().String(),
		UpdateTime:        e.UpdateTime(),
		AllowComments:     e.AllowComments(),
		CommentDays:       e.CommentDays(),
		RightToLeft:       e.RightToLeft(),
		PinnedToMain:      e.PinnedToMain(),
		Locale:            e.Locale(),
	}

	if pt := e.PubTime(); pt != nil {
		t := pt.UTC()
		model.PubTime = &t
	}

	if attrs := e.Attributes(); len(attrs) > 0 {
		model.Attributes = make(datatypes.JSONMap, len(attrs))
		for k, v := range attrs {
			model.Attributes[k] = v
		}
	}

	for _, name := range e.Tags() {
		model.Tags = append(model.Tags, models.WeblogEntryTagModel{
			EntryID:  e.ID(),
			WeblogID: e.WeblogID(),
			Name:     name,
		})
	}

	return model
}

func (m *EntryMapperImpl) ToDomain(model *models.WeblogEntryModel) (*entry.Entry, error) {
	if model == nil {
		return nil, nil
	}

	var plugins []string
	if model.Plugins != "" {
		for _, p := range strings.Split(model.Plugins, ",") {
			if p = strings.TrimSpace(p); p != "" {
				plugins = append(plugins, p)
			}
		}
	}

	tags := make([]string, 0, len(model.Tags))
	for _, t := range model.Tags {
		tags = append(tags, t.Name)
	}

	attrs := make(map[string]string, len(model.Attributes))
	for k, v := range model.Attributes {
		attrs[k] = fmt.Sprint(v)
	}

	pubTime := model.PubTime
	if pubTime != nil {
		t := pubTime.UTC()
		pubTime = &t
	}

	e, err := entry.ReconstructEntry(
		model.ID,
		model.WeblogID,
		model.CategoryID,
		model.CreatorID,
		model.Anchor,
		entry.Content{
			Title:             model.Title,
			Summary:           model.Summary,
			Text:              model.Text,
			ContentType:       model.ContentType,
			ContentSrc:        model.ContentSrc,
			SearchDescription: model.SearchDescription,
			Link:              model.Link,
		},
		entry.Settings{
			Plugins:       plugins,
			AllowComments: model.AllowComments,
			CommentDays:   model.CommentDays,
			RightToLeft:   model.RightToLeft,
			PinnedToMain:  model.PinnedToMain,
			Locale:        model.Locale,
		},
		vo.PubStatus(model.Status),
		pubTime,
		model.UpdateTime.UTC(),
		tags,
		attrs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct entry: %w", err)
	}
	return e, nil
}

func (m *EntryMapperImpl) CommentToModel(c *entry.Comment) *models.WeblogCommentModel {
	return &models.WeblogCommentModel{
		ID:         c.ID(),
		EntryID:    c.EntryID(),
		Name:       c.Name(),
		Email:      c.Email(),
		URL:        c.URL(),
		Content:    c.Content(),
		RemoteHost: c.RemoteHost(),
		Status:     string(c.Status()),
		PostTime:   c.PostTime().UTC(),
	}
}

func (m *EntryMapperImpl) CommentToDomain(model *models.WeblogCommentModel) (*entry.Comment, error) {
	c, err := entry.ReconstructComment(
		model.ID,
		model.EntryID,
		model.Name,
		model.Email,
		model.URL,
		model.Content,
		model.RemoteHost,
		vo.CommentStatus(model.Status),
		model.PostTime.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct comment: %w", err)
	}
	return c, nil
}

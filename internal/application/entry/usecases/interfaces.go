package usecases

import (
	domain "github.com/rollerweb/roller/internal/domain/entry"
	"github.com/rollerweb/roller/internal/domain/weblog"
)

type EntryRepository = domain.Repository

type CommentRepository = domain.CommentRepository

type WeblogRepository = weblog.Repository

type CategoryRepository = weblog.CategoryRepository

type PermissionRepository = weblog.PermissionRepository

func findCategory(cats []*weblog.Category, id string) *weblog.Category {
	for _, c := range cats {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

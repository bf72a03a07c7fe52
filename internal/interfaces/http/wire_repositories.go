package http

import (
	"gorm.io/gorm"

	"github.com/rollerweb/roller/internal/domain/entry"
	"github.com/rollerweb/roller/internal/domain/media"
	"github.com/rollerweb/roller/internal/domain/user"
	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/infrastructure/repository"
	"github.com/rollerweb/roller/internal/shared/logger"
)

// repositories holds all repository instances used by the HTTP layer.
type repositories struct {
	userRepo       user.Repository
	weblogRepo     weblog.Repository
	categoryRepo   weblog.CategoryRepository
	permissionRepo weblog.PermissionRepository
	directoryRepo  media.Repository
	entryRepo      entry.Repository
	commentRepo    entry.CommentRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:       repository.NewUserRepository(db, log),
		weblogRepo:     repository.NewWeblogRepository(db, log),
		categoryRepo:   repository.NewCategoryRepository(db),
		permissionRepo: repository.NewPermissionRepository(db),
		directoryRepo:  repository.NewMediaDirectoryRepository(db),
		entryRepo:      repository.NewEntryRepository(db, log),
		commentRepo:    repository.NewCommentRepository(db),
	}
}

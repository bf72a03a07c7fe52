package http

import (
	atompubUsecases "github.com/rollerweb/roller/internal/application/atompub/usecases"
	"github.com/rollerweb/roller/internal/application/entry"
	entryUsecases "github.com/rollerweb/roller/internal/application/entry/usecases"
	searchUsecases "github.com/rollerweb/roller/internal/application/search/usecases"
	appUser "github.com/rollerweb/roller/internal/application/user"
	userUsecases "github.com/rollerweb/roller/internal/application/user/usecases"
	"github.com/rollerweb/roller/internal/domain/user"
	"github.com/rollerweb/roller/internal/infrastructure/auth"
	"github.com/rollerweb/roller/internal/interfaces/http/handlers"
	"github.com/rollerweb/roller/internal/interfaces/http/middleware"
)

// allUseCases holds the use cases the handlers and middlewares depend on.
type allUseCases struct {
	searchEntries   *searchUsecases.SearchEntriesUseCase
	getEntry        *entryUsecases.GetEntryUseCase
	moderateComment *entryUsecases.ModerateCommentUseCase
	serviceDocument *atompubUsecases.BuildServiceDocumentUseCase
	login           *userUsecases.LoginUseCase
	provision       *userUsecases.ProvisionExternalUserUseCase
}

type allHandlers struct {
	searchHandler  *handlers.SearchHandler
	entryHandler   *handlers.EntryHandler
	commentHandler *handlers.CommentHandler
	authHandler    *handlers.AuthHandler
	atomPubHandler *handlers.AtomPubHandler
	systemHandler  *handlers.SystemHandler
}

func (c *Container) initWeblog() {
	cfg := c.cfg
	log := c.log
	repos := c.repos
	c.ucs = &allUseCases{}

	renderer := entry.NewRenderer(c.urls, c.contentService, entry.DefaultPlugins(), c.catalog,
		cfg.Weblogger.AdminsUntrusted, log.Named("entry.renderer"))

	c.ucs.searchEntries = searchUsecases.NewSearchEntriesUseCase(
		repos.weblogRepo, repos.categoryRepo, repos.entryRepo,
		renderer, c.urls, c.catalog, cfg.Weblogger.SearchPageSize, log,
	)
	c.ucs.getEntry = entryUsecases.NewGetEntryUseCase(
		repos.weblogRepo, repos.categoryRepo, repos.entryRepo, repos.commentRepo,
		renderer, log,
	)
	c.ucs.moderateComment = entryUsecases.NewModerateCommentUseCase(
		repos.weblogRepo, repos.permissionRepo, repos.entryRepo, repos.commentRepo,
		log.Named("comment.moderation"),
	)
	c.ucs.serviceDocument = atompubUsecases.NewBuildServiceDocumentUseCase(
		repos.userRepo, repos.permissionRepo, repos.weblogRepo, repos.categoryRepo, repos.directoryRepo,
		c.urls, c.catalog, c.contentService,
		atompubUsecases.Settings{
			Enabled:            cfg.Weblogger.EnableAtomPub,
			UploadTypesAllowed: cfg.Weblogger.UploadsTypesAllowed,
		},
		log,
	)
}

func (c *Container) initAuth() {
	cfg := c.cfg
	log := c.log

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	attrs := cfg.Auth.Attributes
	registry := appUser.NewRegistry(appUser.RegistrySettings{
		Method:            cfg.Auth.Method,
		ExternalAuthValue: cfg.Auth.ExternalAuthValue,
		Attributes: user.AttributeNames{
			ScreenName: attrs.ScreenName,
			UID:        attrs.UID,
			Name:       attrs.Name,
			Email:      attrs.Email,
			Locale:     attrs.Locale,
			Timezone:   attrs.Timezone,
		},
		DefaultLocale:   cfg.Weblogger.DefaultLocale,
		DefaultTimezone: cfg.Server.Timezone,
	}, log.Named("user.registry"))

	c.ucs.login = userUsecases.NewLoginUseCase(c.repos.userRepo, hasher, c.jwtSvc, registry.ExternalAuthValue(), log)
	c.ucs.provision = userUsecases.NewProvisionExternalUserUseCase(c.repos.userRepo, registry, log)

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.ucs.provision, cfg.Auth.Method, log)
}

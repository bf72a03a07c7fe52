package http

import (
	"github.com/rollerweb/roller/internal/interfaces/http/middleware"
	"github.com/rollerweb/roller/internal/interfaces/http/routes"
)

// SetupRoutes installs the middleware chain and every route.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	c.engine.GET("/health", c.hdlrs.systemHandler.Health)

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		LoginLimiter:   c.loginLimiter,
	})

	routes.SetupAtomPubRoutes(c.engine, &routes.AtomPubRouteConfig{
		AtomPubHandler: c.hdlrs.atomPubHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupCommentRoutes(c.engine, &routes.CommentRouteConfig{
		CommentHandler: c.hdlrs.commentHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupWeblogRoutes(c.engine, &routes.WeblogRouteConfig{
		SearchHandler: c.hdlrs.searchHandler,
		EntryHandler:  c.hdlrs.entryHandler,
		SearchLimiter: c.searchLimiter,
	})
}

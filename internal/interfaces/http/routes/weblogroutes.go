package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rollerweb/roller/internal/interfaces/http/handlers"
	"github.com/rollerweb/roller/internal/interfaces/http/middleware"
)

// WeblogRouteConfig holds dependencies for the public weblog routes.
type WeblogRouteConfig struct {
	SearchHandler *handlers.SearchHandler
	EntryHandler  *handlers.EntryHandler
	SearchLimiter *middleware.RateLimiter
}

// SetupWeblogRoutes configures search and entry pages, with and without a
// locale path segment.
func SetupWeblogRoutes(engine *gin.Engine, cfg *WeblogRouteConfig) {
	weblog := engine.Group("/:handle")
	{
		weblog.GET("/search", cfg.SearchLimiter.Limit(), cfg.SearchHandler.Search)
		weblog.GET("/entry/:anchor", cfg.EntryHandler.GetEntry)

		weblog.GET("/:locale/search", cfg.SearchLimiter.Limit(), cfg.SearchHandler.Search)
		weblog.GET("/:locale/entry/:anchor", cfg.EntryHandler.GetEntry)
	}
}

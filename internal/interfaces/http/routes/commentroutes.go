package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rollerweb/roller/internal/interfaces/http/handlers"
	"github.com/rollerweb/roller/internal/interfaces/http/middleware"
)

// CommentRouteConfig holds dependencies for comment moderation routes.
type CommentRouteConfig struct {
	CommentHandler *handlers.CommentHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupCommentRoutes configures the authenticated moderation API.
func SetupCommentRoutes(engine *gin.Engine, cfg *CommentRouteConfig) {
	comments := engine.Group("/api/weblogs/:handle/comments", cfg.AuthMiddleware.RequireAuth())
	{
		comments.PUT("/:id/status", cfg.CommentHandler.Moderate)
	}
}

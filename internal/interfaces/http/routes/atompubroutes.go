package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rollerweb/roller/internal/interfaces/http/handlers"
	"github.com/rollerweb/roller/internal/interfaces/http/middleware"
	"github.com/rollerweb/roller/internal/shared/constants"
)

type AtomPubRouteConfig struct {
	AtomPubHandler *handlers.AtomPubHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAtomPubRoutes serves the per-user AtomPub service document.
func SetupAtomPubRoutes(engine *gin.Engine, cfg *AtomPubRouteConfig) {
	engine.GET(constants.AtomServicePath, cfg.AuthMiddleware.RequireAuth(), cfg.AtomPubHandler.ServiceDocument)
}

package app

import (
	"github.com/gin-gonic/gin"

	"github.com/skillpath/roadmap-backend/internal/server"
)

func wireRouter(handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		HealthHandler:     handlers.Health,
		AuthHandler:       handlers.Auth,
		AssessmentHandler: handlers.Assessment,
		RoadmapHandler:    handlers.Roadmap,
		AssistantHandler:  handlers.Assistant,
		AuthMiddleware:    middleware.Auth,
	})
}

package app

import (
	"github.com/skillpath/roadmap-backend/internal/http/handlers"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Assessment *handlers.AssessmentHandler
	Roadmap    *handlers.RoadmapHandler
	Assistant  *handlers.AssistantHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     handlers.NewHealthHandler(),
		Auth:       handlers.NewAuthHandler(services.Auth),
		Assessment: handlers.NewAssessmentHandler(services.Assessment),
		Roadmap:    handlers.NewRoadmapHandler(services.Roadmap),
		Assistant:  handlers.NewAssistantHandler(services.Assistant),
	}
}

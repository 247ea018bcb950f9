package app

import (
	"gorm.io/gorm"

	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
	"github.com/skillpath/roadmap-backend/internal/services"
)

type Services struct {
	Token      services.TokenService
	Auth       services.AuthService
	Assessment services.AssessmentService
	Roadmap    services.RoadmapService
	Assistant  services.AssistantService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	tokenService := services.NewTokenService(log, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	authService := services.NewAuthService(db, log, repos.User, tokenService)
	assessmentService := services.NewAssessmentService(db, log, repos.Question, repos.Result, repos.User)
	roadmapService := services.NewRoadmapService(db, log, repos.Topic, repos.Prerequisite, repos.Progress, repos.Resource, repos.User)
	assistantService := services.NewAssistantService(log, clients.OpenAI, repos.User, repos.Topic, repos.Progress)

	return Services{
		Token:      tokenService,
		Auth:       authService,
		Assessment: assessmentService,
		Roadmap:    roadmapService,
		Assistant:  assistantService,
	}
}

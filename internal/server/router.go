package server

import (
	"github.com/gin-gonic/gin"

	"github.com/skillpath/roadmap-backend/internal/http/handlers"
	"github.com/skillpath/roadmap-backend/internal/http/middleware"
)

type RouterConfig struct {
	HealthHandler     *handlers.HealthHandler
	AuthHandler       *handlers.AuthHandler
	AssessmentHandler *handlers.AssessmentHandler
	RoadmapHandler    *handlers.RoadmapHandler
	AssistantHandler  *handlers.AssistantHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	// ===============
	// || Public    ||
	// ===============
	router.GET("/", cfg.HealthHandler.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.GET("/check-username/:username", cfg.AuthHandler.CheckUsername)
		api.GET("/check-email/:email", cfg.AuthHandler.CheckEmail)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// User
	protected.GET("/me", cfg.AuthHandler.Me)
	// Assessment
	protected.GET("/assessment/questions", cfg.AssessmentHandler.Questions)
	protected.POST("/assessment/submit", cfg.AssessmentHandler.Submit)
	protected.GET("/assessment/status", cfg.AssessmentHandler.Status)
	protected.POST("/assessment/retake", cfg.AssessmentHandler.Retake)
	// Learning path
	protected.GET("/learning-path", cfg.RoadmapHandler.LearningPath)
	protected.GET("/learning-path/topics/:topic_id", cfg.RoadmapHandler.TopicDetail)
	protected.POST("/learning-path/topics/:topic_id/start", cfg.RoadmapHandler.StartTopic)
	protected.POST("/learning-path/topics/:topic_id/complete", cfg.RoadmapHandler.CompleteTopic)
	protected.PATCH("/learning-path/topics/:topic_id/progress", cfg.RoadmapHandler.UpdateProgress)
	// Chatbot
	protected.POST("/chatbot/ask", cfg.AssistantHandler.Ask)
	protected.POST("/chatbot/quiz", cfg.AssistantHandler.Quiz)

	return router
}

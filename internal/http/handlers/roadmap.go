package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillpath/roadmap-backend/internal/http/response"
	"github.com/skillpath/roadmap-backend/internal/pkg/ctxutil"
	"github.com/skillpath/roadmap-backend/internal/services"
)

type RoadmapHandler struct {
	roadmapService services.RoadmapService
}

func NewRoadmapHandler(roadmapService services.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{roadmapService: roadmapService}
}

// GET /api/learning-path/
func (rh *RoadmapHandler) LearningPath(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	if identity == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	path, err := rh.roadmapService.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, path)
}

// GET /api/learning-path/topics/:topic_id
func (rh *RoadmapHandler) TopicDetail(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	if identity == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	topicID, err := parseIDParam(c, "topic_id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	detail, err := rh.roadmapService.TopicDetail(c.Request.Context(), identity.UserID, topicID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

// POST /api/learning-path/topics/:topic_id/start
func (rh *RoadmapHandler) StartTopic(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	if identity == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	topicID, err := parseIDParam(c, "topic_id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	result, err := rh.roadmapService.Start(c.Request.Context(), identity.UserID, topicID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// POST /api/learning-path/topics/:topic_id/complete
func (rh *RoadmapHandler) CompleteTopic(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	if identity == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	topicID, err := parseIDParam(c, "topic_id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	if err := rh.roadmapService.Complete(c.Request.Context(), identity.UserID, topicID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Topic completed successfully", "topic_id": topicID})
}

// PATCH /api/learning-path/topics/:topic_id/progress
// body: { "progress_percentage": 42.5, "time_spent_minutes": 15 }
func (rh *RoadmapHandler) UpdateProgress(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	if identity == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	topicID, err := parseIDParam(c, "topic_id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	var req struct {
		ProgressPercentage float64 `json:"progress_percentage"`
		TimeSpentMinutes   int     `json:"time_spent_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := rh.roadmapService.UpdateProgress(c.Request.Context(), identity.UserID, topicID, req.ProgressPercentage, req.TimeSpentMinutes); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Progress updated", "topic_id": topicID})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillpath/roadmap-backend/internal/http/response"
	"github.com/skillpath/roadmap-backend/internal/pkg/ctxutil"
	"github.com/skillpath/roadmap-backend/internal/services"
)

type AssistantHandler struct {
	assistantService services.AssistantService
}

func NewAssistantHandler(assistantService services.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// POST /api/chatbot/ask
// body: { "message": "..." }
func (ah *AssistantHandler) Ask(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	if identity == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	reply, err := ah.assistantService.Ask(c.Request.Context(), identity.UserID, req.Message)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, reply)
}

// POST /api/chatbot/quiz
// body: { "topic_id": "...", "num_questions": 5 }
func (ah *AssistantHandler) Quiz(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	if identity == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req struct {
		TopicID      uuid.UUID `json:"topic_id"`
		NumQuestions int       `json:"num_questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	reply, err := ah.assistantService.GenerateQuiz(c.Request.Context(), req.TopicID, req.NumQuestions)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, reply)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/skillpath/roadmap-backend/internal/domain"
	"github.com/skillpath/roadmap-backend/internal/http/response"
	"github.com/skillpath/roadmap-backend/internal/pkg/ctxutil"
	"github.com/skillpath/roadmap-backend/internal/services"
)

type AssessmentHandler struct {
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// GET /api/assessment/questions
func (ah *AssessmentHandler) Questions(c *gin.Context) {
	questions, err := ah.assessmentService.Questions(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	// Correct answers and point weights are json:"-" on the model, so the
	// bank can be returned as-is.
	response.RespondOK(c, questions)
}

// POST /api/assessment/submit
// body: { "answers": [ { "question_id": "...", "answer": "..." } ] }
func (ah *AssessmentHandler) Submit(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	if identity == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req struct {
		Answers []types.SubmittedAnswer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := ah.assessmentService.Submit(c.Request.Context(), identity.UserID, req.Answers)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// GET /api/assessment/status
func (ah *AssessmentHandler) Status(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	if identity == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	status, err := ah.assessmentService.Status(c.Request.Context(), identity.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, status)
}

// POST /api/assessment/retake
func (ah *AssessmentHandler) Retake(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	if identity == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	if err := ah.assessmentService.Retake(c.Request.Context(), identity.UserID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "You can now retake the assessment"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillpath/roadmap-backend/internal/http/response"
	apperr "github.com/skillpath/roadmap-backend/internal/pkg/errors"
	"github.com/skillpath/roadmap-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/register
// body: { "username": "...", "email": "...", "password": "..." }
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	user, err := ah.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"message":  "User registered successfully",
	})
}

// POST /api/login
// body: { "username": "...", "password": "..." }
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	user, token, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user": gin.H{
			"id":                       user.ID,
			"username":                 user.Username,
			"email":                    user.Email,
			"current_level":            user.CurrentLevel,
			"has_completed_assessment": user.HasCompletedAssessment,
		},
	})
}

// GET /api/check-username/:username
func (ah *AuthHandler) CheckUsername(c *gin.Context) {
	available, err := ah.authService.UsernameAvailable(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"available": available})
}

// GET /api/check-email/:email
func (ah *AuthHandler) CheckEmail(c *gin.Context) {
	available, err := ah.authService.EmailAvailable(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"available": available})
}

// GET /api/me
func (ah *AuthHandler) Me(c *gin.Context) {
	user, err := ah.authService.CurrentUser(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, user)
}

// parseIDParam reads a uuid path parameter, rejecting malformed values
// before they reach a service.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperr.ErrInvalidArgument
	}
	return id, nil
}

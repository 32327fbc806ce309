package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saktilink/edge-backend/internal/services"
)

type SkillHandler struct {
	skillSvc services.SkillService
}

func NewSkillHandler(skillSvc services.SkillService) *SkillHandler {
	return &SkillHandler{skillSvc: skillSvc}
}

type teachSkillRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	SkillName   string `json:"skill_name" binding:"required"`
	Proficiency int    `json:"proficiency"`
}

// POST /api/v1/skills/teach
func (h *SkillHandler) RegisterTeach(c *gin.Context) {
	var req teachSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	result, err := h.skillSvc.RegisterTeachSkill(c.Request.Context(), userID, req.SkillName, req.Proficiency)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "register_skill_failed", err)
		return
	}
	RespondOK(c, result)
}

type learnSkillRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	SkillID int64  `json:"skill_id" binding:"required"`
}

// POST /api/v1/skills/learn
func (h *SkillHandler) RegisterLearn(c *gin.Context) {
	var req learnSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	result, err := h.skillSvc.RegisterLearnSkill(c.Request.Context(), userID, req.SkillID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "register_skill_failed", err)
		return
	}
	RespondOK(c, result)
}

type completeSessionRequest struct {
	TeacherID string `json:"teacher_id" binding:"required"`
	LearnerID string `json:"learner_id" binding:"required"`
	SkillID   int64  `json:"skill_id" binding:"required"`
}

// POST /api/v1/skills/sessions/complete
func (h *SkillHandler) CompleteSession(c *gin.Context) {
	var req completeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	teacherID, err := uuid.Parse(req.TeacherID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_teacher_id", err)
		return
	}
	learnerID, err := uuid.Parse(req.LearnerID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_learner_id", err)
		return
	}

	result, err := h.skillSvc.CompleteTeachingSession(c.Request.Context(), teacherID, learnerID, req.SkillID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "complete_session_failed", err)
		return
	}
	RespondOK(c, result)
}

// GET /api/v1/skills/marketplace
func (h *SkillHandler) Marketplace(c *gin.Context) {
	language := c.DefaultQuery("language", "hi")

	entries, err := h.skillSvc.Marketplace(c.Request.Context(), language)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "marketplace_failed", err)
		return
	}
	RespondOK(c, gin.H{"skills": entries})
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saktilink/edge-backend/internal/services"
)

type LearningHandler struct {
	learningSvc services.LearningService
	creditSvc   services.CreditService
}

func NewLearningHandler(learningSvc services.LearningService, creditSvc services.CreditService) *LearningHandler {
	return &LearningHandler{learningSvc: learningSvc, creditSvc: creditSvc}
}

type listModulesRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Category string `json:"category"`
	Language string `json:"language"`
}

// POST /api/v1/learning/modules/list
func (h *LearningHandler) ListModules(c *gin.Context) {
	var req listModulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	modules, err := h.learningSvc.ListModules(c.Request.Context(), userID, req.Category, req.Language)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_modules_failed", err)
		return
	}
	RespondOK(c, gin.H{"modules": modules})
}

// POST /api/v1/learning/modules/:id/start
func (h *LearningHandler) StartModule(c *gin.Context) {
	userID, moduleID, ok := h.parseUserAndModule(c)
	if !ok {
		return
	}

	result, err := h.learningSvc.StartModule(c.Request.Context(), userID, moduleID)
	if err != nil {
		if ice, is := services.IsInsufficientCredits(err); is {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": gin.H{
					"message":   err.Error(),
					"code":      "insufficient_credits",
					"required":  ice.Required,
					"available": ice.Available,
				},
			})
			return
		}
		if errors.Is(err, services.ErrModuleNotFound) {
			RespondError(c, http.StatusNotFound, "module_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "start_module_failed", err)
		return
	}
	RespondOK(c, result)
}

// POST /api/v1/learning/modules/:id/complete
func (h *LearningHandler) CompleteModule(c *gin.Context) {
	userID, moduleID, ok := h.parseUserAndModule(c)
	if !ok {
		return
	}

	result, err := h.learningSvc.CompleteModule(c.Request.Context(), userID, moduleID)
	if err != nil {
		if errors.Is(err, services.ErrProgressNotFound) {
			RespondError(c, http.StatusNotFound, "progress_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "complete_module_failed", err)
		return
	}
	RespondOK(c, result)
}

// GET /api/v1/learning/credits/:user_id
func (h *LearningHandler) GetCredits(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	balance, err := h.creditSvc.GetBalance(c.Request.Context(), nil, userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "load_credits_failed", err)
		return
	}
	history, err := h.creditSvc.History(c.Request.Context(), nil, userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "load_credits_failed", err)
		return
	}
	RespondOK(c, gin.H{"balance": balance, "transactions": history})
}

func (h *LearningHandler) parseUserAndModule(c *gin.Context) (uuid.UUID, int64, bool) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return uuid.Nil, 0, false
	}
	moduleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_module_id", err)
		return uuid.Nil, 0, false
	}
	return userID, moduleID, true
}

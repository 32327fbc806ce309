package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saktilink/edge-backend/internal/services"
)

type LegalHandler struct {
	legalSvc services.LegalService
}

func NewLegalHandler(legalSvc services.LegalService) *LegalHandler {
	return &LegalHandler{legalSvc: legalSvc}
}

type legalQueryRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Query    string `json:"query" binding:"required"`
	Language string `json:"language"`
}

// POST /api/v1/legal/query
func (h *LegalHandler) Query(c *gin.Context) {
	var req legalQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	answer, err := h.legalSvc.HandleIntent(c.Request.Context(), userID, req.Query, req.Language)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "legal_query_failed", err)
		return
	}
	RespondOK(c, gin.H{"response": answer})
}

// GET /api/v1/legal/topics
func (h *LegalHandler) ListTopics(c *gin.Context) {
	language := c.DefaultQuery("language", "hi")

	if query := c.Query("q"); query != "" {
		matches, err := h.legalSvc.SearchTopics(c.Request.Context(), query, language)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "search_topics_failed", err)
			return
		}
		RespondOK(c, gin.H{"matches": matches})
		return
	}

	topics, err := h.legalSvc.ListTopics(c.Request.Context(), language)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_topics_failed", err)
		return
	}
	RespondOK(c, gin.H{"topics": topics})
}

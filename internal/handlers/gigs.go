package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saktilink/edge-backend/internal/services"
)

type GigHandler struct {
	gigSvc services.GigService
}

func NewGigHandler(gigSvc services.GigService) *GigHandler {
	return &GigHandler{gigSvc: gigSvc}
}

// GET /api/v1/gigs/available
func (h *GigHandler) ListAvailable(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	gigs, err := h.gigSvc.ListAvailable(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_gigs_failed", err)
		return
	}
	RespondOK(c, gin.H{"gigs": gigs})
}

// POST /api/v1/gigs/:id/apply
func (h *GigHandler) Apply(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	gigID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_gig_id", err)
		return
	}

	result, err := h.gigSvc.Apply(c.Request.Context(), userID, gigID)
	if err != nil {
		if errors.Is(err, services.ErrGigNotFound) {
			RespondError(c, http.StatusNotFound, "gig_not_found", err)
			return
		}
		if errors.Is(err, services.ErrAlreadyApplied) {
			RespondError(c, http.StatusConflict, "already_applied", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "apply_failed", err)
		return
	}
	RespondOK(c, result)
}

// GET /api/v1/gigs/user/:user_id
func (h *GigHandler) ListApplications(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	apps, err := h.gigSvc.ListApplications(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_applications_failed", err)
		return
	}
	RespondOK(c, gin.H{"applications": apps})
}

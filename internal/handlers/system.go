package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saktilink/edge-backend/internal/services"
)

type SystemHandler struct {
	systemSvc services.SystemService
}

func NewSystemHandler(systemSvc services.SystemService) *SystemHandler {
	return &SystemHandler{systemSvc: systemSvc}
}

// GET /api/v1/system/status
func (h *SystemHandler) Status(c *gin.Context) {
	RespondOK(c, h.systemSvc.Status())
}

// GET /api/v1/system/metrics
func (h *SystemHandler) Metrics(c *gin.Context) {
	report, err := h.systemSvc.Metrics(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "load_metrics_failed", err)
		return
	}
	RespondOK(c, report)
}

// GET /api/v1/system/sync/status
func (h *SystemHandler) SyncStatus(c *gin.Context) {
	RespondOK(c, h.systemSvc.SyncStatus())
}

// POST /api/v1/system/sync/trigger
func (h *SystemHandler) TriggerSync(c *gin.Context) {
	if err := h.systemSvc.TriggerSync(c.Request.Context()); err != nil {
		if errors.Is(err, services.ErrSyncDisabled) {
			RespondError(c, http.StatusConflict, "sync_disabled", err)
			return
		}
		if errors.Is(err, services.ErrSyncUnavailable) {
			RespondError(c, http.StatusNotImplemented, "sync_unavailable", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "sync_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "message": "Sync initiated"})
}

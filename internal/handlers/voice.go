package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saktilink/edge-backend/internal/services"
)

type VoiceHandler struct {
	pipeline services.VoicePipelineService
}

func NewVoiceHandler(pipeline services.VoicePipelineService) *VoiceHandler {
	return &VoiceHandler{pipeline: pipeline}
}

// POST /api/v1/voice/process
func (h *VoiceHandler) Process(c *gin.Context) {
	var req services.VoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.DeviceFingerprint == "" {
		RespondError(c, http.StatusBadRequest, "missing_device_fingerprint", nil)
		return
	}

	resp, err := h.pipeline.Process(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "voice_processing_failed", err)
		return
	}
	RespondOK(c, resp)
}

type synthesizeRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language"`
}

// POST /api/v1/voice/synthesize
func (h *VoiceHandler) Synthesize(c *gin.Context) {
	var req synthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	audio, err := h.pipeline.Synthesize(c.Request.Context(), req.Text, req.Language)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "synthesis_failed", err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=speech.wav")
	c.Data(http.StatusOK, "audio/wav", audio)
}

// GET /api/v1/voice/languages
func (h *VoiceHandler) Languages(c *gin.Context) {
	RespondOK(c, gin.H{"languages": h.pipeline.SupportedLanguages()})
}

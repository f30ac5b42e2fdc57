package handlers

import (
	"github.com/gin-gonic/gin"

	"simrs/internal/domain/voice"
	"simrs/internal/infrastructure/http/v1/dto"
)

// VoiceHandler serves the assistant session endpoints.
type VoiceHandler struct {
	*BaseHandler
	service *voice.Service
}

// NewVoiceHandler creates a voice handler.
func NewVoiceHandler(base *BaseHandler, service *voice.Service) *VoiceHandler {
	return &VoiceHandler{BaseHandler: base, service: service}
}

// Start handles POST /voice/sessions.
func (h *VoiceHandler) Start(c *gin.Context) {
	info, err := h.service.StartSession(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, info)
}

// Dispatch handles POST /voice/sessions/:id/actions.
func (h *VoiceHandler) Dispatch(c *gin.Context) {
	var req dto.VoiceActionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Dispatch(c.Request.Context(), c.Param("id"), req.Token, req.Action)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Close handles DELETE /voice/sessions/:id. Idempotent.
func (h *VoiceHandler) Close(c *gin.Context) {
	h.service.Close(c.Request.Context(), c.Param("id"))
	h.NoContent(c)
}

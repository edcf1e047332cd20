package handlers

import (
	"github.com/gin-gonic/gin"

	"salemargin/internal/domain/settings"
	"salemargin/internal/infrastructure/http/v1/dto"
)

// SettingsHandler exposes the margin configuration parameters.
type SettingsHandler struct {
	*BaseHandler
	service *settings.Service
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(base *BaseHandler, service *settings.Service) *SettingsHandler {
	return &SettingsHandler{BaseHandler: base, service: service}
}

// GetOverheadType returns the configured overhead application method.
// GET /api/v1/settings/overhead-type
func (h *SettingsHandler) GetOverheadType(c *gin.Context) {
	value, err := h.service.OverheadType(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.OverheadTypeResponse{OverheadType: value})
}

// SetOverheadType updates the overhead application method.
// PUT /api/v1/settings/overhead-type
func (h *SettingsHandler) SetOverheadType(c *gin.Context) {
	var req dto.SetOverheadTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetOverheadType(c.Request.Context(), req.OverheadType); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.OverheadTypeResponse{OverheadType: req.OverheadType})
}

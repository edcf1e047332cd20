package handlers

import (
	"github.com/gin-gonic/gin"

	"salemargin/internal/core/id"
	"salemargin/internal/domain/landedcost"
	"salemargin/internal/infrastructure/http/v1/dto"
)

// LandedCostHandler serves landed cost records and their finalization.
type LandedCostHandler struct {
	*BaseHandler
	service *landedcost.Service
}

// NewLandedCostHandler creates a landed cost handler.
func NewLandedCostHandler(base *BaseHandler, service *landedcost.Service) *LandedCostHandler {
	return &LandedCostHandler{BaseHandler: base, service: service}
}

// Create handles POST /api/v1/landed-costs. Records start in draft and stay
// invisible to breakdowns until finalized.
func (h *LandedCostHandler) Create(c *gin.Context) {
	var req dto.CreateLandedCostRequest
	if !h.BindJSON(c, &req) {
		return
	}

	lines := make([]landedcost.AdjustmentLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		productID, err := id.Parse(l.ProductID)
		if err != nil {
			h.Error(c, invalidID("productId"))
			return
		}
		lines = append(lines, landedcost.AdjustmentLine{
			ProductID:            productID,
			Label:                l.Label,
			SplitMethod:          l.SplitMethod,
			AdditionalLandedCost: l.AdditionalLandedCost,
			Quantity:             l.Quantity,
		})
	}

	cost, err := h.service.Create(c.Request.Context(), req.Number, lines)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, cost.ID.String())
}

// Get handles GET /api/v1/landed-costs/:id.
func (h *LandedCostHandler) Get(c *gin.Context) {
	costID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	cost, err := h.service.Get(c.Request.Context(), costID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cost)
}

// Finalize handles POST /api/v1/landed-costs/:id/finalize.
func (h *LandedCostHandler) Finalize(c *gin.Context) {
	costID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	cost, err := h.service.Finalize(c.Request.Context(), costID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cost)
}

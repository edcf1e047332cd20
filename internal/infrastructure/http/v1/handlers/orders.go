package handlers

import (
	"github.com/gin-gonic/gin"

	"salemargin/internal/core/id"
	"salemargin/internal/domain/orders"
	"salemargin/internal/infrastructure/http/v1/dto"
)

// OrderHandler serves sale orders and their margin cascade operations.
type OrderHandler struct {
	*BaseHandler
	service *orders.Service
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(base *BaseHandler, service *orders.Service) *OrderHandler {
	return &OrderHandler{BaseHandler: base, service: service}
}

// Create handles POST /api/v1/orders. The cascade runs before the first
// save, so the response already carries the computed margin fields.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order := orders.NewSaleOrder(req.Number, req.PartnerName)
	for _, line := range req.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			h.Error(c, invalidID("productId"))
			return
		}
		order.AddLine(productID, line.Quantity, line.PriceUnit, line.Discount)
	}

	if err := h.service.Create(c.Request.Context(), order); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, order.ID.String())
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	order, err := h.service.Get(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, order)
}

// List handles GET /api/v1/orders.
func (h *OrderHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, items, len(items))
}

// AddLine handles POST /api/v1/orders/:id/lines.
func (h *OrderHandler) AddLine(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.AddLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, invalidID("productId"))
		return
	}

	order, err := h.service.AddLine(c.Request.Context(), orderID, productID, req.Quantity, req.PriceUnit, req.Discount)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, order)
}

// UpdateLine handles PATCH /api/v1/orders/:id/lines/:lineId.
func (h *OrderHandler) UpdateLine(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	lineID, ok := h.ParseID(c, "lineId")
	if !ok {
		return
	}

	var req dto.UpdateLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	patch := orders.LinePatch{
		Quantity:  req.Quantity,
		PriceUnit: req.PriceUnit,
		Discount:  req.Discount,
	}

	order, err := h.service.UpdateLine(c.Request.Context(), orderID, lineID, patch)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, order)
}

// Confirm handles POST /api/v1/orders/:id/confirm. Confirmation freezes the
// stored snapshots; there is no way back.
func (h *OrderHandler) Confirm(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	order, err := h.service.Confirm(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, order)
}

// Recompute handles POST /api/v1/orders/:id/recompute. For confirmed orders
// this returns the order unchanged.
func (h *OrderHandler) Recompute(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	order, err := h.service.Recompute(c.Request.Context(), orderID, "manual")
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, order)
}

// RecomputeBatch handles POST /api/v1/orders/recompute. This is the consumer
// side of the overhead-changed event: recompute every draft order touching
// the listed analytic accounts.
func (h *OrderHandler) RecomputeBatch(c *gin.Context) {
	var req dto.RecomputeBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	accountIDs, ok := h.ParseIDs(c, req.AnalyticAccountIDs)
	if !ok {
		return
	}

	count, err := h.service.RecomputeForAnalyticAccounts(c.Request.Context(), accountIDs, "overhead_updated")
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.RecomputeBatchResponse{OrdersRecomputed: count})
}

// LineBreakdown handles GET /api/v1/orders/:id/lines/:lineId/breakdown.
// The breakdown is informational and available for confirmed orders too.
func (h *OrderHandler) LineBreakdown(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	lineID, ok := h.ParseID(c, "lineId")
	if !ok {
		return
	}

	breakdown, err := h.service.LineBreakdown(c.Request.Context(), orderID, lineID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, breakdown)
}

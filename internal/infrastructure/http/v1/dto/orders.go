package dto

import (
	"salemargin/internal/core/types"
)

// CreateOrderLineRequest is one line of a new sale order.
type CreateOrderLineRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Quantity  float64     `json:"quantity"`
	PriceUnit types.Money `json:"priceUnit"`
	Discount  types.Money `json:"discount"`
}

// CreateOrderRequest is the request body for creating a sale order.
type CreateOrderRequest struct {
	Number      string                   `json:"number" binding:"required"`
	PartnerName string                   `json:"partnerName" binding:"required"`
	Lines       []CreateOrderLineRequest `json:"lines"`
}

// AddLineRequest appends a line to a draft order.
type AddLineRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Quantity  float64     `json:"quantity"`
	PriceUnit types.Money `json:"priceUnit"`
	Discount  types.Money `json:"discount"`
}

// UpdateLineRequest patches a draft order line. Absent fields keep their
// current values.
type UpdateLineRequest struct {
	Quantity  *float64     `json:"quantity"`
	PriceUnit *types.Money `json:"priceUnit"`
	Discount  *types.Money `json:"discount"`
}

// RecomputeBatchRequest triggers margin recomputation for all draft orders
// touching the given analytic accounts.
type RecomputeBatchRequest struct {
	AnalyticAccountIDs []string `json:"analyticAccountIds" binding:"required,min=1"`
}

// RecomputeBatchResponse reports how many orders were recomputed.
type RecomputeBatchResponse struct {
	OrdersRecomputed int `json:"ordersRecomputed"`
}

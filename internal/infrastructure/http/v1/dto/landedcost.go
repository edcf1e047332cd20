package dto

import (
	"salemargin/internal/core/types"
)

// CreateAdjustmentLineRequest is one valuation adjustment entry of a new
// landed cost record.
type CreateAdjustmentLineRequest struct {
	ProductID            string      `json:"productId" binding:"required"`
	Label                string      `json:"label"`
	SplitMethod          string      `json:"splitMethod"`
	AdditionalLandedCost types.Money `json:"additionalLandedCost"`
	Quantity             float64     `json:"quantity"`
}

// CreateLandedCostRequest is the request body for creating a landed cost
// record in draft state.
type CreateLandedCostRequest struct {
	Number string                        `json:"number" binding:"required"`
	Lines  []CreateAdjustmentLineRequest `json:"lines"`
}

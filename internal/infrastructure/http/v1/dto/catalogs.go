package dto

import (
	"salemargin/internal/core/types"
)

// --- Products ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code          string      `json:"code"`
	Name          string      `json:"name" binding:"required"`
	CategoryID    string      `json:"categoryId" binding:"required"`
	StandardPrice types.Money `json:"standardPrice"`
}

// SetStandardPriceRequest updates a product's standard price.
type SetStandardPriceRequest struct {
	StandardPrice types.Money `json:"standardPrice"`
}

// --- Categories ---

// CreateCategoryRequest is the request body for creating a product category.
type CreateCategoryRequest struct {
	Code              string  `json:"code"`
	Name              string  `json:"name" binding:"required"`
	AnalyticAccountID *string `json:"analyticAccountId"`
}

// SetAnalyticAccountRequest links or unlinks a category's analytic account.
type SetAnalyticAccountRequest struct {
	AnalyticAccountID *string `json:"analyticAccountId"`
}

// --- Analytic accounts ---

// CreateAnalyticAccountRequest is the request body for creating an analytic
// account.
type CreateAnalyticAccountRequest struct {
	Code     string      `json:"code"`
	Name     string      `json:"name" binding:"required"`
	Overhead types.Money `json:"overhead"`
}

// SetOverheadRequest updates the overhead rate on a set of analytic accounts.
type SetOverheadRequest struct {
	AccountIDs []string    `json:"accountIds" binding:"required,min=1"`
	Overhead   types.Money `json:"overhead"`
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"salemargin/internal/core/id"
	"salemargin/internal/domain/catalogs/analytic"
	"salemargin/internal/domain/catalogs/category"
	"salemargin/internal/domain/catalogs/product"
	"salemargin/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// Create handles POST /api/v1/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	categoryID, err := id.Parse(req.CategoryID)
	if err != nil {
		h.Error(c, invalidID("categoryId"))
		return
	}

	p := product.NewProduct(req.Code, req.Name, categoryID)
	p.StandardPrice = req.StandardPrice

	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p.ID.String())
}

// Get handles GET /api/v1/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// List handles GET /api/v1/products.
func (h *ProductHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, items, len(items))
}

// SetStandardPrice handles PUT /api/v1/products/:id/standard-price.
// Changing the price does not touch existing orders; drafts pick it up on
// their next recompute.
func (h *ProductHandler) SetStandardPrice(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetStandardPriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.SetStandardPrice(c.Request.Context(), productID, req.StandardPrice)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// CategoryHandler serves the product category catalog.
type CategoryHandler struct {
	*BaseHandler
	service *category.Service
}

// NewCategoryHandler creates a category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHandler {
	return &CategoryHandler{BaseHandler: base, service: service}
}

// Create handles POST /api/v1/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cat := category.NewCategory(req.Code, req.Name)
	if req.AnalyticAccountID != nil {
		accountID, err := id.Parse(*req.AnalyticAccountID)
		if err != nil {
			h.Error(c, invalidID("analyticAccountId"))
			return
		}
		cat.AnalyticAccountID = &accountID
	}

	if err := h.service.Create(c.Request.Context(), cat); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, cat.ID.String())
}

// List handles GET /api/v1/categories.
func (h *CategoryHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, items, len(items))
}

// SetAnalyticAccount handles PUT /api/v1/categories/:id/analytic-account.
func (h *CategoryHandler) SetAnalyticAccount(c *gin.Context) {
	categoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetAnalyticAccountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var accountID *id.ID
	if req.AnalyticAccountID != nil {
		parsed, err := id.Parse(*req.AnalyticAccountID)
		if err != nil {
			h.Error(c, invalidID("analyticAccountId"))
			return
		}
		accountID = &parsed
	}

	cat, err := h.service.SetAnalyticAccount(c.Request.Context(), categoryID, accountID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cat)
}

// AnalyticHandler serves the analytic account catalog. Overhead rate changes
// go through here and emit the overhead-changed event.
type AnalyticHandler struct {
	*BaseHandler
	service *analytic.Service
}

// NewAnalyticHandler creates an analytic account handler.
func NewAnalyticHandler(base *BaseHandler, service *analytic.Service) *AnalyticHandler {
	return &AnalyticHandler{BaseHandler: base, service: service}
}

// Create handles POST /api/v1/analytic-accounts.
func (h *AnalyticHandler) Create(c *gin.Context) {
	var req dto.CreateAnalyticAccountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	account := analytic.NewAccount(req.Code, req.Name)
	account.Overhead = req.Overhead

	if err := h.service.Create(c.Request.Context(), account); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, account.ID.String())
}

// List handles GET /api/v1/analytic-accounts.
func (h *AnalyticHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, items, len(items))
}

// SetOverhead handles PUT /api/v1/analytic-accounts/overhead.
// Updates the rate on every listed account and returns the emitted event;
// recomputation of affected orders is the caller's move.
func (h *AnalyticHandler) SetOverhead(c *gin.Context) {
	var req dto.SetOverheadRequest
	if !h.BindJSON(c, &req) {
		return
	}

	accountIDs, ok := h.ParseIDs(c, req.AccountIDs)
	if !ok {
		return
	}

	event, err := h.service.SetOverhead(c.Request.Context(), accountIDs, req.Overhead)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, event)
}

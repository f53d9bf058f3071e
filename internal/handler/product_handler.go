package handler

import (
	"github.com/gin-gonic/gin"

	"relove/internal/service/catalog"
	"relove/pkg/utils"
)

// ProductHandler catalog handler
type ProductHandler struct {
	catalogService catalog.CatalogService
}

// NewProductHandler creates a catalog handler
func NewProductHandler(catalogService catalog.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

// CreateProduct creates a listing
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, err.Error())
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, product)
}

// GetProduct gets one listing
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, product)
}

// UpdateProduct updates a listing
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, err.Error())
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), c.GetString("user_id"), c.Param("id"), &req)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, product)
}

// DeleteProduct deletes a listing
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	err := h.catalogService.DeleteProduct(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, nil)
}

// ListProducts lists the catalog
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var req catalog.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, err.Error())
		return
	}

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	utils.SuccessPage(c, products, total, page, pageSize)
}

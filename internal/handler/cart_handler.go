package handler

import (
	"github.com/gin-gonic/gin"

	"relove/internal/service/cart"
	"relove/pkg/utils"
)

// CartHandler shopping cart handler
type CartHandler struct {
	cartService cart.CartService
}

// NewCartHandler creates a cart handler
func NewCartHandler(cartService cart.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// AddItem adds a product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, err.Error())
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, item)
}

// UpdateItem changes the quantity of a cart row
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req cart.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, err.Error())
		return
	}

	err := h.cartService.UpdateItem(c.Request.Context(), c.GetString("user_id"), c.Param("id"), &req)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, nil)
}

// RemoveItem removes a cart row
func (h *CartHandler) RemoveItem(c *gin.Context) {
	err := h.cartService.RemoveItem(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, nil)
}

// GetCart lists the cart with totals
func (h *CartHandler) GetCart(c *gin.Context) {
	summary, err := h.cartService.GetCart(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, summary)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"relove/internal/service/order"
	"relove/pkg/utils"
)

// OrderHandler order views for buyers and sellers
type OrderHandler struct {
	orderService order.OrderService
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orderService order.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// GetOrder gets one transaction
func (h *OrderHandler) GetOrder(c *gin.Context) {
	trx, err := h.orderService.GetOrder(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, trx)
}

// ListPurchases lists the authenticated buyer's orders
func (h *OrderHandler) ListPurchases(c *gin.Context) {
	trxs, err := h.orderService.ListPurchases(c.Request.Context(), c.GetString("user_id"), c.Query("status"))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, trxs)
}

// ListSales lists the authenticated seller's sales
func (h *OrderHandler) ListSales(c *gin.Context) {
	trxs, err := h.orderService.ListSales(c.Request.Context(), c.GetString("user_id"), c.Query("status"))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, trxs)
}

// UpdateOrderStatus advances fulfilment of a sale
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req order.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, err.Error())
		return
	}

	err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.GetString("user_id"), c.Param("id"), &req)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, nil)
}

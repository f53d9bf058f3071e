package handler

import (
	"github.com/gin-gonic/gin"

	"relove/internal/monitor"
	"relove/internal/service/checkout"
	"relove/pkg/utils"
)

// CheckoutHandler checkout handler
type CheckoutHandler struct {
	checkoutService checkout.CheckoutService
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(checkoutService checkout.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// Checkout turns the cart into a payment session
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkout.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, err.Error())
		return
	}

	resp, err := h.checkoutService.Checkout(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		monitor.CheckoutTotal.WithLabelValues("failed").Inc()
		utils.ErrorFrom(c, err)
		return
	}

	monitor.CheckoutTotal.WithLabelValues("created").Inc()
	utils.Success(c, resp)
}

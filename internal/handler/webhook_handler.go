package handler

import (
	"github.com/gin-gonic/gin"

	"relove/internal/gateway/midtrans"
	"relove/internal/monitor"
	"relove/internal/service/reconcile"
	"relove/pkg/utils"
)

// WebhookHandler gateway notification handler
type WebhookHandler struct {
	reconcileService reconcile.ReconcileService
}

// NewWebhookHandler creates a webhook handler
func NewWebhookHandler(reconcileService reconcile.ReconcileService) *WebhookHandler {
	return &WebhookHandler{
		reconcileService: reconcileService,
	}
}

// HandleNotification applies one gateway payment notification
func (h *WebhookHandler) HandleNotification(c *gin.Context) {
	var notification midtrans.Notification
	if err := c.ShouldBindJSON(&notification); err != nil {
		utils.Error(c, utils.CodeInvalidParam, err.Error())
		return
	}
	if notification.OrderID == "" || notification.TransactionStatus == "" {
		utils.Error(c, utils.CodeInvalidParam, "order_id and transaction_status are required")
		return
	}

	err := h.reconcileService.HandleNotification(c.Request.Context(), &notification)
	if err != nil {
		monitor.WebhookTotal.WithLabelValues(notification.TransactionStatus, "failed").Inc()
		utils.ErrorFrom(c, err)
		return
	}

	monitor.WebhookTotal.WithLabelValues(notification.TransactionStatus, "applied").Inc()
	utils.Success(c, nil)
}

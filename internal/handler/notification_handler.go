package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"relove/internal/service/notification"
	"relove/pkg/utils"
)

// NotificationHandler per-user feed handler
type NotificationHandler struct {
	notificationService notification.NotificationService
}

// NewNotificationHandler creates a notification handler
func NewNotificationHandler(notificationService notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List lists the feed
func (h *NotificationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	notifications, total, err := h.notificationService.List(c.Request.Context(), c.GetString("user_id"), page, pageSize)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessPage(c, notifications, total, page, pageSize)
}

// UnreadCount counts unread entries
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.CountUnread(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, gin.H{"unread": count})
}

// MarkRead marks one entry read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	err := h.notificationService.MarkRead(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, nil)
}

// MarkAllRead marks the whole feed read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	err := h.notificationService.MarkAllRead(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, nil)
}

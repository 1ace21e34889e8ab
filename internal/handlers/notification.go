package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/memorylane/internal/middleware"
	"github.com/thereayou/memorylane/internal/storage"
)

type NotificationHandler struct {
	store storage.Storage
}

func NewNotificationHandler(store storage.Storage) *NotificationHandler {
	return &NotificationHandler{store: store}
}

func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.store.ListNotifications(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.store.CountUnreadNotifications(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := h.addressed(c)
	if !ok {
		return
	}

	notification, err := h.store.MarkNotificationRead(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.store.MarkAllNotificationsRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := h.addressed(c)
	if !ok {
		return
	}

	if err := h.store.DeleteNotification(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// addressed returns the :id notification id when it belongs to the caller.
func (h *NotificationHandler) addressed(c *gin.Context) (int64, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return 0, false
	}

	notification, err := h.store.GetNotification(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return 0, false
	}
	if notification.UserID != middleware.UserID(c) {
		respondError(c, errForbidden)
		return 0, false
	}
	return id, true
}

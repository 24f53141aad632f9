package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/services"
)

// NotificationController serves the caller's inbox; the same routes work for both portals
type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func (nc *NotificationController) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("", nc.ListNotifications)
		notifications.GET("/unread-count", nc.UnreadCount)
		notifications.PATCH("/read-all", nc.MarkAllRead)
		notifications.PATCH("/:id/read", nc.MarkRead)
	}
}

// ListNotifications supports ?unread=true and ?limit=
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	var q dto.NotificationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	list, err := nc.notifications.List(c.Request.Context(), principal(c), q)
	if err != nil {
		respondError(c, "Failed to retrieve notifications", err)
		return
	}
	success(c, http.StatusOK, list)
}

func (nc *NotificationController) UnreadCount(c *gin.Context) {
	count, err := nc.notifications.UnreadCount(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, "Failed to count notifications", err)
		return
	}
	success(c, http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	n, err := nc.notifications.MarkRead(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to mark notification read", err)
		return
	}
	success(c, http.StatusOK, n)
}

func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	updated, err := nc.notifications.MarkAllRead(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, "Failed to mark notifications read", err)
		return
	}
	success(c, http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

package handler

import (
	"github.com/gin-gonic/gin"
	appnotification "github.com/handwerkos/backend/internal/application/notification"
	"go.uber.org/zap"
)

// NotificationHandler exposes the notification inbox over HTTP. List and
// count endpoints are scoped to the authenticated user.
type NotificationHandler struct {
	BaseHandler
	service *appnotification.NotificationService
}

func NewNotificationHandler(service *appnotification.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

func (h *NotificationHandler) Push(c *gin.Context) {
	var req appnotification.PushNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.Push(c.Request.Context(), h.companyID(c), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *NotificationHandler) List(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	principal := h.principal(c)
	items, total, err := h.service.ListForUser(c.Request.Context(), principal.CompanyID, principal.UserID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Paged(c, items, total, filter)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	principal := h.principal(c)
	count, err := h.service.CountUnread(c.Request.Context(), principal.CompanyID, principal.UserID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, gin.H{"unread": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.MarkRead(c.Request.Context(), h.companyID(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	principal := h.principal(c)
	if err := h.service.MarkAllRead(c.Request.Context(), principal.CompanyID, principal.UserID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

func (h *NotificationHandler) Archive(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Archive(c.Request.Context(), h.companyID(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

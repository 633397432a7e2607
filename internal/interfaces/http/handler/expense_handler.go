package handler

import (
	"github.com/gin-gonic/gin"
	appwork "github.com/handwerkos/backend/internal/application/work"
	"go.uber.org/zap"
)

// ExpenseHandler exposes expense recording and approval over HTTP.
type ExpenseHandler struct {
	BaseHandler
	service *appwork.ExpenseService
}

func NewExpenseHandler(service *appwork.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

func (h *ExpenseHandler) Record(c *gin.Context) {
	var req appwork.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.Record(c.Request.Context(), h.companyID(c), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *ExpenseHandler) ListByProject(c *gin.Context) {
	projectID, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	items, err := h.service.ListByProject(c.Request.Context(), h.companyID(c), projectID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, items)
}

func (h *ExpenseHandler) Approve(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Approve(c.Request.Context(), h.principal(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ExpenseHandler) Reject(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Reject(c.Request.Context(), h.principal(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

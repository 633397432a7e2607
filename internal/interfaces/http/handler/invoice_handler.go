package handler

import (
	"github.com/gin-gonic/gin"
	appfinance "github.com/handwerkos/backend/internal/application/finance"
	"go.uber.org/zap"
)

// InvoiceHandler exposes the invoice lifecycle over HTTP.
type InvoiceHandler struct {
	BaseHandler
	service *appfinance.InvoiceService
}

func NewInvoiceHandler(service *appfinance.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req appfinance.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.CreateDraft(c.Request.Context(), h.companyID(c), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Get(c.Request.Context(), h.companyID(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	items, total, err := h.service.List(c.Request.Context(), h.companyID(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Paged(c, items, total, filter)
}

func (h *InvoiceHandler) UpdateAmount(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req appfinance.UpdateInvoiceAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.UpdateAmount(c.Request.Context(), h.companyID(c), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *InvoiceHandler) Send(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req appfinance.SendInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.Send(c.Request.Context(), h.companyID(c), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.MarkPaid(c.Request.Context(), h.companyID(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *InvoiceHandler) MarkOverdue(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.MarkOverdue(c.Request.Context(), h.companyID(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), h.companyID(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	"github.com/gin-gonic/gin"
	appinventory "github.com/handwerkos/backend/internal/application/inventory"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaterialHandler exposes material stock management over HTTP.
type MaterialHandler struct {
	BaseHandler
	service *appinventory.MaterialService
}

func NewMaterialHandler(service *appinventory.MaterialService, logger *zap.Logger) *MaterialHandler {
	return &MaterialHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

type setMinimumStockRequest struct {
	MinimumStock decimal.Decimal `json:"minimum_stock" binding:"required"`
}

func (h *MaterialHandler) Create(c *gin.Context) {
	var req appinventory.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.Create(c.Request.Context(), h.companyID(c), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *MaterialHandler) Get(c *gin.Context) {
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

func (h *MaterialHandler) List(c *gin.Context) {
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

func (h *MaterialHandler) AdjustStock(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req appinventory.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.AdjustStock(c.Request.Context(), h.companyID(c), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *MaterialHandler) MovementHistory(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	items, err := h.service.MovementHistory(c.Request.Context(), h.companyID(c), id, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, items)
}

func (h *MaterialHandler) SetMinimumStock(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req setMinimumStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.SetMinimumStock(c.Request.Context(), h.companyID(c), id, req.MinimumStock)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *MaterialHandler) Delete(c *gin.Context) {
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

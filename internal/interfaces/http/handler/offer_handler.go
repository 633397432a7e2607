package handler

import (
	"github.com/gin-gonic/gin"
	appsales "github.com/handwerkos/backend/internal/application/sales"
	"go.uber.org/zap"
)

// OfferHandler exposes the offer lifecycle over HTTP.
type OfferHandler struct {
	BaseHandler
	service *appsales.OfferService
}

func NewOfferHandler(service *appsales.OfferService, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

func (h *OfferHandler) Create(c *gin.Context) {
	var req appsales.CreateOfferRequest
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

func (h *OfferHandler) Get(c *gin.Context) {
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

func (h *OfferHandler) List(c *gin.Context) {
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

func (h *OfferHandler) AddItem(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req appsales.AddOfferItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.AddItem(c.Request.Context(), h.companyID(c), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *OfferHandler) RemoveItem(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.paramUUID(c, "itemId")
	if !ok {
		return
	}
	resp, err := h.service.RemoveItem(c.Request.Context(), h.companyID(c), id, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *OfferHandler) SetTargets(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req appsales.OfferTargetsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.SetTargets(c.Request.Context(), h.companyID(c), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *OfferHandler) Send(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Send(c.Request.Context(), h.companyID(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *OfferHandler) Accept(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Accept(c.Request.Context(), h.companyID(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *OfferHandler) Reject(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.Reject(c.Request.Context(), h.companyID(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

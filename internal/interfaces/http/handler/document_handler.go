package handler

import (
	"github.com/gin-gonic/gin"
	appdocs "github.com/handwerkos/backend/internal/application/docs"
	"go.uber.org/zap"
)

// DocumentHandler exposes document metadata management over HTTP.
type DocumentHandler struct {
	BaseHandler
	service *appdocs.DocumentService
}

func NewDocumentHandler(service *appdocs.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

func (h *DocumentHandler) Register(c *gin.Context) {
	var req appdocs.RegisterDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.Register(c.Request.Context(), h.companyID(c), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *DocumentHandler) Get(c *gin.Context) {
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

func (h *DocumentHandler) List(c *gin.Context) {
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

func (h *DocumentHandler) ListByEntity(c *gin.Context) {
	entityID, ok := h.paramUUID(c, "entityId")
	if !ok {
		return
	}
	items, err := h.service.ListByEntity(c.Request.Context(), h.companyID(c), c.Param("entityType"), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, items)
}

func (h *DocumentHandler) ListByCategory(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	items, total, err := h.service.ListByCategory(c.Request.Context(), h.companyID(c), c.Param("category"), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Paged(c, items, total, filter)
}

func (h *DocumentHandler) Attach(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req appdocs.AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.AttachTo(c.Request.Context(), h.companyID(c), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	principal := h.principal(c)
	if err := h.service.Delete(c.Request.Context(), principal.CompanyID, id, principal.UserID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

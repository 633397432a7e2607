package handler

import (
	"github.com/gin-gonic/gin"
	appwork "github.com/handwerkos/backend/internal/application/work"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TimesheetHandler exposes timesheet recording and approval over HTTP.
type TimesheetHandler struct {
	BaseHandler
	service *appwork.TimesheetService
}

func NewTimesheetHandler(service *appwork.TimesheetService, logger *zap.Logger) *TimesheetHandler {
	return &TimesheetHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

type updateHoursRequest struct {
	Hours decimal.Decimal `json:"hours" binding:"required"`
}

func (h *TimesheetHandler) Record(c *gin.Context) {
	var req appwork.RecordTimesheetRequest
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

func (h *TimesheetHandler) Get(c *gin.Context) {
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

func (h *TimesheetHandler) ListByProject(c *gin.Context) {
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

func (h *TimesheetHandler) UpdateHours(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req updateHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.UpdateHours(c.Request.Context(), h.companyID(c), id, req.Hours)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *TimesheetHandler) Approve(c *gin.Context) {
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

func (h *TimesheetHandler) Reject(c *gin.Context) {
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

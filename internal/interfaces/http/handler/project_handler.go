package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appwork "github.com/handwerkos/backend/internal/application/work"
	"go.uber.org/zap"
)

// ProjectHandler exposes project lifecycle and cost reporting over HTTP.
type ProjectHandler struct {
	BaseHandler
	service *appwork.ProjectService
}

func NewProjectHandler(service *appwork.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

type setProjectDatesRequest struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req appwork.CreateProjectRequest
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

func (h *ProjectHandler) Get(c *gin.Context) {
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

func (h *ProjectHandler) List(c *gin.Context) {
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

func (h *ProjectHandler) Activate(c *gin.Context) {
	h.transition(c, h.service.Activate)
}

func (h *ProjectHandler) Unblock(c *gin.Context) {
	h.transition(c, h.service.Unblock)
}

func (h *ProjectHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

func (h *ProjectHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *ProjectHandler) Block(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req appwork.BlockProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.Block(c.Request.Context(), h.companyID(c), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ProjectHandler) AssignTeam(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req appwork.AssignTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.AssignTeam(c.Request.Context(), h.companyID(c), id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ProjectHandler) SetDates(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req setProjectDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.SetDates(c.Request.Context(), h.companyID(c), id, req.StartDate, req.EndDate)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ProjectHandler) CostSummary(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.CostSummary(c.Request.Context(), h.companyID(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
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

func (h *ProjectHandler) transition(c *gin.Context, apply func(ctx context.Context, companyID, projectID uuid.UUID) (*appwork.ProjectResponse, error)) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := apply(c.Request.Context(), h.companyID(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

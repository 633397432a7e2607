package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/infrastructure/auth"
	"github.com/handwerkos/backend/internal/interfaces/http/dto"
	"github.com/handwerkos/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides response helpers shared by all resource handlers.
type BaseHandler struct {
	logger *zap.Logger
}

func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (h *BaseHandler) Paged(c *gin.Context, data interface{}, total int64, filter shared.Filter) {
	c.JSON(http.StatusOK, dto.NewPagedResponse(data, total, filter.Page, filter.PageSize))
}

// Error translates domain errors into the uniform error envelope.
// Unexpected errors are logged and reported as system errors.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code), dto.NewDomainErrorResponse(domainErr))
		return
	}

	h.logger.Error("unhandled error",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString("request_id")),
	)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(shared.CodeSystemError, "Internal server error"))
}

func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(shared.CodeValidation, err.Error()))
}

// principal returns the authenticated identity. The auth middleware
// guarantees it is present on every protected route.
func (h *BaseHandler) principal(c *gin.Context) auth.Principal {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		panic("handler reached without authenticated principal")
	}
	return principal
}

func (h *BaseHandler) companyID(c *gin.Context) uuid.UUID {
	return h.principal(c).CompanyID
}

func (h *BaseHandler) paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(shared.CodeValidation, "Invalid "+name+" parameter"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *BaseHandler) bindFilter(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err)
		return shared.Filter{}, false
	}
	return req.ToFilter(), true
}

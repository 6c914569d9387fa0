package handler

import (
	"errors"
	"net/http"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/interfaces/http/dto"
	"github.com/fatoora/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// BaseHandler provides the response helpers shared by all handlers
type BaseHandler struct{}

// companyID returns the company scope set by the middleware. A missing
// company means the route was wired without RequireCompany, which is a
// programming error, so the request is rejected.
func companyID(c *gin.Context) (uuid.UUID, bool) {
	return middleware.GetCompanyID(c)
}

// pathID parses a UUID path parameter
func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// bindOptionalJSON binds a JSON body into req, treating an absent body as
// the zero value. Used on action endpoints whose body is entirely optional.
func bindOptionalJSON(c *gin.Context, req any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(req)
}

// bindFilter binds common list query parameters into a shared filter
func bindFilter(c *gin.Context) (shared.Filter, error) {
	var req struct {
		Page     int    `form:"page" binding:"omitempty,min=1"`
		PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
		OrderBy  string `form:"order_by"`
		OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
		Search   string `form:"search"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter, nil
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeBadRequest, message, middleware.GetRequestID(c)))
}

// BindError sends a 400 response for a request binding failure, with
// per-field details when the failure came from validation tags
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, middleware.FormatValidationErrors(err, middleware.GetRequestID(c)))
		return
	}
	h.BadRequest(c, err.Error())
}

// MissingCompany rejects a request that reached a handler without a
// company scope
func (h *BaseHandler) MissingCompany(c *gin.Context) {
	h.BadRequest(c, "Missing company scope")
}

// HandleError converts a domain error to its HTTP response. Errors that
// are not domain errors surface as 500 without leaking details.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID))
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal, "An unexpected error occurred", requestID))
}

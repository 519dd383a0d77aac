package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/shared"
	"github.com/lumiso/backend/internal/infrastructure/logger"
	"github.com/lumiso/backend/internal/interfaces/http/dto"
	"github.com/lumiso/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// codedError is implemented by infrastructure errors that carry their own code
type codedError interface {
	ErrorCode() string
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// BindError answers a request whose body or query failed to bind
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleError converts an error to an HTTP response. Domain errors keep their
// code; retryable failures become 503 so clients know to try again.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	h.respondError(c, err, shared.Classify(err))
}

// HandleResultError answers a failed shared.Result using its recorded kind
func (h *BaseHandler) HandleResultError(c *gin.Context, err error, kind shared.ErrorKind) {
	h.respondError(c, err, kind)
}

func (h *BaseHandler) respondError(c *gin.Context, err error, kind shared.ErrorKind) {
	if err == nil {
		return
	}
	requestID := middleware.GetRequestID(c)
	_ = c.Error(err)

	if domainErr, ok := shared.AsDomainError(err); ok && !errors.Is(err, shared.ErrUnavailable) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	if kind == shared.KindRetryable {
		logger.L(c.Request.Context()).Warn("Retryable failure", zap.Error(err))
		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeUnavailable, "Service temporarily unavailable, please retry", requestID)
		resp.Error.Retryable = true
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	var coded codedError
	if errors.As(err, &coded) {
		code := coded.ErrorCode()
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, err.Error(), requestID))
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}

// tenantID returns the studio resolved by middleware.StudioContext, answering
// 400 when it is missing
func (h *BaseHandler) tenantID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetTenantID(c)
	if !ok {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeTenantRequired, "X-Tenant-ID header is required")
	}
	return id, ok
}

// userID returns the acting user, answering 400 when the request did not name one
func (h *BaseHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeUserRequired, "X-User-ID header is required")
	}
	return id, ok
}

// pathID parses a UUID path parameter, answering 400 when it is malformed
func (h *BaseHandler) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid "+name+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/interfaces/http/dto"
)

// Studio context keys and headers
const (
	TenantIDKey    = "tenant_id"
	UserIDKey      = "user_id"
	TenantIDHeader = "X-Tenant-ID"
	UserIDHeader   = "X-User-ID"
)

// StudioConfig holds configuration for the studio context middleware
type StudioConfig struct {
	// DefaultTenantID serves requests without X-Tenant-ID; uuid.Nil makes the header mandatory
	DefaultTenantID uuid.UUID
	// SkipPaths don't need a studio (health checks)
	SkipPaths []string
}

// StudioContext resolves the studio (tenant) and the optional acting user of a
// request from headers and stores them in the gin context
func StudioContext(cfg StudioConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip || strings.HasPrefix(path, skip+"/") {
				c.Next()
				return
			}
		}

		tenantID := cfg.DefaultTenantID
		if raw := c.GetHeader(TenantIDHeader); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				abortStudio(c, dto.ErrCodeTenantRequired, "X-Tenant-ID must be a UUID")
				return
			}
			tenantID = parsed
		}
		if tenantID == uuid.Nil {
			abortStudio(c, dto.ErrCodeTenantRequired, "X-Tenant-ID header is required")
			return
		}
		c.Set(TenantIDKey, tenantID)

		if raw := c.GetHeader(UserIDHeader); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				abortStudio(c, dto.ErrCodeUserRequired, "X-User-ID must be a UUID")
				return
			}
			c.Set(UserIDKey, userID)
		}

		c.Next()
	}
}

func abortStudio(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetTenantID returns the studio resolved by StudioContext
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(TenantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// GetUserID returns the acting user, when the request named one
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

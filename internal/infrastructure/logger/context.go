package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey int

const (
	loggerKey contextKey = iota
	requestIDKey
	tenantIDKey
	userIDKey
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the attached logger, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}

// RequestScope identifies who a request runs for; empty values are omitted
type RequestScope struct {
	RequestID string
	TenantID  string
	UserID    string
}

// WithScope stores the scope in ctx and attaches a logger carrying its fields
func WithScope(ctx context.Context, base *zap.Logger, scope RequestScope) context.Context {
	fields := make([]zap.Field, 0, 3)
	if scope.RequestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, scope.RequestID)
		fields = append(fields, zap.String("request_id", scope.RequestID))
	}
	if scope.TenantID != "" {
		ctx = context.WithValue(ctx, tenantIDKey, scope.TenantID)
		fields = append(fields, zap.String("tenant_id", scope.TenantID))
	}
	if scope.UserID != "" {
		ctx = context.WithValue(ctx, userIDKey, scope.UserID)
		fields = append(fields, zap.String("user_id", scope.UserID))
	}
	return WithContext(ctx, base.With(fields...))
}

// ScopeFromContext returns the scope stored by WithScope
func ScopeFromContext(ctx context.Context) RequestScope {
	var s RequestScope
	s.RequestID, _ = ctx.Value(requestIDKey).(string)
	s.TenantID, _ = ctx.Value(tenantIDKey).(string)
	s.UserID, _ = ctx.Value(userIDKey).(string)
	return s
}

// L returns the context logger with trace_id and span_id of the active span.
// Usage: logger.L(ctx).Info("lead created", zap.String("lead_id", id))
func L(ctx context.Context) *zap.Logger {
	l := FromContext(ctx)
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return l
	}
	return l.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())

	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))
	assert.False(t, p.LogCore(zapcore.InfoLevel).Enabled(zapcore.ErrorLevel))
}

func TestStudioMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewStudioMetrics(mp.Meter("test"))
	require.NoError(t, err)

	tenantID := uuid.New()
	ctx := context.Background()
	m.LeadCreated(ctx, tenantID)
	m.LeadCreated(ctx, tenantID)
	m.LeadClosed(ctx, tenantID)
	m.InactiveLeads(ctx, tenantID, 4)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	values := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			switch data := metric.Data.(type) {
			case metricdata.Sum[int64]:
				values[metric.Name] = data.DataPoints[0].Value
			case metricdata.Gauge[int64]:
				values[metric.Name] = data.DataPoints[0].Value
			}
		}
	}
	assert.Equal(t, int64(2), values["lumiso_lead_created_total"])
	assert.Equal(t, int64(1), values["lumiso_lead_closed_total"])
	assert.Equal(t, int64(4), values["lumiso_inactive_leads"])
}

func TestStartServiceSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartServiceSpan(context.Background(), "lead", "create")
	EndSpan(span, errors.New("duplicate"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "lead.create", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestInstrumentGorm(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	assert.NoError(t, InstrumentGorm(db, "lumiso"))
}

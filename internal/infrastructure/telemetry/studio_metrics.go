package telemetry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StudioMetrics holds the business counters of the studio backend
type StudioMetrics struct {
	leadsCreated   metric.Int64Counter
	leadsClosed    metric.Int64Counter
	quotesRendered metric.Int64Counter
	downloadLinks  metric.Int64Counter
	inactiveLeads  metric.Int64Gauge
}

// NewStudioMetrics creates the counters on meter; a nil meter uses the global provider
func NewStudioMetrics(meter metric.Meter) (*StudioMetrics, error) {
	if meter == nil {
		meter = otel.Meter(TracerName)
	}

	var (
		m   StudioMetrics
		err error
	)
	if m.leadsCreated, err = meter.Int64Counter("lumiso_lead_created_total",
		metric.WithDescription("Leads created")); err != nil {
		return nil, fmt.Errorf("create lead created counter: %w", err)
	}
	if m.leadsClosed, err = meter.Int64Counter("lumiso_lead_closed_total",
		metric.WithDescription("Leads moved to a closed status")); err != nil {
		return nil, fmt.Errorf("create lead closed counter: %w", err)
	}
	if m.quotesRendered, err = meter.Int64Counter("lumiso_quote_rendered_total",
		metric.WithDescription("Quote PDFs rendered")); err != nil {
		return nil, fmt.Errorf("create quote counter: %w", err)
	}
	if m.downloadLinks, err = meter.Int64Counter("lumiso_gallery_download_link_total",
		metric.WithDescription("Presigned gallery download links issued")); err != nil {
		return nil, fmt.Errorf("create download counter: %w", err)
	}
	if m.inactiveLeads, err = meter.Int64Gauge("lumiso_inactive_leads",
		metric.WithDescription("Open leads without recent activity, per studio")); err != nil {
		return nil, fmt.Errorf("create inactive gauge: %w", err)
	}
	return &m, nil
}

func tenantAttr(tenantID uuid.UUID) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("tenant_id", tenantID.String()))
}

func (m *StudioMetrics) LeadCreated(ctx context.Context, tenantID uuid.UUID) {
	m.leadsCreated.Add(ctx, 1, tenantAttr(tenantID))
}

func (m *StudioMetrics) LeadClosed(ctx context.Context, tenantID uuid.UUID) {
	m.leadsClosed.Add(ctx, 1, tenantAttr(tenantID))
}

func (m *StudioMetrics) QuoteRendered(ctx context.Context, tenantID uuid.UUID) {
	m.quotesRendered.Add(ctx, 1, tenantAttr(tenantID))
}

func (m *StudioMetrics) DownloadLinkIssued(ctx context.Context, tenantID uuid.UUID) {
	m.downloadLinks.Add(ctx, 1, tenantAttr(tenantID))
}

func (m *StudioMetrics) InactiveLeads(ctx context.Context, tenantID uuid.UUID, count int) {
	m.inactiveLeads.Record(ctx, int64(count), tenantAttr(tenantID))
}

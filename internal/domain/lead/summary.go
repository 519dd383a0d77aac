package lead

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Summary is the pipeline overview of a studio's leads
type Summary struct {
	Total        int       `json:"total"`
	Open         int       `json:"open"`
	Closed       int       `json:"closed"`
	Inactive     int       `json:"inactive"`
	InactiveDays int       `json:"inactive_days"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// Summarize counts open, closed and inactive leads at now
func Summarize(leads []LifecycleSnapshot, inactiveDays int, now time.Time) Summary {
	s := Summary{
		Total:        len(leads),
		InactiveDays: inactiveDays,
		Inactive:     CountInactiveLeads(leads, inactiveDays, now),
		GeneratedAt:  now,
	}
	for _, l := range leads {
		if IsClosedForLifecycle(l) {
			s.Closed++
		}
	}
	s.Open = s.Total - s.Closed
	return s
}

// SummaryCache stores computed summaries per tenant.
// A miss is reported as (nil, nil).
type SummaryCache interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*Summary, error)
	Set(ctx context.Context, tenantID uuid.UUID, summary Summary, ttl time.Duration) error
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

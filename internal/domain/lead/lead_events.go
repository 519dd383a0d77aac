package lead

import (
	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeLead = "Lead"

// Event type constants
const (
	EventTypeLeadCreated       = "LeadCreated"
	EventTypeLeadStatusChanged = "LeadStatusChanged"
)

// LeadCreatedEvent is published when a new lead is created
type LeadCreatedEvent struct {
	shared.BaseDomainEvent
	LeadID uuid.UUID `json:"lead_id"`
	Name   string    `json:"name"`
}

// NewLeadCreatedEvent creates a new LeadCreatedEvent
func NewLeadCreatedEvent(l *Lead) *LeadCreatedEvent {
	return &LeadCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadCreated, AggregateTypeLead, l.ID, l.TenantID),
		LeadID:          l.ID,
		Name:            l.Name,
	}
}

// LeadStatusChangedEvent is published when a lead moves between statuses
type LeadStatusChangedEvent struct {
	shared.BaseDomainEvent
	LeadID    uuid.UUID `json:"lead_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Closed    bool      `json:"closed"`
	// Closing is set when an open lead reaches a closed status
	Closing bool `json:"closing"`
	// Reopened is set when a closed lead returns to an open status
	Reopened bool `json:"reopened"`
}

// NewLeadStatusChangedEvent creates a new LeadStatusChangedEvent
func NewLeadStatusChangedEvent(l *Lead, oldStatus string, wasClosed bool) *LeadStatusChangedEvent {
	closed := l.IsClosed()
	return &LeadStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadStatusChanged, AggregateTypeLead, l.ID, l.TenantID),
		LeadID:          l.ID,
		OldStatus:       oldStatus,
		NewStatus:       l.StatusName(),
		Closed:          closed,
		Closing:         !wasClosed && closed,
		Reopened:        wasClosed && !closed,
	}
}

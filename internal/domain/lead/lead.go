package lead

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/shared"
)

// Lead is a prospective client in the studio pipeline.
// It is the aggregate root for lead-related operations.
type Lead struct {
	shared.TenantAggregateRoot
	Name     string
	Email    string
	Phone    string
	Notes    string
	Status   string // raw status text, kept for leads imported without a structured status
	StatusID *uuid.UUID

	// LeadStatus is the resolved structured status; nil when StatusID is unset or not loaded
	LeadStatus *LeadStatus
}

// NewLead creates a new lead with required fields
func NewLead(tenantID uuid.UUID, name string) (*Lead, error) {
	name = strings.TrimSpace(name)
	if err := validateLeadName(name); err != nil {
		return nil, err
	}

	l := &Lead{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
	}
	l.AddDomainEvent(NewLeadCreatedEvent(l))

	return l, nil
}

// Update updates the lead's contact details
func (l *Lead) Update(name, email, phone, notes string) error {
	name = strings.TrimSpace(name)
	if err := validateLeadName(name); err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
		}
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	l.Name = name
	l.Email = email
	l.Phone = strings.TrimSpace(phone)
	l.Notes = notes
	l.Touch()
	l.IncrementVersion()

	return nil
}

// SetRawStatus sets free-text status for leads without a structured status
func (l *Lead) SetRawStatus(status string) {
	l.Status = strings.TrimSpace(status)
	l.Touch()
}

// ChangeStatus moves the lead to a structured status
func (l *Lead) ChangeStatus(status *LeadStatus) error {
	if status == nil {
		return shared.NewDomainError("INVALID_STATUS", "Status cannot be empty")
	}
	if status.TenantID != l.TenantID {
		return shared.NewDomainError("INVALID_STATUS", "Status belongs to another studio")
	}
	if l.StatusID != nil && *l.StatusID == status.ID {
		return shared.NewDomainError("INVALID_STATE", "Lead already has this status")
	}

	oldStatus := l.StatusName()
	wasClosed := l.IsClosed()

	id := status.ID
	l.StatusID = &id
	l.LeadStatus = status
	l.Status = status.Name
	l.Touch()
	l.IncrementVersion()

	l.AddDomainEvent(NewLeadStatusChangedEvent(l, oldStatus, wasClosed))

	return nil
}

// StatusName returns the structured status name, or the raw status text
func (l *Lead) StatusName() string {
	if l.LeadStatus != nil && l.LeadStatus.Name != "" {
		return l.LeadStatus.Name
	}
	return l.Status
}

// Initials returns the avatar initials for the lead
func (l *Lead) Initials() string {
	return ComputeInitials(l.Name)
}

// Snapshot returns the lifecycle view of the lead
func (l *Lead) Snapshot() LifecycleSnapshot {
	s := LifecycleSnapshot{
		Status:    l.Status,
		UpdatedAt: l.UpdatedAt,
		CreatedAt: l.CreatedAt,
	}
	if l.LeadStatus != nil {
		s.StatusInfo = &StatusInfo{
			Name:          l.LeadStatus.Name,
			IsSystemFinal: l.LeadStatus.IsSystemFinal,
		}
	}
	return s
}

// IsClosed reports whether the lead has left the pipeline
func (l *Lead) IsClosed() bool {
	return IsClosedForLifecycle(l.Snapshot())
}

// IsInactive reports whether an open lead has been idle for inactiveDays at now
func (l *Lead) IsInactive(inactiveDays int, now time.Time) bool {
	return CountInactiveLeads([]LifecycleSnapshot{l.Snapshot()}, inactiveDays, now) == 1
}

func validateLeadName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Lead name cannot be empty")
	}
	if len([]rune(name)) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Lead name cannot exceed 200 characters")
	}
	return nil
}

package lead

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/shared"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// LeadStatus is a studio-defined pipeline stage
type LeadStatus struct {
	shared.BaseEntity
	TenantID      uuid.UUID
	Name          string
	Color         string
	SortOrder     int
	IsSystemFinal bool // terminal stage, the lead is closed regardless of its name
	IsDefault     bool
}

// NewLeadStatus creates a new lead status
func NewLeadStatus(tenantID uuid.UUID, name, color string, sortOrder int) (*LeadStatus, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Status name cannot be empty")
	}
	if len([]rune(name)) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Status name cannot exceed 100 characters")
	}
	if color == "" {
		color = "#A0AEC0"
	}
	if !hexColorPattern.MatchString(color) {
		return nil, shared.NewDomainError("INVALID_COLOR", "Color must be a hex value like #1A2B3C")
	}

	return &LeadStatus{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Name:       name,
		Color:      color,
		SortOrder:  sortOrder,
	}, nil
}

// MarkFinal flags the status as a terminal pipeline stage
func (s *LeadStatus) MarkFinal() {
	s.IsSystemFinal = true
	s.Touch()
}

// DefaultStatuses returns the pipeline every new studio starts with
func DefaultStatuses(tenantID uuid.UUID) []*LeadStatus {
	defs := []struct {
		name  string
		color string
		final bool
	}{
		{"New", "#3182CE", false},
		{"Contacted", "#D69E2E", false},
		{"Booked", "#38A169", true},
		{"Lost", "#E53E3E", true},
	}

	statuses := make([]*LeadStatus, 0, len(defs))
	for i, d := range defs {
		s, _ := NewLeadStatus(tenantID, d.name, d.color, i)
		s.IsSystemFinal = d.final
		s.IsDefault = i == 0
		statuses = append(statuses, s)
	}
	return statuses
}

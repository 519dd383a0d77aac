package lead

import (
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/lead"
)

// CreateLeadRequest represents a request to create a lead
type CreateLeadRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=200"`
	Email    string     `json:"email" binding:"omitempty,email,max=200"`
	Phone    string     `json:"phone" binding:"omitempty,max=50"`
	Notes    string     `json:"notes" binding:"omitempty,max=5000"`
	StatusID *uuid.UUID `json:"status_id"`
	// Status is free text for leads imported without a structured status
	Status string `json:"status" binding:"omitempty,max=100"`
}

// UpdateLeadRequest represents a request to update a lead's contact details
type UpdateLeadRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
	Phone string `json:"phone" binding:"omitempty,max=50"`
	Notes string `json:"notes" binding:"omitempty,max=5000"`
}

// ChangeStatusRequest moves a lead to another pipeline status
type ChangeStatusRequest struct {
	StatusID uuid.UUID `json:"status_id" binding:"required"`
}

// LeadListFilter represents filter options for the lead list
type LeadListFilter struct {
	Search   string `form:"search"`
	StatusID string `form:"status_id" binding:"omitempty,uuid"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Initials    string     `json:"initials"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Status      string     `json:"status"`
	StatusID    *uuid.UUID `json:"status_id,omitempty"`
	StatusColor string     `json:"status_color,omitempty"`
	IsClosed    bool       `json:"is_closed"`
	IsInactive  bool       `json:"is_inactive"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// ToLeadResponse converts a domain Lead; inactivity is judged at now
func ToLeadResponse(l *lead.Lead, inactiveDays int, now time.Time) LeadResponse {
	resp := LeadResponse{
		ID:         l.ID,
		Name:       l.Name,
		Initials:   l.Initials(),
		Email:      l.Email,
		Phone:      l.Phone,
		Notes:      l.Notes,
		Status:     l.StatusName(),
		StatusID:   l.StatusID,
		IsClosed:   l.IsClosed(),
		IsInactive: l.IsInactive(inactiveDays, now),
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
		Version:    l.Version,
	}
	if l.LeadStatus != nil {
		resp.StatusColor = l.LeadStatus.Color
	}
	return resp
}

// CreateLeadStatusRequest represents a request to add a pipeline status
type CreateLeadStatusRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Color     string `json:"color" binding:"omitempty,hexcolor"`
	SortOrder int    `json:"sort_order" binding:"min=0"`
	IsFinal   bool   `json:"is_final"`
}

// LeadStatusResponse represents a pipeline status in API responses
type LeadStatusResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Color         string    `json:"color"`
	SortOrder     int       `json:"sort_order"`
	IsSystemFinal bool      `json:"is_system_final"`
	IsDefault     bool      `json:"is_default"`
}

// ToLeadStatusResponse converts a domain LeadStatus
func ToLeadStatusResponse(s *lead.LeadStatus) LeadStatusResponse {
	return LeadStatusResponse{
		ID:            s.ID,
		Name:          s.Name,
		Color:         s.Color,
		SortOrder:     s.SortOrder,
		IsSystemFinal: s.IsSystemFinal,
		IsDefault:     s.IsDefault,
	}
}

// ToLeadStatusResponses converts a slice of statuses
func ToLeadStatusResponses(statuses []lead.LeadStatus) []LeadStatusResponse {
	out := make([]LeadStatusResponse, len(statuses))
	for i := range statuses {
		out[i] = ToLeadStatusResponse(&statuses[i])
	}
	return out
}

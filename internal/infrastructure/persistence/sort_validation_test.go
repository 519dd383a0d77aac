package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name         string
		orderBy      string
		orderDir     string
		fields       map[string]bool
		defaultField string
		want         string
	}{
		{"lead default", "", "", LeadSortFields, "created_at", "created_at DESC"},
		{"lead by name ascending", "name", "asc", LeadSortFields, "created_at", "name ASC"},
		{"lead status padded", "  status ", " ASC ", LeadSortFields, "created_at", "status ASC"},
		{"lead unknown column", "unit_price", "asc", LeadSortFields, "created_at", "created_at ASC"},
		{"service price", "unit_price", "desc", ServiceSortFields, "name", "unit_price DESC"},
		{"service default", "", "", ServiceSortFields, "name", "name DESC"},
		{"column names are case sensitive", "NAME", "asc", ServiceSortFields, "name", "name ASC"},
		{"injected column", "name; DROP TABLE leads;--", "asc", LeadSortFields, "created_at", "created_at ASC"},
		{"injected direction", "email", "ASC; DROP TABLE leads;--", LeadSortFields, "created_at", "email DESC"},
		{"quoted column", "name'--", "", ServiceSortFields, "name", "name DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderClause(tt.orderBy, tt.orderDir, tt.fields, tt.defaultField))
		})
	}
}

func TestSortFieldWhitelists(t *testing.T) {
	for _, field := range []string{"name", "email", "status", "created_at"} {
		assert.True(t, LeadSortFields[field], field)
	}
	for _, field := range []string{"name", "category", "unit_price", "vat_rate"} {
		assert.True(t, ServiceSortFields[field], field)
	}
	assert.False(t, LeadSortFields["notes"])
	assert.False(t, ServiceSortFields["tenant_id"])
}

package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	leadapp "github.com/lumiso/backend/internal/application/lead"
	"github.com/lumiso/backend/internal/domain/lead"
	"github.com/lumiso/backend/internal/interfaces/http/dto"
	"github.com/lumiso/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadHandler_Lifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/lead-statuses/seed", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var statuses []leadapp.LeadStatusResponse
	data(t, w, &statuses)
	require.Len(t, statuses, 4)
	booked := statuses[2]
	require.Equal(t, "Booked", booked.Name)

	w = env.do(t, http.MethodPost, "/api/v1/leads", leadapp.CreateLeadRequest{
		Name:  "ayşe yılmaz",
		Email: "ayse@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created leadapp.LeadResponse
	data(t, w, &created)
	assert.Equal(t, "AY", created.Initials)
	assert.False(t, created.IsClosed)

	w = env.do(t, http.MethodPut, "/api/v1/leads/"+created.ID.String()+"/status", leadapp.ChangeStatusRequest{StatusID: booked.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var changed leadapp.LeadResponse
	data(t, w, &changed)
	assert.Equal(t, "Booked", changed.Status)
	assert.True(t, changed.IsClosed)

	w = env.do(t, http.MethodGet, "/api/v1/leads?page=1&page_size=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.PageSize)

	w = env.do(t, http.MethodGet, "/api/v1/leads/stats/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary lead.Summary
	data(t, w, &summary)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Closed)
	assert.Equal(t, lead.DefaultInactiveDays, summary.InactiveDays)

	w = env.do(t, http.MethodDelete, "/api/v1/leads/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/leads/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, errorCode(t, w))
}

func TestLeadHandler_Errors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"missing name", http.MethodPost, "/api/v1/leads", map[string]any{"email": "a@b.co"}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"malformed json", http.MethodPost, "/api/v1/leads", "{", http.StatusBadRequest, dto.ErrCodeInvalidJSON},
		{"bad path id", http.MethodGet, "/api/v1/leads/not-a-uuid", nil, http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"unknown status", http.MethodPost, "/api/v1/leads", leadapp.CreateLeadRequest{Name: "X", StatusID: ptr(uuid.New())}, http.StatusNotFound, dto.ErrCodeNotFound},
		{"inactive_days below range", http.MethodGet, "/api/v1/leads/stats/summary?inactive_days=0", nil, http.StatusBadRequest, dto.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestLeadHandler_SummaryOverride(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/v1/leads", leadapp.CreateLeadRequest{Name: "Fresh"}).Code)

	w := env.do(t, http.MethodGet, "/api/v1/leads/stats/summary?inactive_days=30", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var summary lead.Summary
	data(t, w, &summary)
	assert.Equal(t, 30, summary.InactiveDays)
	assert.Equal(t, 1, summary.Open)
	assert.Zero(t, summary.Inactive)
}

func TestLeadHandler_Initials(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"two words", "/api/v1/leads/initials?name=Jane+Doe", "JD"},
		{"blank uses fallback", "/api/v1/leads/initials?name=+&fallback=%3F", "?"},
		{"max limits letters", "/api/v1/leads/initials?name=Anna+Maria+Lopez&max=2", "AM"},
		{"max omitted keeps three", "/api/v1/leads/initials?name=Anna+Maria+Lopez+Diaz", "AML"},
		{"zero max uses fallback", "/api/v1/leads/initials?name=Anna+Maria&max=0", "??"},
		{"negative max uses fallback", "/api/v1/leads/initials?name=Anna+Maria&max=-1&fallback=NA", "NA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, tt.target, nil)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var resp InitialsResponse
			data(t, w, &resp)
			assert.Equal(t, tt.want, resp.Initials)
		})
	}
}

func TestLeadHandler_TenantRequired(t *testing.T) {
	h := NewLeadHandler(nil, nil)
	c, w := newTestContext(http.MethodGet, "/api/v1/leads")

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeTenantRequired, errorCode(t, w))
	_, ok := middleware.GetTenantID(c)
	assert.False(t, ok)
}

func ptr[T any](v T) *T { return &v }

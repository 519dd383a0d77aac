package lead

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLead(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates lead successfully", func(t *testing.T) {
		l, err := NewLead(tenantID, "  Jane Doe ")

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", l.Name)
		assert.Equal(t, tenantID, l.TenantID)
		assert.Equal(t, 1, l.GetVersion())
		require.Len(t, l.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeLeadCreated, l.GetDomainEvents()[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		l, err := NewLead(tenantID, "   ")

		assert.Error(t, err)
		assert.Nil(t, l)
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}

func TestLead_Update(t *testing.T) {
	l, err := NewLead(uuid.New(), "Jane Doe")
	require.NoError(t, err)

	t.Run("updates contact details", func(t *testing.T) {
		err := l.Update("Jane Smith", "jane@example.com", " +90 555 000 ", "prefers mornings")

		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", l.Name)
		assert.Equal(t, "+90 555 000", l.Phone)
		assert.Equal(t, 2, l.GetVersion())
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		err := l.Update("Jane Smith", "not-an-email", "", "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Email")
	})
}

func TestLead_ChangeStatus(t *testing.T) {
	tenantID := uuid.New()
	statuses := DefaultStatuses(tenantID)
	newStatus, booked := statuses[0], statuses[2]

	t.Run("moves to final status and closes", func(t *testing.T) {
		l, _ := NewLead(tenantID, "Jane Doe")
		l.ClearDomainEvents()

		require.NoError(t, l.ChangeStatus(booked))

		assert.True(t, l.IsClosed())
		assert.Equal(t, "Booked", l.StatusName())
		require.Len(t, l.GetDomainEvents(), 1)
		evt := l.GetDomainEvents()[0].(*LeadStatusChangedEvent)
		assert.True(t, evt.Closed)
		assert.True(t, evt.Closing)
		assert.False(t, evt.Reopened)
	})

	t.Run("reopening is recorded", func(t *testing.T) {
		l, _ := NewLead(tenantID, "Jane Doe")
		require.NoError(t, l.ChangeStatus(booked))
		l.ClearDomainEvents()

		require.NoError(t, l.ChangeStatus(newStatus))

		evt := l.GetDomainEvents()[0].(*LeadStatusChangedEvent)
		assert.Equal(t, "Booked", evt.OldStatus)
		assert.True(t, evt.Reopened)
		assert.False(t, evt.Closing)
		assert.False(t, l.IsClosed())
	})

	t.Run("rejects same status", func(t *testing.T) {
		l, _ := NewLead(tenantID, "Jane Doe")
		require.NoError(t, l.ChangeStatus(newStatus))

		err := l.ChangeStatus(newStatus)
		assert.Error(t, err)
	})

	t.Run("rejects status of another tenant", func(t *testing.T) {
		l, _ := NewLead(tenantID, "Jane Doe")

		err := l.ChangeStatus(DefaultStatuses(uuid.New())[0])
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "another studio")
	})
}

func TestLead_InitialsAndInactivity(t *testing.T) {
	l, _ := NewLead(uuid.New(), "Ahmet ve Mehmet")
	assert.Equal(t, "AM", l.Initials())

	now := time.Now()
	l.UpdatedAt = now.Add(-20 * 24 * time.Hour)
	assert.True(t, l.IsInactive(14, now))
	assert.False(t, l.IsInactive(30, now))
}

func TestDefaultStatuses(t *testing.T) {
	statuses := DefaultStatuses(uuid.New())

	require.Len(t, statuses, 4)
	assert.True(t, statuses[0].IsDefault)
	assert.False(t, statuses[1].IsSystemFinal)
	assert.True(t, statuses[2].IsSystemFinal)
	assert.True(t, statuses[3].IsSystemFinal)
}

func TestNewLeadStatus(t *testing.T) {
	t.Run("defaults color", func(t *testing.T) {
		s, err := NewLeadStatus(uuid.New(), "Proposal sent", "", 2)
		require.NoError(t, err)
		assert.Equal(t, "#A0AEC0", s.Color)
	})

	t.Run("rejects bad color", func(t *testing.T) {
		_, err := NewLeadStatus(uuid.New(), "Proposal sent", "red", 2)
		assert.Error(t, err)
	})
}

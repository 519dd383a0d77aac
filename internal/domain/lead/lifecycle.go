package lead

import (
	"strings"
	"time"
)

// DefaultInactiveDays is the idle period after which an open lead counts as inactive
const DefaultInactiveDays = 14

var (
	lostKeywords      = []string{"lost", "cancel", "cancelled", "canceled", "rejected", "declined", "kayb", "iptal"}
	convertedKeywords = []string{"booked", "completed", "won", "converted", "signed"}
	closedKeywords    = []string{"closed", "finished", "archived", "done"}
)

// StatusInfo is the structured status attached to a lead, when known
type StatusInfo struct {
	Name          string
	IsSystemFinal bool
}

// LifecycleSnapshot is the subset of a lead needed to classify it.
// Zero timestamps mean the value is unknown.
type LifecycleSnapshot struct {
	Status     string
	StatusInfo *StatusInfo
	UpdatedAt  time.Time
	CreatedAt  time.Time
}

// resolvedStatusName prefers the structured status name over the raw status text
func (s LifecycleSnapshot) resolvedStatusName() string {
	if s.StatusInfo != nil && strings.TrimSpace(s.StatusInfo.Name) != "" {
		return strings.ToLower(s.StatusInfo.Name)
	}
	return strings.ToLower(s.Status)
}

// LastActivity returns UpdatedAt, falling back to CreatedAt
func (s LifecycleSnapshot) LastActivity() (time.Time, bool) {
	if !s.UpdatedAt.IsZero() {
		return s.UpdatedAt, true
	}
	if !s.CreatedAt.IsZero() {
		return s.CreatedAt, true
	}
	return time.Time{}, false
}

// IsClosedForLifecycle reports whether a lead left the pipeline, either lost or converted.
// Keywords match as case-insensitive substrings, so "Not completed yet" is also closed.
func IsClosedForLifecycle(s LifecycleSnapshot) bool {
	if s.StatusInfo != nil && s.StatusInfo.IsSystemFinal {
		return true
	}

	name := s.resolvedStatusName()
	if name == "" {
		return false
	}

	return containsAny(name, lostKeywords) ||
		containsAny(name, convertedKeywords) ||
		containsAny(name, closedKeywords) ||
		strings.Contains(name, "completed")
}

// CountInactiveLeads counts open leads whose last activity is at least
// inactiveDays old at now. inactiveDays <= 0 uses DefaultInactiveDays.
func CountInactiveLeads(leads []LifecycleSnapshot, inactiveDays int, now time.Time) int {
	if inactiveDays <= 0 {
		inactiveDays = DefaultInactiveDays
	}
	threshold := now.Add(-time.Duration(inactiveDays) * 24 * time.Hour)

	count := 0
	for _, l := range leads {
		if IsClosedForLifecycle(l) {
			continue
		}
		last, ok := l.LastActivity()
		if !ok {
			continue
		}
		if !last.After(threshold) {
			count++
		}
	}
	return count
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

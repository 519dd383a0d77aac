package calendar

import (
	"fmt"
	"time"
)

const (
	MinutesPerDay      = 24 * 60
	MinSpanMinutes     = 6 * 60
	DefaultStartMinute = 9 * 60
)

// TimeRange is a time-of-day window in minutes since midnight
type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Span returns the window length in minutes
func (r TimeRange) Span() int {
	return r.End - r.Start
}

// Label renders the window as "9:00 AM - 3:00 PM"
func (r TimeRange) Label() string {
	return fmt.Sprintf("%s - %s", minuteLabel(r.Start), minuteLabel(r.End))
}

// Contains reports whether minute falls inside [Start, End)
func (r TimeRange) Contains(minute int) bool {
	return minute >= r.Start && minute < r.End
}

// ClampRange normalises a requested viewing window into the day.
// Inverted or empty windows become the default 9:00 window and windows shorter
// than MinSpanMinutes grow around their midpoint, shifting inward at the day edges.
func ClampRange(start, end int) TimeRange {
	s := clampMinute(start)
	e := clampMinute(end)

	if e <= s {
		s = DefaultStartMinute
		e = DefaultStartMinute + MinSpanMinutes
	}

	if e-s < MinSpanMinutes {
		mid := (s + e) / 2
		s = mid - MinSpanMinutes/2
		e = s + MinSpanMinutes

		if e > MinutesPerDay {
			e = MinutesPerDay
			s = max(0, e-MinSpanMinutes)
		}
		if s < 0 {
			s = 0
			e = min(MinutesPerDay, MinSpanMinutes)
		}
	}

	return TimeRange{Start: s, End: e}
}

func clampMinute(v int) int {
	return min(max(v, 0), MinutesPerDay)
}

func minuteLabel(minute int) string {
	t := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(minute) * time.Minute)
	return t.Format("3:04 PM")
}

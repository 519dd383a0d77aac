package calendar

import "time"

// DefaultWindowPadding is added around the busiest hours of a week preview
const DefaultWindowPadding = 60

// WeekStart returns the Monday of the week containing t
func WeekStart(t time.Time) time.Time {
	d := DateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekBounds returns [monday, next monday) for the week containing t
func WeekBounds(t time.Time) (time.Time, time.Time) {
	from := WeekStart(t)
	return from, from.AddDate(0, 0, 7)
}

// WeekWindow derives the viewing window of a week preview from its sessions.
// Cancelled sessions are ignored; an empty week gets the default window.
func WeekWindow(sessions []Session, padding int) TimeRange {
	if padding < 0 {
		padding = 0
	}

	start, end := 0, 0
	found := false
	for _, s := range sessions {
		if s.Status == SessionStatusCancelled {
			continue
		}
		if !found || s.StartMinute < start {
			start = s.StartMinute
		}
		if !found || s.EndMinute() > end {
			end = s.EndMinute()
		}
		found = true
	}
	if !found {
		return ClampRange(0, 0)
	}

	return ClampRange(start-padding, end+padding)
}

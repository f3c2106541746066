// Package timeutil formats timestamps and durations for thread captions.
package timeutil

import (
	"fmt"
	"time"
)

// Clock formats a message timestamp for the bottom caption.
func Clock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}

// DayLabel formats the day of a message for a system separator row: Today,
// Yesterday, the weekday for recent days, otherwise the date.
func DayLabel(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	day := func(x time.Time) time.Time {
		y, m, d := x.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, x.Location())
	}
	days := int(day(now).Sub(day(t)).Hours() / 24)

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return t.Format("Monday")
	case t.Year() == now.Year():
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// AudioDuration formats a voice message duration as m:ss. Negative durations
// read as zero.
func AudioDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

package timetricks

import (
	"fmt"
	"time"
)

const (
	dayFormat  = "20060102"
	timeFormat = "3:04 PM"
)

func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}

func TrimClock(t time.Time) time.Time {
	h, m, s := t.Clock()
	return t.Add(-1 *
		(time.Duration(h)*time.Hour +
			time.Duration(m)*time.Minute +
			time.Duration(s)*time.Second))
}

func SetClock(t time.Time, hour, minute time.Duration) time.Time {
	return TrimClock(t).Add(hour*time.Hour + minute*time.Minute)
}

// Clock formats just the wall clock of t, e.g. "4:27 PM".
func Clock(t time.Time) string {
	return t.Format(timeFormat)
}

// Countdown renders the span between two instants the way a countdown UI
// would: "12m", "2h 05m", or "3d 4h". Sub-minute spans round down to "0m";
// a target at or before from is "now".
func Countdown(from, to time.Time) string {
	d := to.Sub(from)
	if d <= 0 {
		return "now"
	}
	switch {
	case d >= 24*time.Hour:
		days := d / (24 * time.Hour)
		hours := (d % (24 * time.Hour)) / time.Hour
		return fmt.Sprintf("%dd %dh", days, hours)
	case d >= time.Hour:
		return fmt.Sprintf("%dh %02dm", d/time.Hour, (d%time.Hour)/time.Minute)
	default:
		return fmt.Sprintf("%dm", d/time.Minute)
	}
}

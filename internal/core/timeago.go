package core

import (
	"fmt"
	"math"
	"time"
)

// DaysSince returns whole days between date and now, floored. Negative
// for future dates. Both operands use the caller's clock; inject a
// fixed now in tests.
func DaysSince(d Date, now time.Time) int {
	return int(math.Floor(now.Sub(d.Time).Hours() / 24))
}

// DaysUntil is the mirror of DaysSince for future dates.
func DaysUntil(d Date, now time.Time) int {
	return -DaysSince(d, now)
}

// RelativeLabel renders a compact "time ago" string. Boundary values
// belong to the larger unit: day 7 is "1w ago", day 30 is "1mo ago".
func RelativeLabel(d Date, now time.Time) string {
	days := DaysSince(d, now)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case days < 30:
		return fmt.Sprintf("%dw ago", days/7)
	default:
		return fmt.Sprintf("%dmo ago", days/30)
	}
}

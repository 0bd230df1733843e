package util

import (
	"fmt"
	"time"
)

// RelativeTime formats t relative to now, e.g. "3 days ago" or
// "in 2 weeks" for scheduled maintenance.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	suffix := " ago"
	prefix := ""
	if diff < 0 {
		diff = -diff
		suffix = ""
		prefix = "in "
	}

	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%s1 %s%s", prefix, unit, suffix)
		}
		return fmt.Sprintf("%s%d %ss%s", prefix, n, unit, suffix)
	}

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/24/7), "week")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// utils/dates.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// ParseDate accepts either a bare YYYY-MM-DD date or a full RFC 3339
// timestamp, the two formats the UI submits.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if strings.Contains(s, "T") {
		return time.Parse(time.RFC3339, s)
	}
	return time.Parse("2006-01-02", s)
}

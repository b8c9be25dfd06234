package utils

import (
	"fmt"
	"log"
	"time"
)

const DateLayout = "2006-01-02"

// LoadLocation falls back to UTC when the zone database does not know name.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("⚠️ Unknown timezone %q, using UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

// DateIn is the calendar date of t in loc.
func DateIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// MonthIn is the "YYYY-MM" month of t in loc.
func MonthIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01")
}

// LastDays returns the n dates ending with t's date, oldest first.
func LastDays(t time.Time, loc *time.Location, n int) []string {
	local := t.In(loc)
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, local.AddDate(0, 0, -i).Format(DateLayout))
	}
	return out
}

// ValidMonth reports whether s is "YYYY-MM".
func ValidMonth(s string) bool {
	t, err := time.Parse("2006-01", s)
	return err == nil && t.Format("2006-01") == s
}

// GetTimezoneInfo describes the configured zone for bot messages.
func GetTimezoneInfo(now time.Time, loc *time.Location) string {
	local := now.In(loc)
	name, offset := local.Zone()
	return fmt.Sprintf("🕐 %s %s (UTC%+d)", local.Format("15:04"), name, offset/3600)
}

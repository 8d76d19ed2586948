package workout

import (
	"slices"
	"strings"
	"time"
)

// SortTemplates sorts templates by name, case-insensitive, ascending.
func SortTemplates(templates []Template) {
	slices.SortStableFunc(templates, func(a, b Template) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
}

// SortDays sorts workout days by calendar day, most recent first.
// Days falling on the same calendar day (in loc) keep their relative order.
func SortDays(days []Day, loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	slices.SortStableFunc(days, func(a, b Day) int {
		return StartOfDay(b.Date, loc).Compare(StartOfDay(a.Date, loc))
	})
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Package timeline derives the day, week and month windows shown by the
// timeline, relative to a navigable cursor date. The store knows nothing
// about windows; this is presentation logic only.
package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tgienger/moody/internal/models"
)

// View is the timeline granularity
type View string

const (
	Day   View = "day"
	Week  View = "week"
	Month View = "month"
)

// Views returns all views in tab order
func Views() []View {
	return []View{Day, Week, Month}
}

// ParseView parses a view name
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case Day, Week, Month:
		return v, nil
	}
	return "", fmt.Errorf("invalid view %q (want day, week or month)", s)
}

// Label returns the capitalized view name for tabs
func (v View) Label() string {
	if v == "" {
		return ""
	}
	return strings.ToUpper(string(v[:1])) + string(v[1:])
}

// Window is an inclusive time range
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the window, bounds included
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WindowFor returns the window of view v around cursor. Unknown views fall
// back to the 30 days ending with cursor.
func WindowFor(v View, cursor time.Time, weekStart time.Weekday) Window {
	var start, next time.Time
	switch v {
	case Day:
		start = models.StartOfDay(cursor)
		next = start.AddDate(0, 0, 1)
	case Week:
		start = StartOfWeek(cursor, weekStart)
		next = start.AddDate(0, 0, 7)
	case Month:
		start = StartOfMonth(cursor)
		next = start.AddDate(0, 1, 0)
	default:
		start = models.StartOfDay(cursor).AddDate(0, 0, -30)
		next = models.StartOfDay(cursor).AddDate(0, 0, 1)
	}
	return Window{Start: start, End: next.Add(-time.Nanosecond)}
}

// StartOfWeek returns midnight of the first day of t's week
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return models.StartOfDay(t).AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// AddMonths moves t by n months, clamping the day to the target month's
// length (Jan 31 + 1 month is Feb 29 in a leap year, not Mar 2).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := DaysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// DaysIn returns the number of days in t's month
func DaysIn(t time.Time) int {
	return StartOfMonth(t).AddDate(0, 1, -1).Day()
}

// SortNewestFirst returns a copy of entries ordered by date, newest first
func SortNewestFirst(entries []models.MoodEntry) []models.MoodEntry {
	out := make([]models.MoodEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Filter returns the entries inside w, newest first
func Filter(entries []models.MoodEntry, w Window) []models.MoodEntry {
	out := make([]models.MoodEntry, 0)
	for _, e := range SortNewestFirst(entries) {
		if w.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// Previous steps the cursor one period back
func Previous(v View, cursor time.Time) time.Time {
	switch v {
	case Day:
		return cursor.AddDate(0, 0, -1)
	case Week:
		return cursor.AddDate(0, 0, -7)
	case Month:
		return AddMonths(cursor, -1)
	}
	return cursor
}

// Next steps the cursor one period forward. The step is refused, and the
// cursor returned unchanged, when it would land after now.
func Next(v View, cursor, now time.Time) (time.Time, bool) {
	var next time.Time
	switch v {
	case Day:
		next = cursor.AddDate(0, 0, 1)
	case Week:
		next = cursor.AddDate(0, 0, 7)
	case Month:
		next = AddMonths(cursor, 1)
	default:
		return cursor, false
	}
	if next.After(now) {
		return cursor, false
	}
	return next, true
}

// Label describes the period shown for cursor
func Label(v View, cursor time.Time, weekStart time.Weekday) string {
	switch v {
	case Day:
		return cursor.Format("January 2, 2006")
	case Week:
		w := WindowFor(Week, cursor, weekStart)
		return w.Start.Format("Jan 2") + " - " + w.End.Format("Jan 2, 2006")
	case Month:
		return cursor.Format("January 2006")
	}
	return ""
}

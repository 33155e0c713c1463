// Package calendar lays out month grids and associates mood entries with
// calendar cells. Cells and entries meet on models.DayKey, the same identity
// the store uses, so a highlighted cell is exactly a stored entry.
package calendar

import (
	"time"

	"github.com/tgienger/moody/internal/models"
	"github.com/tgienger/moody/internal/timeline"
)

// Week is one row of the month grid
type Week [7]time.Time

// MonthGrid returns the full weeks covering month, starting on weekStart.
// Leading and trailing cells belong to the neighbouring months.
func MonthGrid(month time.Time, weekStart time.Weekday) []Week {
	first := timeline.StartOfMonth(month)
	last := first.AddDate(0, 1, -1)

	var weeks []Week
	for day := timeline.StartOfWeek(first, weekStart); !day.After(last); {
		var w Week
		for i := range w {
			w[i] = day
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, w)
	}
	return weeks
}

// Weekdays returns the column headers in grid order
func Weekdays(weekStart time.Weekday) [7]time.Weekday {
	var out [7]time.Weekday
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % 7)
	}
	return out
}

// IndexByDay maps day-keys to entries. If entries share a day-key the later
// one wins.
func IndexByDay(entries []models.MoodEntry) map[string]models.MoodEntry {
	index := make(map[string]models.MoodEntry, len(entries))
	for _, e := range entries {
		index[e.DayKey()] = e
	}
	return index
}

// SameMonth reports whether a and b fall in the same calendar month
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

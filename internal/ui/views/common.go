package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/tgienger/moody/internal/models"
	"github.com/tgienger/moody/internal/timeline"
	"github.com/tgienger/moody/internal/ui/styles"
)

// MoodStore is the slice of the mood store the views depend on
type MoodStore interface {
	GetAll() []models.MoodEntry
	GetForDate(date time.Time) (models.MoodEntry, bool)
	Save(date time.Time, mood models.Mood, note string) error
	Delete(date time.Time) error
}

// OpenForm asks the app to open the mood form for Date
type OpenForm struct {
	Date time.Time
}

// EntrySaved is sent after the form committed an entry
type EntrySaved struct {
	Date time.Time
	Mood models.Mood
}

// EntryDeleted is sent after an entry was removed from the timeline
type EntryDeleted struct {
	Date time.Time
}

// FormClosed is sent when the form is dismissed without saving
type FormClosed struct{}

// ModeChanged is sent when the timeline switches between day, week and month
type ModeChanged struct {
	Mode timeline.View
}

// ErrMsg carries a failed store operation to the status bar
type ErrMsg struct {
	Err error
}

func (e ErrMsg) Error() string { return e.Err.Error() }

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// sameDay compares calendar days through the shared day-key
func sameDay(a, b time.Time) bool {
	return models.DayKey(a) == models.DayKey(b.In(a.Location()))
}

// helpLine renders "key desc • key desc" pairs
func helpLine(s *styles.Styles, pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, fmt.Sprintf("%s %s", s.HelpKey.Render(pairs[i]), pairs[i+1]))
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

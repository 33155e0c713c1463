package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the canonical day-key format (year-month-day)
const DayLayout = "2006-01-02"

// ErrInvalidMood is returned for a mood outside the closed set
var ErrInvalidMood = errors.New("invalid mood")

// Mood is one of the fixed mood categories
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodNeutral Mood = "neutral"
	MoodExcited Mood = "excited"
	MoodAngry   Mood = "angry"
	MoodTired   Mood = "tired"
	MoodAnxious Mood = "anxious"
)

type moodOption struct {
	mood  Mood
	emoji string
	label string
}

// moodOptions is also the display order of the mood picker
var moodOptions = []moodOption{
	{MoodHappy, "😊", "Happy"},
	{MoodSad, "😢", "Sad"},
	{MoodNeutral, "😐", "Neutral"},
	{MoodExcited, "🤩", "Excited"},
	{MoodAngry, "😡", "Angry"},
	{MoodTired, "😴", "Tired"},
	{MoodAnxious, "😰", "Anxious"},
}

// Moods returns every mood in display order
func Moods() []Mood {
	out := make([]Mood, len(moodOptions))
	for i, o := range moodOptions {
		out[i] = o.mood
	}
	return out
}

// ParseMood parses a mood name, ignoring case and surrounding space
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMood, s)
	}
	return m, nil
}

func (m Mood) option() (moodOption, bool) {
	for _, o := range moodOptions {
		if o.mood == m {
			return o, true
		}
	}
	return moodOption{}, false
}

// Valid reports whether m is part of the closed mood set
func (m Mood) Valid() bool {
	_, ok := m.option()
	return ok
}

// Emoji returns the mood's emoji, or a question mark for unknown values
func (m Mood) Emoji() string {
	if o, ok := m.option(); ok {
		return o.emoji
	}
	return "❓"
}

// Label returns the human readable mood name
func (m Mood) Label() string {
	if o, ok := m.option(); ok {
		return o.label
	}
	return "Unknown"
}

// MoodEntry is a single day's mood record
type MoodEntry struct {
	Date time.Time
	Mood Mood
	Note string
}

// DayKey returns the calendar-day identity of the entry
func (e MoodEntry) DayKey() string {
	return DayKey(e.Date)
}

// DayKey truncates t to its calendar day in t's own location.
// The store, the timeline and the calendar all key days through this function.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a day-key back into midnight of that day in loc
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, strings.TrimSpace(s), loc)
}

// StartOfDay returns midnight of t's day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

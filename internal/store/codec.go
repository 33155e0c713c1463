package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tgienger/moody/internal/models"
)

// wireEntry is the persisted shape of a mood entry
type wireEntry struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
	Note string `json:"note,omitempty"`
}

// Encode serializes entries as a JSON array, preserving order
func Encode(entries []models.MoodEntry) (string, error) {
	wire := make([]wireEntry, len(entries))
	for i, e := range entries {
		wire[i] = wireEntry{
			Date: e.Date.Format(time.RFC3339Nano),
			Mood: string(e.Mood),
			Note: e.Note,
		}
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a JSON array written by Encode. Any malformed record fails the
// whole decode; there is no partial recovery.
func Decode(data string) ([]models.MoodEntry, error) {
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}

	var wire []wireEntry
	if err := json.Unmarshal([]byte(data), &wire); err != nil {
		return nil, fmt.Errorf("decode mood entries: %w", err)
	}

	entries := make([]models.MoodEntry, 0, len(wire))
	for i, w := range wire {
		date, err := time.Parse(time.RFC3339Nano, w.Date)
		if err != nil {
			return nil, fmt.Errorf("decode mood entry %d: %w", i, err)
		}
		entries = append(entries, models.MoodEntry{
			Date: date,
			Mood: models.Mood(w.Mood),
			Note: w.Note,
		})
	}
	return entries, nil
}

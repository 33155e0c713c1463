package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMood(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Mood
		wantErr bool
	}{
		{"lowercase", "happy", MoodHappy, false},
		{"mixed case", "AnXiOuS", MoodAnxious, false},
		{"padded", "  tired ", MoodTired, false},
		{"unknown", "bored", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseMood(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidMood))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMoods_DisplayOrder(t *testing.T) {
	assert.Equal(t, []Mood{
		MoodHappy, MoodSad, MoodNeutral, MoodExcited, MoodAngry, MoodTired, MoodAnxious,
	}, Moods())
}

func TestMood_EmojiAndLabel(t *testing.T) {
	assert.Equal(t, "😴", MoodTired.Emoji())
	assert.Equal(t, "Tired", MoodTired.Label())

	unknown := Mood("bored")
	assert.False(t, unknown.Valid())
	assert.Equal(t, "❓", unknown.Emoji())
	assert.Equal(t, "Unknown", unknown.Label())
}

func TestDayKey_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	night := time.Date(2024, 5, 1, 23, 59, 59, 999, time.UTC)

	assert.Equal(t, "2024-05-01", DayKey(morning))
	assert.Equal(t, DayKey(morning), DayKey(night))
	assert.Equal(t, "2024-05-01", MoodEntry{Date: night}.DayKey())
}

func TestDayKey_UsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*60*60)
	late := time.Date(2024, 5, 1, 22, 0, 0, 0, loc)

	assert.Equal(t, "2024-05-01", DayKey(late))
	assert.Equal(t, "2024-05-02", DayKey(late.UTC()))
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2024-02-29", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDay("2024-13-01", time.UTC)
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, 5, 1, 13, 45, 12, 5, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}

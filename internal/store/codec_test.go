package store

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/moody/internal/models"
)

func TestCodec_RoundTrip(t *testing.T) {
	plus2 := time.FixedZone("CEST", 2*60*60)
	tests := []struct {
		name    string
		entries []models.MoodEntry
	}{
		{"empty", []models.MoodEntry{}},
		{"single without note", []models.MoodEntry{
			{Date: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), Mood: models.MoodHappy},
		}},
		{"many with notes and zones", []models.MoodEntry{
			{Date: time.Date(2024, 5, 3, 22, 15, 0, 123000000, time.UTC), Mood: models.MoodTired, Note: "long day"},
			{Date: time.Date(2024, 5, 1, 7, 0, 0, 0, plus2), Mood: models.MoodAnxious, Note: "exam\nsecond line"},
			{Date: time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), Mood: models.MoodExcited, Note: `"quoted" ✨`},
		}},
	}

	byDate := cmpopts.SortSlices(func(a, b models.MoodEntry) bool { return a.Date.Before(b.Date) })
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := Encode(tc.entries)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.entries, got, byDate, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode_OmitsEmptyNote(t *testing.T) {
	data, err := Encode([]models.MoodEntry{
		{Date: time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC), Mood: models.MoodTired},
	})
	require.NoError(t, err)

	assert.Equal(t, `[{"date":"2024-05-01T22:00:00Z","mood":"tired"}]`, data)
	assert.False(t, strings.Contains(data, "note"))
}

func TestDecode_EmptyInputs(t *testing.T) {
	for _, data := range []string{"", "   ", "null", "[]"} {
		got, err := Decode(data)
		require.NoError(t, err, "data %q", data)
		assert.Empty(t, got)
	}
}

func TestDecode_RejectsMalformedRecord(t *testing.T) {
	_, err := Decode(`[{"date":"2024-05-01T09:00:00Z","mood":"happy"},{"date":"05/02/2024","mood":"sad"}]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1")
}

package listening

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayEvent(t *testing.T) {
	tests := []struct {
		name        string
		playedAt    string
		wantErr     bool
		wantHour    int
		wantWeekday string
		wantDate    string
	}{
		{
			name:        "morning play",
			playedAt:    "2024-03-04T09:15:30Z",
			wantHour:    9,
			wantWeekday: "Monday",
			wantDate:    "2024-03-04",
		},
		{
			name:        "late evening play",
			playedAt:    "2024-03-08T22:45:00Z",
			wantHour:    22,
			wantWeekday: "Friday",
			wantDate:    "2024-03-08",
		},
		{
			name:        "midnight boundary",
			playedAt:    "2024-03-10T00:00:00Z",
			wantHour:    0,
			wantWeekday: "Sunday",
			wantDate:    "2024-03-10",
		},
		{
			name:        "offset timestamp normalized to UTC",
			playedAt:    "2024-03-04T23:30:00-02:00",
			wantHour:    1,
			wantWeekday: "Tuesday",
			wantDate:    "2024-03-05",
		},
		{
			name:     "garbage timestamp",
			playedAt: "yesterday-ish",
			wantErr:  true,
		},
		{
			name:     "empty timestamp",
			playedAt: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := NewPlayEvent("Song", "Artist", tt.playedAt)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedTimestamp))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Song", ev.TrackName)
			assert.Equal(t, "Artist", ev.ArtistName)
			assert.Equal(t, tt.wantHour, ev.Hour)
			assert.Equal(t, tt.wantWeekday, ev.Weekday)
			assert.Equal(t, tt.wantDate, ev.Date)
			assert.Equal(t, time.UTC, ev.PlayedAt.Location())
		})
	}
}

func TestNormalizeHistory_SkipsMalformedRecords(t *testing.T) {
	items := []RawHistoryItem{
		{TrackName: "A", ArtistName: "X", PlayedAt: "2024-03-04T09:00:00Z"},
		{TrackName: "B", ArtistName: "Y", PlayedAt: "not-a-timestamp"},
		{TrackName: "C", ArtistName: "Z", PlayedAt: "2024-03-04T10:00:00Z"},
	}

	events := NormalizeHistory(items)

	require.Len(t, events, 2)
	assert.Equal(t, "A", events[0].TrackName)
	assert.Equal(t, "C", events[1].TrackName)
}

func TestNormalizeHistory_EmptyInput(t *testing.T) {
	assert.Empty(t, NormalizeHistory(nil))
	assert.Empty(t, NormalizeHistory([]RawHistoryItem{}))
}

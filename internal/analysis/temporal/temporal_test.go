package temporal

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonify-dev/sonify/internal/domain/listening"
)

func mustEvent(t *testing.T, playedAt string) listening.PlayEvent {
	t.Helper()
	ev, err := listening.NewPlayEvent("track", "artist", playedAt)
	require.NoError(t, err)
	return ev
}

func TestAggregate_Distribution(t *testing.T) {
	// Mon 09, Mon 09, Fri 22
	events := []listening.PlayEvent{
		mustEvent(t, "2024-03-04T09:10:00Z"),
		mustEvent(t, "2024-03-04T09:50:00Z"),
		mustEvent(t, "2024-03-08T22:05:00Z"),
	}

	dist, heatmap, report := Aggregate(events)

	assert.Equal(t, map[int]int{9: 2, 22: 1}, dist.ByHour)
	assert.Equal(t, map[string]int{"Monday": 2, "Friday": 1}, dist.ByDay)
	assert.Equal(t, 9, report.MostActiveHour)
	assert.Equal(t, "Monday", report.MostActiveDay)
	assert.Equal(t, 2, heatmap[0][9])
	assert.Equal(t, 1, heatmap[4][22])
	assert.Equal(t, 3, heatmap.Total())
}

func TestAggregate_PatternReport(t *testing.T) {
	// Five plays spread over Mar 4 .. Mar 8 (5-day range, 3 unique days).
	events := []listening.PlayEvent{
		mustEvent(t, "2024-03-04T09:00:00Z"),
		mustEvent(t, "2024-03-04T10:00:00Z"),
		mustEvent(t, "2024-03-06T12:00:00Z"),
		mustEvent(t, "2024-03-08T20:00:00Z"),
		mustEvent(t, "2024-03-08T21:00:00Z"),
	}

	_, _, report := Aggregate(events)

	assert.Equal(t, 5, report.TotalSessions)
	assert.Equal(t, 5, report.DateRangeDays)
	assert.Equal(t, 3, report.UniqueDays)
	assert.Equal(t, 1.0, report.AvgSessionsPerDay)
}

func TestAggregate_EmptyInput(t *testing.T) {
	dist, heatmap, report := Aggregate(nil)

	assert.Empty(t, dist.ByHour)
	assert.Empty(t, dist.ByDay)
	assert.Empty(t, dist.ByDate)
	assert.Equal(t, 0, heatmap.Total())
	assert.Equal(t, PatternReport{
		MostActiveHour:    0,
		MostActiveDay:     UnknownDay,
		TotalSessions:     0,
		AvgSessionsPerDay: 0,
		DateRangeDays:     0,
		UniqueDays:        0,
	}, report)
}

func TestAggregate_SingleEvent(t *testing.T) {
	_, _, report := Aggregate([]listening.PlayEvent{mustEvent(t, "2024-03-04T09:00:00Z")})

	assert.Equal(t, 1, report.DateRangeDays)
	assert.Equal(t, 1, report.UniqueDays)
	assert.Equal(t, 1.0, report.AvgSessionsPerDay)
}

func TestAggregate_TieBreaksAreCanonical(t *testing.T) {
	// Hours 9 and 22 tie, days Monday and Friday tie: the earlier hour and
	// the earlier weekday in Monday-first order must win.
	events := []listening.PlayEvent{
		mustEvent(t, "2024-03-08T22:00:00Z"), // Friday first in input
		mustEvent(t, "2024-03-04T09:00:00Z"), // Monday
	}

	_, _, report := Aggregate(events)

	assert.Equal(t, 9, report.MostActiveHour)
	assert.Equal(t, "Monday", report.MostActiveDay)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	events := []listening.PlayEvent{
		mustEvent(t, "2024-03-04T09:10:00Z"),
		mustEvent(t, "2024-03-04T09:50:00Z"),
		mustEvent(t, "2024-03-05T14:00:00Z"),
		mustEvent(t, "2024-03-08T22:05:00Z"),
		mustEvent(t, "2024-03-09T23:30:00Z"),
	}

	dist1, heatmap1, report1 := Aggregate(events)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]listening.PlayEvent, len(events))
		copy(shuffled, events)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		dist2, heatmap2, report2 := Aggregate(shuffled)
		assert.Equal(t, dist1, dist2)
		assert.Equal(t, heatmap1, heatmap2)
		assert.Equal(t, report1, report2)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	events := []listening.PlayEvent{
		mustEvent(t, "2024-03-04T09:10:00Z"),
		mustEvent(t, "2024-03-08T22:05:00Z"),
	}

	dist1, heatmap1, report1 := Aggregate(events)
	dist2, heatmap2, report2 := Aggregate(events)

	assert.Equal(t, dist1, dist2)
	assert.Equal(t, heatmap1, heatmap2)
	assert.Equal(t, report1, report2)
}

func TestHeatmap_CellSumEqualsEventCount(t *testing.T) {
	events := []listening.PlayEvent{
		mustEvent(t, "2024-03-04T00:00:00Z"),
		mustEvent(t, "2024-03-05T06:30:00Z"),
		mustEvent(t, "2024-03-06T12:15:00Z"),
		mustEvent(t, "2024-03-07T18:45:00Z"),
		mustEvent(t, "2024-03-10T23:59:59Z"),
	}

	_, heatmap, _ := Aggregate(events)
	assert.Equal(t, len(events), heatmap.Total())
}

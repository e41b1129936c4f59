// Package temporal aggregates play events into hour/day/date distributions,
// a weekly heatmap, and a listening-pattern report.
package temporal

import (
	"math"
	"time"

	"github.com/sonify-dev/sonify/internal/domain/listening"
)

// UnknownDay is reported as the most active day when there are no events.
const UnknownDay = "Unknown"

// Distribution holds play counts keyed by hour, weekday name, and date.
// It is built once per batch and must not be mutated afterwards.
type Distribution struct {
	ByHour map[int]int
	ByDay  map[string]int
	ByDate map[string]int // key: YYYY-MM-DD
}

// Heatmap is a fixed-shape 7x24 play-count matrix.
// Rows are weekdays Monday-first, columns are hours 0-23.
type Heatmap [7][24]int

// Total returns the sum of all cells.
func (h Heatmap) Total() int {
	total := 0
	for _, row := range h {
		for _, cell := range row {
			total += cell
		}
	}
	return total
}

// PatternReport summarizes when and how densely the user listens.
type PatternReport struct {
	MostActiveHour    int     `json:"most_active_hour"`
	MostActiveDay     string  `json:"most_active_day"`
	TotalSessions     int     `json:"total_sessions"`
	AvgSessionsPerDay float64 `json:"avg_sessions_per_day"`
	DateRangeDays     int     `json:"date_range_days"`
	UniqueDays        int     `json:"unique_days"`
}

// Aggregate computes the distribution, heatmap, and pattern report for a
// batch of play events. The result is identical for any permutation of the
// input; ties for most-active hour/day resolve to the canonical ordering
// (hours ascending, days Monday through Sunday).
func Aggregate(events []listening.PlayEvent) (Distribution, Heatmap, PatternReport) {
	dist := Distribution{
		ByHour: make(map[int]int),
		ByDay:  make(map[string]int),
		ByDate: make(map[string]int),
	}
	var heatmap Heatmap

	for _, ev := range events {
		dist.ByHour[ev.Hour]++
		dist.ByDay[ev.Weekday]++
		dist.ByDate[ev.Date]++

		if row, ok := weekdayRow(ev.Weekday); ok && ev.Hour >= 0 && ev.Hour < 24 {
			heatmap[row][ev.Hour]++
		}
	}

	return dist, heatmap, buildReport(dist, len(events))
}

func buildReport(dist Distribution, total int) PatternReport {
	report := PatternReport{
		MostActiveHour: 0,
		MostActiveDay:  UnknownDay,
		TotalSessions:  total,
	}
	if total == 0 {
		return report
	}

	// Scan in canonical order so ties are deterministic.
	best := 0
	for hour := 0; hour < 24; hour++ {
		if count := dist.ByHour[hour]; count > best {
			best = count
			report.MostActiveHour = hour
		}
	}

	best = 0
	for _, day := range listening.WeekdayNames {
		if count := dist.ByDay[day]; count > best {
			best = count
			report.MostActiveDay = day
		}
	}

	minDate, maxDate := "", ""
	for date := range dist.ByDate {
		if minDate == "" || date < minDate {
			minDate = date
		}
		if maxDate == "" || date > maxDate {
			maxDate = date
		}
	}
	report.UniqueDays = len(dist.ByDate)
	report.DateRangeDays = daysBetween(minDate, maxDate) + 1
	report.AvgSessionsPerDay = round1(float64(total) / float64(max(report.DateRangeDays, 1)))

	return report
}

func weekdayRow(day string) (int, bool) {
	for i, name := range listening.WeekdayNames {
		if name == day {
			return i, true
		}
	}
	return 0, false
}

// daysBetween counts whole days from min to max. Dates are YYYY-MM-DD so a
// lexicographic min/max is also the chronological one.
func daysBetween(minDate, maxDate string) int {
	if minDate == "" || maxDate == "" {
		return 0
	}
	minDay, errMin := parseDate(minDate)
	maxDay, errMax := parseDate(maxDate)
	if errMin != nil || errMax != nil {
		return 0
	}
	return int(maxDay.Sub(minDay).Hours() / 24)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

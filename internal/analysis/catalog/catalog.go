// Package catalog turns ranked track/artist collections into chart-ready
// ranking series, genre frequencies, and diversity metrics.
package catalog

import (
	"sort"

	"github.com/sonify-dev/sonify/internal/domain/listening"
)

// RankedSeries holds parallel name/value arrays for a ranking chart.
// Order matches the caller-supplied ranking; the aggregator never re-sorts.
type RankedSeries struct {
	Names  []string `json:"names"`
	Values []int    `json:"values"`
}

// GenreCount is one genre with its occurrence count across top artists.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// PlaylistStats summarizes the user's playlists.
type PlaylistStats struct {
	Count       int `json:"count"`
	TotalTracks int `json:"total_tracks"`
}

// TopTrackSeries truncates a pre-ranked track list to limit and returns the
// (name, popularity) series in input order.
func TopTrackSeries(tracks []listening.TrackSummary, limit int) RankedSeries {
	n := min(limit, len(tracks))
	series := RankedSeries{
		Names:  make([]string, 0, n),
		Values: make([]int, 0, n),
	}
	for _, t := range tracks[:n] {
		series.Names = append(series.Names, t.Name)
		series.Values = append(series.Values, t.Popularity)
	}
	return series
}

// TopArtistSeries truncates a pre-ranked artist list to limit and returns the
// (name, popularity) series in input order.
func TopArtistSeries(artists []listening.ArtistSummary, limit int) RankedSeries {
	n := min(limit, len(artists))
	series := RankedSeries{
		Names:  make([]string, 0, n),
		Values: make([]int, 0, n),
	}
	for _, a := range artists[:n] {
		series.Names = append(series.Names, a.Name)
		series.Values = append(series.Values, a.Popularity)
	}
	return series
}

// TopGenres flattens every artist's genre list, counts occurrences, and
// returns the top k genres sorted by count descending. Ties keep the order
// in which a genre was first seen so the result is deterministic.
func TopGenres(artists []listening.ArtistSummary, k int) []GenreCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, artist := range artists {
		for _, genre := range artist.Genres {
			if _, ok := counts[genre]; !ok {
				firstSeen[genre] = len(firstSeen)
			}
			counts[genre]++
		}
	}

	ranked := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		ranked = append(ranked, GenreCount{Genre: genre, Count: count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Genre] < firstSeen[ranked[j].Genre]
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

// ArtistDiversity returns the ratio of distinct primary artists to tracks in
// a top-track list. Empty input yields 0, not a division error.
func ArtistDiversity(tracks []listening.TrackSummary) float64 {
	if len(tracks) == 0 {
		return 0
	}

	unique := make(map[string]struct{}, len(tracks))
	for _, t := range tracks {
		unique[t.ArtistID] = struct{}{}
	}
	return float64(len(unique)) / float64(len(tracks))
}

// SummarizePlaylists counts playlists and their combined track totals.
func SummarizePlaylists(playlists []listening.PlaylistSummary) PlaylistStats {
	stats := PlaylistStats{Count: len(playlists)}
	for _, p := range playlists {
		stats.TotalTracks += p.TrackCount
	}
	return stats
}

// Package chart converts analysis aggregates into declarative chart
// descriptors. Descriptors carry data, labels, and a chart kind only; they
// are never bound to a specific plotting library.
package chart

import (
	"sort"
	"strconv"

	"github.com/sonify-dev/sonify/internal/analysis/catalog"
	"github.com/sonify-dev/sonify/internal/analysis/features"
	"github.com/sonify-dev/sonify/internal/analysis/temporal"
	"github.com/sonify-dev/sonify/internal/domain/listening"
)

// Kind identifies the visualization a descriptor describes.
type Kind string

const (
	KindBar     Kind = "bar"
	KindHeatmap Kind = "heatmap"
	KindRadar   Kind = "radar"
	KindScatter Kind = "scatter"
)

// Series is one named label/value pairing within a chart.
type Series struct {
	Name   string    `json:"name"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Color  string    `json:"color,omitempty"`
}

// Descriptor is a rendering-agnostic description of one chart.
// Matrix and its row/column labels are populated for heatmaps only.
type Descriptor struct {
	Kind      Kind        `json:"kind"`
	Title     string      `json:"title"`
	XLabel    string      `json:"x_label,omitempty"`
	YLabel    string      `json:"y_label,omitempty"`
	Series    []Series    `json:"series"`
	Matrix    [][]float64 `json:"matrix,omitempty"`
	RowLabels []string    `json:"row_labels,omitempty"`
	ColLabels []string    `json:"col_labels,omitempty"`
}

// radarFeatures are the features shown on the mood radar, in display order.
var radarFeatures = []string{
	features.Danceability,
	features.Energy,
	features.Valence,
	features.Acousticness,
	features.Instrumentalness,
}

// Builder translates aggregates into descriptors using a color theme.
type Builder struct {
	theme Theme
}

// NewBuilder creates a builder with the given theme.
func NewBuilder(theme Theme) *Builder {
	return &Builder{theme: theme}
}

// NewDefaultBuilder creates a builder with the default theme.
func NewDefaultBuilder() *Builder {
	return NewBuilder(DefaultTheme())
}

// TopTracks builds the top-tracks popularity bar chart. Empty input yields
// a well-formed descriptor with an empty series.
func (b *Builder) TopTracks(series catalog.RankedSeries) Descriptor {
	return Descriptor{
		Kind:   KindBar,
		Title:  "Your Top Tracks",
		XLabel: "Track",
		YLabel: "Popularity",
		Series: []Series{{
			Name:   "Popularity",
			Labels: series.Names,
			Values: intsToFloats(series.Values),
			Color:  b.theme.TrackColor,
		}},
	}
}

// TopArtists builds the top-artists popularity bar chart.
func (b *Builder) TopArtists(series catalog.RankedSeries) Descriptor {
	return Descriptor{
		Kind:   KindBar,
		Title:  "Your Top Artists",
		XLabel: "Artist",
		YLabel: "Popularity",
		Series: []Series{{
			Name:   "Popularity",
			Labels: series.Names,
			Values: intsToFloats(series.Values),
			Color:  b.theme.ArtistColor,
		}},
	}
}

// ListeningHeatmap builds the weekday-by-hour activity heatmap. The matrix
// keeps its fixed 7x24 shape for any input, including all zeros.
func (b *Builder) ListeningHeatmap(heatmap temporal.Heatmap) Descriptor {
	matrix := make([][]float64, len(heatmap))
	for row, cells := range heatmap {
		matrix[row] = make([]float64, len(cells))
		for col, count := range cells {
			matrix[row][col] = float64(count)
		}
	}

	cols := make([]string, 24)
	for hour := 0; hour < 24; hour++ {
		cols[hour] = strconv.Itoa(hour)
	}

	return Descriptor{
		Kind:   KindHeatmap,
		Title:  "Listening Time Heatmap",
		XLabel: "Hour of Day",
		YLabel: "Day of Week",
		Matrix: matrix,
		// Copied so a consumer editing its descriptor cannot corrupt the
		// canonical weekday ordering.
		RowLabels: append([]string(nil), listening.WeekdayNames...),
		ColLabels: cols,
	}
}

// MoodRadar builds the radar chart of averaged mood features. Features
// absent from the summary are omitted; an empty summary produces an empty
// series, not an absent chart.
func (b *Builder) MoodRadar(summary features.FeatureSummary) Descriptor {
	s := Series{
		Name:   "Your Music Profile",
		Labels: []string{},
		Values: []float64{},
		Color:  b.theme.TrackColor,
	}
	for _, feature := range radarFeatures {
		mean, ok := summary[feature]
		if !ok {
			continue
		}
		s.Labels = append(s.Labels, feature)
		s.Values = append(s.Values, mean)
	}

	return Descriptor{
		Kind:   KindRadar,
		Title:  "Your Music Mood Profile",
		Series: []Series{s},
	}
}

// TopGenres builds the genre-frequency bar chart. Returns false when there
// are no genres; callers omit the visualization in that case.
func (b *Builder) TopGenres(genres []catalog.GenreCount) (Descriptor, bool) {
	if len(genres) == 0 {
		return Descriptor{}, false
	}

	s := Series{
		Name:   "Artists",
		Labels: make([]string, 0, len(genres)),
		Values: make([]float64, 0, len(genres)),
		Color:  b.theme.GenreColor,
	}
	for _, g := range genres {
		s.Labels = append(s.Labels, g.Genre)
		s.Values = append(s.Values, float64(g.Count))
	}

	return Descriptor{
		Kind:   KindBar,
		Title:  "Top Genres",
		XLabel: "Genre",
		YLabel: "Number of Artists",
		Series: []Series{s},
	}, true
}

// ListeningTimeline builds the per-date activity scatter chart, dates
// ascending. Empty input yields an empty series.
func (b *Builder) ListeningTimeline(dist temporal.Distribution) Descriptor {
	dates := make([]string, 0, len(dist.ByDate))
	for date := range dist.ByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	s := Series{
		Name:   "Plays",
		Labels: dates,
		Values: make([]float64, 0, len(dates)),
		Color:  b.theme.TimelineColor,
	}
	for _, date := range dates {
		s.Values = append(s.Values, float64(dist.ByDate[date]))
	}

	return Descriptor{
		Kind:   KindScatter,
		Title:  "Listening Activity Timeline",
		XLabel: "Date",
		YLabel: "Number of Tracks",
		Series: []Series{s},
	}
}

// PlaylistSizes builds the playlist-size bar chart. Returns false when the
// user has no playlists.
func (b *Builder) PlaylistSizes(playlists []listening.PlaylistSummary) (Descriptor, bool) {
	if len(playlists) == 0 {
		return Descriptor{}, false
	}

	s := Series{
		Name:   "Tracks",
		Labels: make([]string, 0, len(playlists)),
		Values: make([]float64, 0, len(playlists)),
		Color:  b.theme.PlaylistColor,
	}
	for i, p := range playlists {
		name := p.Name
		if name == "" {
			name = "Playlist " + strconv.Itoa(i+1)
		}
		s.Labels = append(s.Labels, name)
		s.Values = append(s.Values, float64(p.TrackCount))
	}

	return Descriptor{
		Kind:   KindBar,
		Title:  "Playlist Sizes",
		XLabel: "Playlist",
		YLabel: "Number of Tracks",
		Series: []Series{s},
	}, true
}

func intsToFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

package http

import (
	"net/http"
	"strconv"

	"github.com/sonify-dev/sonify/internal/analysis/catalog"
	"github.com/sonify-dev/sonify/internal/analysis/chart"
	"github.com/sonify-dev/sonify/internal/analysis/features"
	"github.com/sonify-dev/sonify/internal/analysis/insight"
	"github.com/sonify-dev/sonify/internal/analysis/temporal"
	"github.com/sonify-dev/sonify/internal/domain/listening"
	"github.com/sonify-dev/sonify/internal/infra/export"
	"github.com/sonify-dev/sonify/internal/infra/spotify"
)

type userResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Country     string `json:"country,omitempty"`
	Followers   int    `json:"followers"`
}

type dashboardResponse struct {
	User       userResponse           `json:"user"`
	TopTracks  catalog.RankedSeries   `json:"top_tracks"`
	TopArtists catalog.RankedSeries   `json:"top_artists"`
	Patterns   temporal.PatternReport `json:"patterns"`
	ByHour     map[int]int            `json:"hour_distribution"`
	ByDay      map[string]int         `json:"day_distribution"`
}

type visualizationsResponse struct {
	Charts map[string]chart.Descriptor `json:"charts"`
}

type moodResponse struct {
	Features   features.FeatureSummary        `json:"features"`
	Insights   map[features.MoodAspect]string `json:"insights"`
	Complexity features.ComplexityReport      `json:"complexity"`
	RadarChart chart.Descriptor               `json:"radar_chart"`
}

type insightsResponse struct {
	TopGenres       []catalog.GenreCount   `json:"top_genres"`
	ArtistDiversity float64                `json:"artist_diversity"`
	UniqueArtists   int                    `json:"unique_artists"`
	TotalTracks     int                    `json:"total_tracks"`
	Playlists       catalog.PlaylistStats  `json:"playlists"`
	Patterns        temporal.PatternReport `json:"patterns"`
	Observations    []string               `json:"observations"`
	GenreChart      *chart.Descriptor      `json:"genre_chart,omitempty"`
	PlaylistChart   *chart.Descriptor      `json:"playlist_chart,omitempty"`
}

type trackResponse struct {
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	Popularity int    `json:"popularity"`
	Duration   string `json:"duration"`
}

type exportResponse struct {
	Files []string `json:"files"`
}

func (s *Server) handleUserData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := s.source.CurrentUser(ctx)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Country:     user.Country,
		Followers:   user.Followers,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg := s.cfg.Analysis

	user, err := s.source.CurrentUser(ctx)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	tracks, err := s.source.TopTracks(ctx, cfg.TopItemsLimit, s.timeRange())
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	artists, err := s.source.TopArtists(ctx, cfg.TopItemsLimit, s.timeRange())
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	history, err := s.source.RecentlyPlayed(ctx, cfg.RecentLimit)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}

	events := listening.NormalizeHistory(history)
	dist, _, report := temporal.Aggregate(events)

	writeJSON(w, http.StatusOK, dashboardResponse{
		User: userResponse{
			ID:          user.ID,
			DisplayName: user.DisplayName,
			Followers:   user.Followers,
		},
		TopTracks:  catalog.TopTrackSeries(tracks, cfg.TopItemsLimit),
		TopArtists: catalog.TopArtistSeries(artists, cfg.TopItemsLimit),
		Patterns:   report,
		ByHour:     dist.ByHour,
		ByDay:      dist.ByDay,
	})
}

func (s *Server) handleVisualizations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg := s.cfg.Analysis

	tracks, err := s.source.TopTracks(ctx, cfg.FeatureTrackLimit, s.timeRange())
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	artists, err := s.source.TopArtists(ctx, cfg.FeatureTrackLimit, s.timeRange())
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	history, err := s.source.RecentlyPlayed(ctx, cfg.RecentLimit)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}

	events := listening.NormalizeHistory(history)
	dist, heatmap, _ := temporal.Aggregate(events)

	charts := map[string]chart.Descriptor{
		"top_tracks":  s.builder.TopTracks(catalog.TopTrackSeries(tracks, cfg.TopItemsLimit)),
		"top_artists": s.builder.TopArtists(catalog.TopArtistSeries(artists, cfg.TopItemsLimit)),
		"heatmap":     s.builder.ListeningHeatmap(heatmap),
		"timeline":    s.builder.ListeningTimeline(dist),
	}
	if genreChart, ok := s.builder.TopGenres(catalog.TopGenres(artists, cfg.GenreChartLimit)); ok {
		charts["genres"] = genreChart
	}

	writeJSON(w, http.StatusOK, visualizationsResponse{Charts: charts})
}

func (s *Server) handleMoodInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg := s.cfg.Analysis

	tracks, err := s.source.TopTracks(ctx, cfg.FeatureTrackLimit, s.timeRange())
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	batch, err := s.source.AudioFeatures(ctx, tracks)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	batch = features.AlignWithTracks(tracks, batch)

	summary := features.Summarize(batch)

	writeJSON(w, http.StatusOK, moodResponse{
		Features:   summary,
		Insights:   features.MoodProfile(summary),
		Complexity: features.Complexity(batch),
		RadarChart: s.builder.MoodRadar(summary),
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg := s.cfg.Analysis

	tracks, err := s.source.TopTracks(ctx, cfg.TopItemsLimit, s.timeRange())
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	artists, err := s.source.TopArtists(ctx, cfg.TopItemsLimit, s.timeRange())
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	history, err := s.source.RecentlyPlayed(ctx, cfg.RecentLimit)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	playlists, err := s.source.Playlists(ctx, cfg.PlaylistLimit)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	batch, err := s.source.AudioFeatures(ctx, tracks)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	batch = features.AlignWithTracks(tracks, batch)

	events := listening.NormalizeHistory(history)
	_, _, report := temporal.Aggregate(events)
	summary := features.Summarize(batch)
	uniqueArtists := make(map[string]struct{})
	for _, t := range tracks {
		uniqueArtists[t.ArtistID] = struct{}{}
	}

	resp := insightsResponse{
		TopGenres:       catalog.TopGenres(artists, cfg.GenreInsightLimit),
		ArtistDiversity: catalog.ArtistDiversity(tracks),
		UniqueArtists:   len(uniqueArtists),
		TotalTracks:     len(tracks),
		Playlists:       catalog.SummarizePlaylists(playlists),
		Patterns:        report,
		Observations:    insight.Generate(summary, &report),
	}
	if genreChart, ok := s.builder.TopGenres(catalog.TopGenres(artists, cfg.GenreChartLimit)); ok {
		resp.GenreChart = &genreChart
	}
	if playlistChart, ok := s.builder.PlaylistSizes(playlists); ok {
		resp.PlaylistChart = &playlistChart
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTopTracks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := s.cfg.Analysis.TopItemsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	timeRange := s.timeRange()
	if v := r.URL.Query().Get("time_range"); v != "" {
		timeRange = spotify.TimeRange(v)
	}

	tracks, err := s.source.TopTracks(ctx, limit, timeRange)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}

	out := make([]trackResponse, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, trackResponse{
			Name:       t.Name,
			Artist:     t.PrimaryArtist,
			Album:      t.Album,
			Popularity: t.Popularity,
			Duration:   export.FormatDuration(t.Duration),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg := s.cfg.Analysis

	tracks, err := s.source.TopTracks(ctx, cfg.FeatureTrackLimit, s.timeRange())
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	artists, err := s.source.TopArtists(ctx, cfg.FeatureTrackLimit, s.timeRange())
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}

	files, err := s.exporter.Export(tracks, artists)
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{Files: files})
}

func (s *Server) timeRange() spotify.TimeRange {
	return spotify.TimeRange(s.cfg.Analysis.TimeRange)
}

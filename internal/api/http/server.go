// Package http exposes the analytics core as a JSON API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/sonify-dev/sonify/internal/analysis/chart"
	"github.com/sonify-dev/sonify/internal/domain/listening"
	"github.com/sonify-dev/sonify/internal/infra/config"
	"github.com/sonify-dev/sonify/internal/infra/export"
	"github.com/sonify-dev/sonify/internal/infra/spotify"
)

// Source is the slice of the Spotify client the handlers need. Narrowing it
// to an interface keeps the handlers testable without network access.
type Source interface {
	RecentlyPlayed(ctx context.Context, limit int) ([]listening.RawHistoryItem, error)
	TopTracks(ctx context.Context, limit int, timeRange spotify.TimeRange) ([]listening.TrackSummary, error)
	TopArtists(ctx context.Context, limit int, timeRange spotify.TimeRange) ([]listening.ArtistSummary, error)
	AudioFeatures(ctx context.Context, tracks []listening.TrackSummary) ([]*listening.AudioFeatureVector, error)
	Playlists(ctx context.Context, limit int) ([]listening.PlaylistSummary, error)
	CurrentUser(ctx context.Context) (*spotify.UserProfile, error)
}

// Server wires the analytics core, the Spotify source, and the exporter
// behind JSON endpoints.
type Server struct {
	cfg      *config.Config
	source   Source
	builder  *chart.Builder
	exporter *export.Writer
}

// NewServer creates the API server.
func NewServer(cfg *config.Config, source Source, builder *chart.Builder, exporter *export.Writer) *Server {
	return &Server{
		cfg:      cfg,
		source:   source,
		builder:  builder,
		exporter: exporter,
	}
}

// Handler returns the routed HTTP handler with logging middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/user-data", s.handleUserData)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/visualizations", s.handleVisualizations)
	mux.HandleFunc("GET /api/mood-insights", s.handleMoodInsights)
	mux.HandleFunc("GET /api/insights", s.handleInsights)
	mux.HandleFunc("GET /api/top-tracks", s.handleTopTracks)
	mux.HandleFunc("POST /api/export", s.handleExport)
	return requestLogger(mux)
}

// requestLogger tags each request with an id and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		logger := zlog.With().Str("request_id", reqID).Logger()
		r = r.WithContext(logger.WithContext(r.Context()))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Error().Err(err).Msg("Failed to encode response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	zerolog.Ctx(ctx).Error().Err(err).Msg("Request failed")
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

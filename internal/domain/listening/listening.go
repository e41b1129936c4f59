// Package listening provides the domain entities for listening-history analysis.
package listening

import (
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// ErrMalformedTimestamp marks a play-history record whose timestamp cannot be
// parsed. Callers are expected to drop the single record and keep the batch.
var ErrMalformedTimestamp = errors.New("malformed play timestamp")

// Weekday names in display order (Monday-first), matching the heatmap rows.
var WeekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// PlayEvent represents one occurrence of a track being played.
// Calendar fields are derived from PlayedAt (UTC) at construction and the
// value is never modified afterwards.
type PlayEvent struct {
	TrackName  string
	ArtistName string
	PlayedAt   time.Time // absolute instant, UTC
	Hour       int       // 0-23, UTC
	Weekday    string    // English name, e.g. "Monday"
	Date       string    // date-only, YYYY-MM-DD
}

// TrackSummary is a read-only projection of a ranked track from the
// streaming API.
type TrackSummary struct {
	ID            string
	Name          string
	PrimaryArtist string
	ArtistID      string
	Album         string
	Popularity    int // 0-100
	Duration      time.Duration
}

// ArtistSummary is a read-only projection of a ranked artist.
type ArtistSummary struct {
	ID         string
	Name       string
	Popularity int // 0-100
	Genres     []string
	Followers  uint
}

// PlaylistSummary carries the fields of a playlist the analysis cares about.
type PlaylistSummary struct {
	Name       string
	TrackCount int
}

// AudioFeatureVector holds the per-track acoustic metrics supplied by the
// streaming service. All values except Tempo are in [0,1].
type AudioFeatureVector struct {
	Danceability     float64
	Energy           float64
	Valence          float64
	Acousticness     float64
	Instrumentalness float64
	Tempo            float64 // BPM
}

// RawHistoryItem is one "recently played" record as delivered by the
// streaming API, before normalization.
type RawHistoryItem struct {
	TrackName  string
	ArtistName string
	PlayedAt   string // RFC3339, Z-suffixed
}

// NewPlayEvent builds a PlayEvent from a raw history record.
// Returns ErrMalformedTimestamp when the timestamp cannot be parsed.
func NewPlayEvent(trackName, artistName, playedAt string) (PlayEvent, error) {
	t, err := time.Parse(time.RFC3339, playedAt)
	if err != nil {
		return PlayEvent{}, errors.Mark(errors.Wrapf(err, "parse played_at %q", playedAt), ErrMalformedTimestamp)
	}

	t = t.UTC()
	return PlayEvent{
		TrackName:  trackName,
		ArtistName: artistName,
		PlayedAt:   t,
		Hour:       t.Hour(),
		Weekday:    t.Weekday().String(),
		Date:       t.Format(time.DateOnly),
	}, nil
}

// NormalizeHistory converts a raw history batch into PlayEvents.
// Records with malformed timestamps are dropped with a warning so that a
// single corrupt upstream record does not blank out the whole analysis.
func NormalizeHistory(items []RawHistoryItem) []PlayEvent {
	events := make([]PlayEvent, 0, len(items))
	for _, item := range items {
		ev, err := NewPlayEvent(item.TrackName, item.ArtistName, item.PlayedAt)
		if err != nil {
			zlog.Warn().Str("track", item.TrackName).Str("played_at", item.PlayedAt).
				Msg("Skipping history record with malformed timestamp")
			continue
		}
		events = append(events, ev)
	}
	return events
}

// Package features summarizes per-track audio-feature vectors into averaged
// profiles, dispersion-based complexity scores, and mood labels.
package features

import (
	"math"

	zlog "github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/sonify-dev/sonify/internal/domain/listening"
)

// Tracked feature names, as reported by the streaming API.
const (
	Danceability     = "danceability"
	Energy           = "energy"
	Valence          = "valence"
	Acousticness     = "acousticness"
	Instrumentalness = "instrumentalness"
	Tempo            = "tempo"
)

// AllFeatures lists every tracked feature in reporting order.
var AllFeatures = []string{Danceability, Energy, Valence, Tempo, Acousticness, Instrumentalness}

// complexityFeatures are the features whose spread measures taste variety.
var complexityFeatures = []string{Danceability, Energy, Valence, Acousticness}

// Complexity level cut points. Fixed, not configurable.
const (
	complexityHighCut   = 0.3
	complexityMediumCut = 0.15
)

// FeatureSummary maps a feature name to its mean across a track batch,
// rounded to 3 decimal places. A feature with no contributing values is
// omitted, never reported as 0.
type FeatureSummary map[string]float64

// ComplexityLevel classifies the overall dispersion of a batch.
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "Low"
	ComplexityMedium ComplexityLevel = "Medium"
	ComplexityHigh   ComplexityLevel = "High"
)

// ComplexityReport holds per-feature dispersion scores and their overall mean.
type ComplexityReport struct {
	PerFeature map[string]float64 `json:"feature_complexity"`
	Overall    float64            `json:"overall_complexity"`
	Level      ComplexityLevel    `json:"complexity_level"`
}

// Summarize computes the mean of each tracked feature over all non-nil
// vectors in the batch. Nil vectors (API gaps) are excluded from every
// average rather than counted as zero.
func Summarize(batch []*listening.AudioFeatureVector) FeatureSummary {
	summary := make(FeatureSummary)
	for _, feature := range AllFeatures {
		values := collect(batch, feature)
		if len(values) == 0 {
			continue
		}
		summary[feature] = round3(stat.Mean(values, nil))
	}
	return summary
}

// Complexity measures taste variety as the population standard deviation of
// danceability, energy, valence, and acousticness across the batch.
// A feature with fewer than two contributing values scores 0.
func Complexity(batch []*listening.AudioFeatureVector) ComplexityReport {
	report := ComplexityReport{
		PerFeature: make(map[string]float64),
		Level:      ComplexityLow,
	}
	if countNonNil(batch) == 0 {
		return report
	}

	var sum float64
	for _, feature := range complexityFeatures {
		values := collect(batch, feature)
		score := 0.0
		if len(values) > 1 {
			score = stat.PopStdDev(values, nil)
		}
		report.PerFeature[feature] = score
		sum += score
	}

	report.Overall = sum / float64(len(complexityFeatures))
	switch {
	case report.Overall > complexityHighCut:
		report.Level = ComplexityHigh
	case report.Overall > complexityMediumCut:
		report.Level = ComplexityMedium
	}
	return report
}

// AlignWithTracks reconciles a feature batch with its track list when their
// lengths differ. The overlap is returned and the mismatch is logged, since
// it indicates a caller bug rather than bad data.
func AlignWithTracks(tracks []listening.TrackSummary, batch []*listening.AudioFeatureVector) []*listening.AudioFeatureVector {
	if len(batch) == len(tracks) {
		return batch
	}
	zlog.Warn().Int("tracks", len(tracks)).Int("features", len(batch)).
		Msg("Track and audio-feature list lengths differ, analyzing the overlap")
	if len(batch) > len(tracks) {
		return batch[:len(tracks)]
	}
	return batch
}

func collect(batch []*listening.AudioFeatureVector, feature string) []float64 {
	values := make([]float64, 0, len(batch))
	for _, v := range batch {
		if v == nil {
			continue
		}
		values = append(values, featureValue(v, feature))
	}
	return values
}

func featureValue(v *listening.AudioFeatureVector, feature string) float64 {
	switch feature {
	case Danceability:
		return v.Danceability
	case Energy:
		return v.Energy
	case Valence:
		return v.Valence
	case Acousticness:
		return v.Acousticness
	case Instrumentalness:
		return v.Instrumentalness
	case Tempo:
		return v.Tempo
	}
	return 0
}

func countNonNil(batch []*listening.AudioFeatureVector) int {
	n := 0
	for _, v := range batch {
		if v != nil {
			n++
		}
	}
	return n
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

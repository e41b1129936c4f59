package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonify-dev/sonify/internal/domain/listening"
)

func vec(dance, energy, valence, acoustic, instrumental, tempo float64) *listening.AudioFeatureVector {
	return &listening.AudioFeatureVector{
		Danceability:     dance,
		Energy:           energy,
		Valence:          valence,
		Acousticness:     acoustic,
		Instrumentalness: instrumental,
		Tempo:            tempo,
	}
}

func TestSummarize(t *testing.T) {
	batch := []*listening.AudioFeatureVector{
		vec(0.8, 0.9, 0.8, 0.1, 0.0, 120),
		nil, // API gap, excluded from every average
		vec(0.4, 0.1, 0.2, 0.3, 0.5, 100),
	}

	summary := Summarize(batch)

	assert.Equal(t, 0.5, summary[Energy])
	assert.Equal(t, 0.5, summary[Valence])
	assert.Equal(t, 0.6, summary[Danceability])
	assert.Equal(t, 0.2, summary[Acousticness])
	assert.Equal(t, 0.25, summary[Instrumentalness])
	assert.Equal(t, 110.0, summary[Tempo])
}

func TestSummarize_RoundsToThreeDecimals(t *testing.T) {
	batch := []*listening.AudioFeatureVector{
		vec(0.1, 0.1, 0.1, 0.1, 0.1, 100),
		vec(0.2, 0.2, 0.2, 0.2, 0.2, 100),
		vec(0.2, 0.2, 0.2, 0.2, 0.2, 100),
	}

	summary := Summarize(batch)
	// (0.1+0.2+0.2)/3 = 0.16666... -> 0.167
	assert.Equal(t, 0.167, summary[Energy])
}

func TestSummarize_EmptyAndAllNil(t *testing.T) {
	assert.Empty(t, Summarize(nil))
	assert.Empty(t, Summarize([]*listening.AudioFeatureVector{nil, nil}))
}

func TestComplexity(t *testing.T) {
	// Maximally spread values on every complexity feature.
	batch := []*listening.AudioFeatureVector{
		vec(0, 0, 0, 0, 0, 100),
		vec(1, 1, 1, 1, 0, 100),
	}

	report := Complexity(batch)

	require.Len(t, report.PerFeature, 4)
	for _, feature := range []string{Danceability, Energy, Valence, Acousticness} {
		assert.InDelta(t, 0.5, report.PerFeature[feature], 1e-9)
	}
	assert.InDelta(t, 0.5, report.Overall, 1e-9)
	assert.Equal(t, ComplexityHigh, report.Level)
}

func TestComplexity_Levels(t *testing.T) {
	tests := []struct {
		name  string
		batch []*listening.AudioFeatureVector
		want  ComplexityLevel
	}{
		{
			name: "identical vectors score low",
			batch: []*listening.AudioFeatureVector{
				vec(0.5, 0.5, 0.5, 0.5, 0, 100),
				vec(0.5, 0.5, 0.5, 0.5, 0, 100),
			},
			want: ComplexityLow,
		},
		{
			name: "moderate spread scores medium",
			batch: []*listening.AudioFeatureVector{
				vec(0.3, 0.3, 0.3, 0.3, 0, 100),
				vec(0.7, 0.7, 0.7, 0.7, 0, 100),
			},
			want: ComplexityMedium, // pop std dev 0.2 per feature
		},
		{
			name: "wide spread scores high",
			batch: []*listening.AudioFeatureVector{
				vec(0.05, 0.05, 0.05, 0.05, 0, 100),
				vec(0.95, 0.95, 0.95, 0.95, 0, 100),
			},
			want: ComplexityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Complexity(tt.batch).Level)
		})
	}
}

func TestComplexity_SingleVectorScoresZero(t *testing.T) {
	report := Complexity([]*listening.AudioFeatureVector{vec(0.9, 0.9, 0.9, 0.9, 0, 100)})

	assert.Equal(t, 0.0, report.Overall)
	assert.Equal(t, ComplexityLow, report.Level)
	for _, score := range report.PerFeature {
		assert.Equal(t, 0.0, score)
	}
}

func TestComplexity_EmptyBatch(t *testing.T) {
	report := Complexity(nil)

	assert.Empty(t, report.PerFeature)
	assert.Equal(t, 0.0, report.Overall)
	assert.Equal(t, ComplexityLow, report.Level)
}

func TestAlignWithTracks(t *testing.T) {
	tracks := []listening.TrackSummary{{Name: "a"}, {Name: "b"}}
	short := []*listening.AudioFeatureVector{vec(0.5, 0.5, 0.5, 0.5, 0, 100)}
	long := []*listening.AudioFeatureVector{
		vec(0.1, 0.1, 0.1, 0.1, 0, 100),
		vec(0.2, 0.2, 0.2, 0.2, 0, 100),
		vec(0.3, 0.3, 0.3, 0.3, 0, 100),
	}

	assert.Len(t, AlignWithTracks(tracks, long), 2)
	assert.Len(t, AlignWithTracks(tracks, short), 1)
	assert.Len(t, AlignWithTracks(tracks, long[:2]), 2)
}

func TestMoodProfile(t *testing.T) {
	tests := []struct {
		name    string
		summary FeatureSummary
		aspect  MoodAspect
		want    string
	}{
		{
			name:    "high energy",
			summary: FeatureSummary{Energy: 0.8},
			aspect:  AspectEnergy,
			want:    "High energy - You prefer energetic, upbeat music!",
		},
		{
			name:    "moderate energy",
			summary: FeatureSummary{Energy: 0.5},
			aspect:  AspectEnergy,
			want:    "Moderate energy - You enjoy a balanced mix of energetic and calm music.",
		},
		{
			name:    "low energy",
			summary: FeatureSummary{Energy: 0.2},
			aspect:  AspectEnergy,
			want:    "Low energy - You prefer calm, relaxing music.",
		},
		{
			name:    "boundary 0.7 is moderate, not high",
			summary: FeatureSummary{Energy: 0.7},
			aspect:  AspectEnergy,
			want:    "Moderate energy - You enjoy a balanced mix of energetic and calm music.",
		},
		{
			name:    "boundary 0.4 is low, not moderate",
			summary: FeatureSummary{Energy: 0.4},
			aspect:  AspectEnergy,
			want:    "Low energy - You prefer calm, relaxing music.",
		},
		{
			name:    "positive valence",
			summary: FeatureSummary{Valence: 0.9},
			aspect:  AspectMood,
			want:    "Positive mood - Your music choices reflect a happy, upbeat personality!",
		},
		{
			name:    "high danceability",
			summary: FeatureSummary{Danceability: 0.75},
			aspect:  AspectDance,
			want:    "High danceability - You love music you can dance to!",
		},
		{
			name:    "electronic preference",
			summary: FeatureSummary{Acousticness: 0.1},
			aspect:  AspectAcoustic,
			want:    "Electronic preference - You prefer electronic and produced music.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := MoodProfile(tt.summary)
			require.Len(t, profile, 4)
			assert.Equal(t, tt.want, profile[tt.aspect])
		})
	}
}

func TestMoodProfile_EmptySummary(t *testing.T) {
	assert.Empty(t, MoodProfile(FeatureSummary{}))
	assert.Empty(t, MoodProfile(nil))
}

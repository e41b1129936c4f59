// Package insight generates natural-language observations about listening
// habits from aggregated feature and pattern data.
//
// Every insight comes from a fixed rule table, so the output is fully
// deterministic for a given set of aggregates. Any subset of the inputs may
// be absent; with nothing to say the generator returns an empty list.
package insight

import (
	"github.com/sonify-dev/sonify/internal/analysis/features"
	"github.com/sonify-dev/sonify/internal/analysis/temporal"
)

// featureRule emits a sentence when a feature mean crosses the high or low
// cut point. Means between the cuts produce no insight.
type featureRule struct {
	Feature string
	HighCut float64
	LowCut  float64
	High    string
	Low     string
}

var featureRules = []featureRule{
	{
		Feature: features.Energy,
		HighCut: 0.7,
		LowCut:  0.3,
		High:    "You prefer high-energy music, suggesting an active and dynamic personality.",
		Low:     "You enjoy calm, low-energy music, indicating a reflective and peaceful nature.",
	},
	{
		Feature: features.Valence,
		HighCut: 0.7,
		LowCut:  0.3,
		High:    "Your music choices are predominantly positive, reflecting an optimistic outlook.",
		Low:     "You gravitate toward melancholic music, suggesting depth and emotional sensitivity.",
	},
	{
		Feature: features.Danceability,
		HighCut: 0.7,
		LowCut:  0.3,
		High:    "You love danceable music, indicating a social and energetic personality.",
		Low:     "You prefer music for listening rather than dancing, suggesting an introspective nature.",
	},
}

// Pattern rule cut points.
const (
	morningHourCut     = 12
	eveningHourCut     = 18
	constantSessionCut = 10
	casualSessionCut   = 3
)

const (
	earlyBirdInsight  = "You're most active in the morning, suggesting you're an early bird."
	nightOwlInsight   = "You're most active in the evening, indicating you're a night owl."
	constantlyInsight = "You listen to music constantly, showing it's a central part of your life."
	occasionalInsight = "You listen to music occasionally, suggesting it's a background element."
)

// Generate produces the insight list for the given aggregates. A nil report
// or empty summary skips the corresponding rules rather than failing.
func Generate(summary features.FeatureSummary, report *temporal.PatternReport) []string {
	insights := []string{}

	if len(summary) > 0 {
		for _, rule := range featureRules {
			mean, ok := summary[rule.Feature]
			if !ok {
				continue
			}
			switch {
			case mean > rule.HighCut:
				insights = append(insights, rule.High)
			case mean < rule.LowCut:
				insights = append(insights, rule.Low)
			}
		}
	}

	if report != nil && report.TotalSessions > 0 {
		if report.MostActiveHour < morningHourCut {
			insights = append(insights, earlyBirdInsight)
		} else if report.MostActiveHour > eveningHourCut {
			insights = append(insights, nightOwlInsight)
		}

		if report.AvgSessionsPerDay > constantSessionCut {
			insights = append(insights, constantlyInsight)
		} else if report.AvgSessionsPerDay < casualSessionCut {
			insights = append(insights, occasionalInsight)
		}
	}

	return insights
}

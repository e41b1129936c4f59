package features

// MoodAspect names one of the categorical judgments derived from averaged
// audio features.
type MoodAspect string

const (
	AspectEnergy   MoodAspect = "energy"
	AspectMood     MoodAspect = "mood"
	AspectDance    MoodAspect = "dance"
	AspectAcoustic MoodAspect = "acoustic"
)

// moodRule maps one feature's summary mean to a descriptive label using two
// fixed cut points: mean > HighCut, mean > ModerateCut, else low.
type moodRule struct {
	Aspect      MoodAspect
	Feature     string
	HighCut     float64
	ModerateCut float64
	High        string
	Moderate    string
	Low         string
}

// moodRules is the full judgment table. Keeping the thresholds and wording
// in one place makes the rule set testable as data.
var moodRules = []moodRule{
	{
		Aspect:      AspectEnergy,
		Feature:     Energy,
		HighCut:     0.7,
		ModerateCut: 0.4,
		High:        "High energy - You prefer energetic, upbeat music!",
		Moderate:    "Moderate energy - You enjoy a balanced mix of energetic and calm music.",
		Low:         "Low energy - You prefer calm, relaxing music.",
	},
	{
		Aspect:      AspectMood,
		Feature:     Valence,
		HighCut:     0.7,
		ModerateCut: 0.4,
		High:        "Positive mood - Your music choices reflect a happy, upbeat personality!",
		Moderate:    "Balanced mood - You enjoy a mix of happy and melancholic music.",
		Low:         "Melancholic mood - You prefer introspective, emotional music.",
	},
	{
		Aspect:      AspectDance,
		Feature:     Danceability,
		HighCut:     0.7,
		ModerateCut: 0.4,
		High:        "High danceability - You love music you can dance to!",
		Moderate:    "Moderate danceability - You enjoy some danceable tracks.",
		Low:         "Low danceability - You prefer music for listening rather than dancing.",
	},
	{
		Aspect:      AspectAcoustic,
		Feature:     Acousticness,
		HighCut:     0.7,
		ModerateCut: 0.4,
		High:        "High acoustic preference - You love organic, acoustic sounds!",
		Moderate:    "Mixed acoustic preference - You enjoy both acoustic and electronic music.",
		Low:         "Electronic preference - You prefer electronic and produced music.",
	},
}

// MoodProfile derives the four categorical mood labels from a feature
// summary. Each judgment uses the summary mean, not the raw distribution.
// An empty summary yields an empty profile.
func MoodProfile(summary FeatureSummary) map[MoodAspect]string {
	profile := make(map[MoodAspect]string)
	if len(summary) == 0 {
		return profile
	}

	for _, rule := range moodRules {
		mean := summary[rule.Feature] // absent feature reads as 0, judged low
		switch {
		case mean > rule.HighCut:
			profile[rule.Aspect] = rule.High
		case mean > rule.ModerateCut:
			profile[rule.Aspect] = rule.Moderate
		default:
			profile[rule.Aspect] = rule.Low
		}
	}
	return profile
}

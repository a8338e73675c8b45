package mastery

// Label is the mastery band a concept falls into.
type Label string

const (
	LabelWeak     Label = "weak"
	LabelModerate Label = "moderate"
	LabelGood     Label = "good"
	LabelStrong   Label = "strong"
	LabelTooEarly Label = "too_early"
)

// Ease thresholds for each band, checked from the top down.
const (
	StrongEase   = 2.5
	GoodEase     = 2.3
	ModerateEase = 1.8
)

// Minimum samples before a group is labelled at all.
const (
	MinConceptSamples = 3
	MinModuleSamples  = 5
)

// RecencyHalfDays is the age, in days, at which a review counts half.
const RecencyHalfDays = 30.0

// LabelFor returns the band for a weighted average ease over samples entries.
func LabelFor(avgEase float64, samples, minSamples int) Label {
	switch {
	case samples < minSamples:
		return LabelTooEarly
	case avgEase >= StrongEase:
		return LabelStrong
	case avgEase >= GoodEase:
		return LabelGood
	case avgEase >= ModerateEase:
		return LabelModerate
	default:
		return LabelWeak
	}
}

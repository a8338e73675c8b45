package mastery

// String returns the label as shown to learners.
func (l Label) String() string {
	switch l {
	case LabelWeak:
		return "Weak"
	case LabelModerate:
		return "Moderate"
	case LabelGood:
		return "Good"
	case LabelStrong:
		return "Strong"
	case LabelTooEarly:
		return "Too early"
	default:
		return string(l)
	}
}

// Hint returns a one-line suggestion for a concept in this band.
func (l Label) Hint() string {
	switch l {
	case LabelWeak:
		return "needs review"
	case LabelModerate:
		return "keep practising"
	case LabelGood:
		return "nearly there"
	case LabelStrong:
		return "well retained"
	default:
		return "not enough reviews yet"
	}
}

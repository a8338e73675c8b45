package spacedrep

// Self-ratings captured after an item is finished.
const (
	RatingSolved         = 1
	RatingStruggled      = 2
	RatingNeededSolution = 3
)

// Outcome is what the learner reported, and what they looked at, while
// working an item. SelfRating is 0 when the learner has not rated yet.
type Outcome struct {
	SelfRating     int  `json:"self_rating,omitempty"`
	HintsUsed      bool `json:"hints_used,omitempty"`
	SolutionViewed bool `json:"solution_viewed,omitempty"`
}

// DeriveQuality maps an outcome to a 0..5 quality score.
func DeriveQuality(o Outcome) int {
	switch o.SelfRating {
	case RatingSolved:
		if o.HintsUsed {
			return 4
		}
		return 5
	case RatingStruggled:
		return PassingQuality
	case RatingNeededSolution:
		return 1
	}

	switch {
	case !o.HintsUsed && !o.SolutionViewed:
		return 4
	case o.HintsUsed && !o.SolutionViewed:
		return 3
	default:
		return 2
	}
}

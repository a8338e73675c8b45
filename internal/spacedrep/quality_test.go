package spacedrep

import "testing"

func TestDeriveQuality(t *testing.T) {
	tests := []struct {
		name string
		in   Outcome
		want int
	}{
		{"solved alone", Outcome{SelfRating: RatingSolved}, 5},
		{"solved with hints", Outcome{SelfRating: RatingSolved, HintsUsed: true}, 4},
		{"struggled", Outcome{SelfRating: RatingStruggled}, 3},
		{"struggled with solution", Outcome{SelfRating: RatingStruggled, SolutionViewed: true}, 3},
		{"needed solution", Outcome{SelfRating: RatingNeededSolution}, 1},
		{"unrated clean", Outcome{}, 4},
		{"unrated hints", Outcome{HintsUsed: true}, 3},
		{"unrated solution", Outcome{SolutionViewed: true}, 2},
		{"unrated hints and solution", Outcome{HintsUsed: true, SolutionViewed: true}, 2},
		{"unknown rating falls back", Outcome{SelfRating: 7, HintsUsed: true}, 3},
	}
	for _, tt := range tests {
		if got := DeriveQuality(tt.in); got != tt.want {
			t.Errorf("%s: DeriveQuality() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

package session

import (
	"context"
	"time"

	"github.com/abhisek/drill/internal/spacedrep"
)

// Summary holds the data displayed when a run completes.
type Summary struct {
	SessionID string
	Duration  time.Duration
	Total     int
	Completed int
	Skipped   int

	// Ratings counts completed items by self-rating (1, 2 or 3).
	Ratings map[int]int

	// Unrated counts completed items without a self-rating.
	Unrated int
}

// Rated returns the number of completed items that carry a self-rating.
func (s Summary) Rated() int {
	n := 0
	for _, c := range s.Ratings {
		n += c
	}
	return n
}

// BuildSummary tallies the self-ratings of the completed keys.
func BuildSummary(ctx context.Context, id string, total int, tally Tally, completed []string, progress *ProgressStore, elapsed time.Duration) Summary {
	s := Summary{
		SessionID: id,
		Duration:  elapsed,
		Total:     total,
		Completed: tally.Completed,
		Skipped:   tally.Skipped,
		Ratings:   make(map[int]int),
	}
	for _, key := range completed {
		var rating int
		if progress != nil {
			ip, _ := progress.Get(ctx, key)
			rating = ip.SelfRating
		}
		switch rating {
		case spacedrep.RatingSolved, spacedrep.RatingStruggled, spacedrep.RatingNeededSolution:
			s.Ratings[rating]++
		default:
			s.Unrated++
		}
	}
	return s
}

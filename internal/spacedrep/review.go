package spacedrep

import "time"

// ScheduleEntry holds the spaced repetition state for a single practice item.
type ScheduleEntry struct {
	Key         string    `json:"key"`
	EaseFactor  float64   `json:"ease_factor"`
	Interval    int       `json:"interval"`
	Repetitions int       `json:"repetitions"`
	NextReview  time.Time `json:"next_review"`
	LastQuality int       `json:"last_quality"`
	ReviewCount int       `json:"review_count"`
	Label       string    `json:"label,omitempty"`
	LastReview  time.Time `json:"last_review,omitzero"`
}

// NewEntry returns the seed entry used before an item's first review.
func NewEntry(key string, now time.Time) ScheduleEntry {
	return ScheduleEntry{
		Key:        key,
		EaseFactor: DefaultEase,
		NextReview: now,
	}
}

// DisplayName returns the label, or the key when no label was recorded.
func (e ScheduleEntry) DisplayName() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Key
}

// IsDue returns true if the item is due for review (at or past the review date).
func (e ScheduleEntry) IsDue(now time.Time) bool {
	return !now.Before(e.NextReview)
}

// OverdueDays returns how many days past due the item is. Returns 0 if not yet due.
func (e ScheduleEntry) OverdueDays(now time.Time) float64 {
	if now.Before(e.NextReview) {
		return 0
	}
	return now.Sub(e.NextReview).Hours() / 24.0
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (e ScheduleEntry) DaysUntilReview(now time.Time) int {
	if e.IsDue(now) {
		return 0
	}
	return int(e.NextReview.Sub(now).Hours()/24.0) + 1
}

// LastReviewed returns when the item was last reviewed. Entries written
// before the timestamp was recorded fall back to nextReview minus interval.
func (e ScheduleEntry) LastReviewed() time.Time {
	if !e.LastReview.IsZero() {
		return e.LastReview
	}
	return e.NextReview.AddDate(0, 0, -e.Interval)
}

// IsWeak reports whether the entry has enough history to count as weak.
func (e ScheduleEntry) IsWeak() bool {
	return e.Repetitions >= MinWeakRepetitions && e.EaseFactor < WeakEaseThreshold
}

// ReviewStatus describes an item's review status for display.
type ReviewStatus string

const (
	ReviewLearning ReviewStatus = "learning"
	ReviewNotDue   ReviewStatus = "not_due"
	ReviewDue      ReviewStatus = "due"
	ReviewOverdue  ReviewStatus = "overdue"
	ReviewMature   ReviewStatus = "mature"
)

// Status returns the review status for UI display. An item is overdue once
// it has gone unreviewed for more than half its interval past the due date.
func (e ScheduleEntry) Status(now time.Time) ReviewStatus {
	if e.IsDue(now) {
		grace := float64(e.Interval) * 0.5
		if e.OverdueDays(now) > grace {
			return ReviewOverdue
		}
		return ReviewDue
	}
	if e.Repetitions < MinWeakRepetitions {
		return ReviewLearning
	}
	if e.Interval >= MatureIntervalDays {
		return ReviewMature
	}
	return ReviewNotDue
}

package spacedrep

import (
	"math"
	"time"
)

const (
	// DefaultEase is the ease factor every new item starts with.
	DefaultEase = 2.5

	// MinEase is the ease factor floor.
	MinEase = 1.3

	// PassingQuality is the lowest quality that counts as a successful review.
	PassingQuality = 3

	// MaxQuality is the top of the 0..5 quality scale.
	MaxQuality = 5

	// FirstInterval and SecondInterval are the fixed intervals, in days,
	// after the first and second consecutive passing reviews.
	FirstInterval  = 1
	SecondInterval = 6

	// WeakEaseThreshold and MinWeakRepetitions bound the weakest list: a
	// single review is not enough evidence of weakness.
	WeakEaseThreshold  = 2.5
	MinWeakRepetitions = 2

	// MatureIntervalDays is the interval at which an item counts as mature.
	MatureIntervalDays = 21
)

// Apply returns e after a review of the given quality at now. Quality is
// clamped to 0..5. The interval grows with the ease factor held before
// this review; the ease factor is then adjusted whether or not the
// review passed.
func Apply(e ScheduleEntry, quality int, now time.Time) ScheduleEntry {
	q := clampQuality(quality)

	if q >= PassingQuality {
		switch e.Repetitions {
		case 0:
			e.Interval = FirstInterval
		case 1:
			e.Interval = SecondInterval
		default:
			e.Interval = int(math.Round(float64(e.Interval) * e.EaseFactor))
			if e.Interval < FirstInterval {
				e.Interval = FirstInterval
			}
		}
		e.Repetitions++
	} else {
		e.Repetitions = 0
		e.Interval = FirstInterval
	}

	d := float64(MaxQuality - q)
	e.EaseFactor += 0.1 - d*(0.08+d*0.02)
	if e.EaseFactor < MinEase {
		e.EaseFactor = MinEase
	}

	e.NextReview = now.AddDate(0, 0, e.Interval)
	e.LastQuality = q
	e.LastReview = now
	e.ReviewCount++
	return e
}

func clampQuality(q int) int {
	if q < 0 {
		return 0
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}

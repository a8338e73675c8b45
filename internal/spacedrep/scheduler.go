package spacedrep

import (
	"context"
	"sort"
	"time"

	"github.com/abhisek/drill/internal/logger"
	"github.com/abhisek/drill/internal/notify"
	"github.com/abhisek/drill/internal/store"
)

// Scheduler applies reviews to the persisted schedule and answers
// due and weakest queries. Storage failures never reach the caller: a
// failed read is treated as an empty schedule and a failed write is logged.
type Scheduler struct {
	docs *store.Docs
	now  func() time.Time
	bus  *notify.Bus
	log  *logger.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithBus publishes an ItemRated notification after every review.
func WithBus(b *notify.Bus) Option {
	return func(s *Scheduler) { s.bus = b }
}

// WithLogger sets the logger for review events.
func WithLogger(l *logger.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// NewScheduler creates a scheduler over the schedule record in docs.
func NewScheduler(docs *store.Docs, opts ...Option) *Scheduler {
	s := &Scheduler{docs: docs, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	s.log = logger.OrNop(s.log)
	return s
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.now()
}

func (s *Scheduler) load(ctx context.Context) map[string]ScheduleEntry {
	m, _ := store.Load[map[string]ScheduleEntry](ctx, s.docs, store.KeySchedule)
	if m == nil {
		m = make(map[string]ScheduleEntry)
	}
	return m
}

// RecordReview reads or seeds the entry for key, applies a review of the
// given quality, persists the schedule and returns the updated entry. A
// non-empty label replaces the stored one.
func (s *Scheduler) RecordReview(ctx context.Context, key string, quality int, label string) ScheduleEntry {
	now := s.now()
	schedule := s.load(ctx)

	e, ok := schedule[key]
	if !ok {
		e = NewEntry(key, now)
	}
	e.Key = key
	e = Apply(e, quality, now)
	if label != "" {
		e.Label = label
	}

	schedule[key] = e
	s.docs.Save(ctx, store.KeySchedule, schedule)

	s.log.Debug("review recorded",
		"key", key,
		"quality", e.LastQuality,
		"interval", e.Interval,
		"ease", e.EaseFactor,
	)

	s.bus.Publish(ctx, notify.ItemRated{
		Key:        key,
		Label:      e.Label,
		Quality:    e.LastQuality,
		Interval:   e.Interval,
		EaseFactor: e.EaseFactor,
		NextReview: e.NextReview,
		At:         now,
	})
	return e
}

// Entry returns the stored entry for key.
func (s *Scheduler) Entry(ctx context.Context, key string) (ScheduleEntry, bool) {
	e, ok := s.load(ctx)[key]
	if ok {
		e.Key = key
	}
	return e, ok
}

// All returns every stored entry sorted by key.
func (s *Scheduler) All(ctx context.Context) []ScheduleEntry {
	schedule := s.load(ctx)
	entries := make([]ScheduleEntry, 0, len(schedule))
	for key, e := range schedule {
		e.Key = key
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// DueExercises returns every entry due at the scheduler's current time,
// most overdue first.
func (s *Scheduler) DueExercises(ctx context.Context) []ScheduleEntry {
	return Due(s.All(ctx), s.now())
}

// WeakestExercises returns up to n weak entries, lowest ease first.
func (s *Scheduler) WeakestExercises(ctx context.Context, n int) []ScheduleEntry {
	return Weakest(s.All(ctx), n)
}

// Stats summarises the schedule for display.
type Stats struct {
	Total    int
	Due      int
	Learning int
	Mature   int
}

// Stats counts schedule entries by state as of now.
func (s *Scheduler) Stats(ctx context.Context) Stats {
	now := s.now()
	var st Stats
	for _, e := range s.All(ctx) {
		st.Total++
		if e.IsDue(now) {
			st.Due++
		}
		if e.Repetitions < MinWeakRepetitions {
			st.Learning++
		}
		if e.Interval >= MatureIntervalDays {
			st.Mature++
		}
	}
	return st
}

// Due returns the entries whose next review is at or before now, sorted by
// ascending next review. Equally overdue entries put the lowest ease first.
func Due(entries []ScheduleEntry, now time.Time) []ScheduleEntry {
	var due []ScheduleEntry
	for _, e := range entries {
		if e.IsDue(now) {
			due = append(due, e)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if !due[i].NextReview.Equal(due[j].NextReview) {
			return due[i].NextReview.Before(due[j].NextReview)
		}
		if due[i].EaseFactor != due[j].EaseFactor {
			return due[i].EaseFactor < due[j].EaseFactor
		}
		return due[i].Key < due[j].Key
	})
	return due
}

// Weakest returns up to n entries with at least two repetitions and an ease
// factor below 2.5, sorted ascending by ease factor.
func Weakest(entries []ScheduleEntry, n int) []ScheduleEntry {
	if n <= 0 {
		return nil
	}
	var weak []ScheduleEntry
	for _, e := range entries {
		if e.IsWeak() {
			weak = append(weak, e)
		}
	}

	sort.SliceStable(weak, func(i, j int) bool {
		if weak[i].EaseFactor != weak[j].EaseFactor {
			return weak[i].EaseFactor < weak[j].EaseFactor
		}
		return weak[i].Key < weak[j].Key
	})
	if len(weak) > n {
		weak = weak[:n]
	}
	return weak
}

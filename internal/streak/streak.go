// Package streak keeps the daily activity log and the consecutive-day
// practice streak.
package streak

import (
	"context"
	"time"

	"github.com/abhisek/drill/internal/logger"
	"github.com/abhisek/drill/internal/notify"
	"github.com/abhisek/drill/internal/store"
)

// DateLayout is the calendar-day key format, e.g. "2025-02-20".
const DateLayout = "2006-01-02"

// ActivityRecord counts the practice done on one calendar day.
type ActivityRecord struct {
	ItemsCompleted int `json:"items_completed"`
}

// State is the persisted streak record. Current may be stale: it is only
// rewritten on the next activity, and Current() revalidates it on read.
type State struct {
	Current        int    `json:"current"`
	Longest        int    `json:"longest"`
	LastActiveDate string `json:"last_active_date,omitempty"`
}

// Day is one entry of an activity range.
type Day struct {
	Date  string
	Items int
}

// Ledger records activity ticks against the activity and streak records.
type Ledger struct {
	docs *store.Docs
	now  func() time.Time
	log  *logger.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides time.Now. Calendar days are taken in the clock's location.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLogger sets the logger for recorded activity.
func WithLogger(log *logger.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// NewLedger creates a ledger over the streak and activity records in docs.
func NewLedger(docs *store.Docs, opts ...Option) *Ledger {
	l := &Ledger{docs: docs, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	l.log = logger.OrNop(l.log)
	return l
}

func (l *Ledger) activity(ctx context.Context) map[string]ActivityRecord {
	m, _ := store.Load[map[string]ActivityRecord](ctx, l.docs, store.KeyActivity)
	if m == nil {
		m = make(map[string]ActivityRecord)
	}
	return m
}

// RecordActivity adds one completed item to today's record and advances
// the streak. It returns the updated streak state.
func (l *Ledger) RecordActivity(ctx context.Context) State {
	today := l.now().Format(DateLayout)

	days := l.activity(ctx)
	rec := days[today]
	rec.ItemsCompleted++
	days[today] = rec
	l.docs.Save(ctx, store.KeyActivity, days)

	st := Advance(l.State(ctx), today)
	l.docs.Save(ctx, store.KeyStreak, st)

	l.log.Debug("activity recorded", "date", today, "items", rec.ItemsCompleted, "streak", st.Current)
	return st
}

// State returns the stored streak record as written.
func (l *Ledger) State(ctx context.Context) State {
	st, _ := store.Load[State](ctx, l.docs, store.KeyStreak)
	return st
}

// Current returns the streak as of today: 0 if the last active day is more
// than one day ago, otherwise the stored value.
func (l *Ledger) Current(ctx context.Context) int {
	return CurrentAt(l.State(ctx), l.now().Format(DateLayout))
}

// Longest returns the longest streak ever recorded.
func (l *Ledger) Longest(ctx context.Context) int {
	return l.State(ctx).Longest
}

// ActivityOn returns the items completed on the calendar day containing day.
func (l *Ledger) ActivityOn(ctx context.Context, day time.Time) int {
	return l.activity(ctx)[day.Format(DateLayout)].ItemsCompleted
}

// ActivityBetween returns one Day per calendar day from from to to,
// inclusive, with zero-item days included.
func (l *Ledger) ActivityBetween(ctx context.Context, from, to time.Time) []Day {
	days := l.activity(ctx)
	start := truncateDay(from)
	end := truncateDay(to)

	var out []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		out = append(out, Day{Date: key, Items: days[key].ItemsCompleted})
	}
	return out
}

// TotalItems sums every recorded day.
func (l *Ledger) TotalItems(ctx context.Context) int {
	total := 0
	for _, rec := range l.activity(ctx) {
		total += rec.ItemsCompleted
	}
	return total
}

// Attach records one activity tick for every ItemRated published on bus.
// Call the returned function to detach.
func (l *Ledger) Attach(ctx context.Context, bus *notify.Bus) (cancel func()) {
	return bus.Subscribe(func(notify.ItemRated) {
		l.RecordActivity(ctx)
	})
}

// Advance applies an activity on today to st.
func Advance(st State, today string) State {
	gap, ok := daysBetween(st.LastActiveDate, today)
	switch {
	case !ok:
		st.Current = 1
		st.LastActiveDate = today
	case gap <= 0:
		// Same day, or the clock went backwards.
		if st.Current == 0 {
			st.Current = 1
		}
	case gap == 1:
		st.Current++
		st.LastActiveDate = today
	default:
		st.Current = 1
		st.LastActiveDate = today
	}
	if st.Current > st.Longest {
		st.Longest = st.Current
	}
	return st
}

// CurrentAt reports the streak as seen on today without modifying st.
func CurrentAt(st State, today string) int {
	gap, ok := daysBetween(st.LastActiveDate, today)
	if !ok || gap > 1 {
		return 0
	}
	return st.Current
}

// daysBetween returns the number of calendar days from a to b.
func daysBetween(a, b string) (int, bool) {
	if a == "" {
		return 0, false
	}
	da, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0, false
	}
	db, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0, false
	}
	return int(db.Sub(da).Hours() / 24), true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Package screens holds what every drill screen shares: the services a
// screen reads and writes, and the message that refreshes the header.
package screens

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/course"
	"github.com/abhisek/drill/internal/logger"
	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/notify"
	"github.com/abhisek/drill/internal/phase"
	"github.com/abhisek/drill/internal/queue"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/store"
	"github.com/abhisek/drill/internal/streak"
)

// DefaultQueueSize is how many items a weakest or mixed queue aims for.
const DefaultQueueSize = 10

// Deps wires screens to the scheduling core. Course may be nil, in which
// case discover mode is unavailable and labels fall back to item keys.
type Deps struct {
	Ctx       context.Context
	Scheduler *spacedrep.Scheduler
	Queue     *queue.Builder
	Ledger    *streak.Ledger
	Strength  *mastery.Service
	Timer     *phase.Engine
	Progress  *session.ProgressStore
	Course    *course.Course
	Filter    queue.Filter
	QueueSize int
	Log       *logger.Logger
}

// Options tune Wire. Zero values pick defaults.
type Options struct {
	Now       func() time.Time
	Bus       *notify.Bus
	Log       *logger.Logger
	Timer     phase.Settings
	Filter    queue.Filter
	QueueSize int
}

// Wire builds every service over one document store. c may be nil.
func Wire(ctx context.Context, docs *store.Docs, c *course.Course, o Options) Deps {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Timer == (phase.Settings{}) {
		o.Timer = phase.DefaultSettings()
	}
	log := logger.OrNop(o.Log)

	sched := spacedrep.NewScheduler(docs,
		spacedrep.WithClock(o.Now),
		spacedrep.WithBus(o.Bus),
		spacedrep.WithLogger(log),
	)

	var index mastery.Index
	filter := o.Filter
	if c != nil {
		index = c.ConceptIndex()
		if filter == nil {
			filter = c.ModuleFilter("")
		}
	}

	return Deps{
		Ctx:       ctx,
		Scheduler: sched,
		Queue:     queue.NewBuilder(sched),
		Ledger:    streak.NewLedger(docs, streak.WithClock(o.Now), streak.WithLogger(log)),
		Strength:  mastery.NewService(sched, index, o.Now),
		Timer:     phase.NewEngine(phase.NewDocRepo(docs), o.Timer, phase.WithClock(o.Now), phase.WithLogger(log)),
		Progress:  session.NewProgressStore(docs, o.Now),
		Course:    c,
		Filter:    filter,
		QueueSize: o.QueueSize,
		Log:       log,
	}
}

// Context returns the wiring context, or Background when unset.
func (d Deps) Context() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

// Size returns the queue size, defaulting to DefaultQueueSize.
func (d Deps) Size() int {
	if d.QueueSize <= 0 {
		return DefaultQueueSize
	}
	return d.QueueSize
}

// Label returns the display label of key.
func (d Deps) Label(key string) string {
	if d.Course != nil {
		if l := d.Course.Label(key); l != "" {
			return l
		}
	}
	return key
}

// Discover returns a queue of course items with no scheduling history.
func (d Deps) Discover() []spacedrep.ScheduleEntry {
	if d.Course == nil {
		return nil
	}
	ctx := d.Context()
	seen := make(map[string]bool)
	for _, e := range d.Scheduler.All(ctx) {
		seen[e.Key] = true
	}
	now := d.Scheduler.Now()
	var out []spacedrep.ScheduleEntry
	for _, it := range d.Course.Unseen(seen, d.Filter) {
		e := spacedrep.NewEntry(it.Key, now)
		e.Label = it.Label
		out = append(out, e)
	}
	return queue.Truncate(out, d.Size())
}

// BuildQueue returns the practice queue for mode.
func (d Deps) BuildQueue(mode queue.Mode) []spacedrep.ScheduleEntry {
	if mode == queue.ModeDiscover {
		return d.Discover()
	}
	q := d.Queue.Build(d.Context(), mode, d.Size(), d.Filter)
	if mode == queue.ModeReview {
		return q
	}
	return queue.Truncate(q, d.Size())
}

// StatsMsg carries the header counters.
type StatsMsg struct {
	Due    int
	Streak int
}

// StatsCmd reloads the header counters.
func (d Deps) StatsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := d.Context()
		msg := StatsMsg{}
		if d.Scheduler != nil {
			msg.Due = d.Scheduler.Stats(ctx).Due
		}
		if d.Ledger != nil {
			msg.Streak = d.Ledger.Current(ctx)
		}
		return msg
	}
}

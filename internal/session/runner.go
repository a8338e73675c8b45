// Package session runs a learner through a practice queue one item at a time.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/drill/internal/logger"
	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/streak"
)

// ErrEmptyQueue is returned when a run is started with nothing to practice.
var ErrEmptyQueue = errors.New("session: nothing to practice")

// ActivityRecorder receives one tick per completed item.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context) streak.State
}

// Renderer displays the runner's output.
type Renderer interface {
	RenderItem(index, total int, entry spacedrep.ScheduleEntry)
	RenderSummary(s Summary)
}

// Runner drives configuring -> running -> complete over one queue. Items
// are never revisited once advanced past.
type Runner struct {
	activity ActivityRecorder
	progress *ProgressStore
	render   Renderer
	log      *logger.Logger
	now      func() time.Time

	id        string
	queue     []spacedrep.ScheduleEntry
	index     int
	tally     Tally
	status    Status
	completed []string
	startedAt time.Time
	summary   Summary
}

type Option func(*Runner)

func WithRenderer(r Renderer) Option {
	return func(rn *Runner) { rn.render = r }
}

func WithProgress(p *ProgressStore) Option {
	return func(rn *Runner) { rn.progress = p }
}

func WithClock(now func() time.Time) Option {
	return func(rn *Runner) { rn.now = now }
}

func WithLogger(l *logger.Logger) Option {
	return func(rn *Runner) { rn.log = l }
}

// NewRunner creates a runner. activity may be nil.
func NewRunner(activity ActivityRecorder, opts ...Option) *Runner {
	r := &Runner{activity: activity, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	r.log = logger.OrNop(r.log)
	return r
}

// Begin starts a run over queue and renders the first item. It returns
// ErrEmptyQueue, leaving the runner untouched, when queue is empty.
func (r *Runner) Begin(ctx context.Context, queue []spacedrep.ScheduleEntry) error {
	if len(queue) == 0 {
		return ErrEmptyQueue
	}
	r.id = uuid.NewString()
	r.queue = append([]spacedrep.ScheduleEntry(nil), queue...)
	r.index = 0
	r.tally = Tally{}
	r.completed = nil
	r.summary = Summary{}
	r.status = StatusRunning
	r.startedAt = r.now()

	r.log.Info("session started", "session_id", r.id, "items", len(r.queue))
	r.renderCurrent(ctx)
	return nil
}

// Start is Begin reporting success as a bool.
func (r *Runner) Start(ctx context.Context, queue []spacedrep.ScheduleEntry) bool {
	return r.Begin(ctx, queue) == nil
}

// Next marks the current item completed, records an activity tick and
// advances. It does nothing unless the runner is running.
func (r *Runner) Next(ctx context.Context) {
	if r.status != StatusRunning {
		return
	}
	r.tally.Completed++
	r.completed = append(r.completed, r.queue[r.index].Key)
	if r.activity != nil {
		r.activity.RecordActivity(ctx)
	}
	r.advance(ctx)
}

// Skip advances past the current item without an activity tick.
func (r *Runner) Skip(ctx context.Context) {
	if r.status != StatusRunning {
		return
	}
	r.tally.Skipped++
	r.advance(ctx)
}

func (r *Runner) advance(ctx context.Context) {
	r.index++
	if r.index < len(r.queue) {
		r.renderCurrent(ctx)
		return
	}

	r.status = StatusComplete
	r.summary = BuildSummary(ctx, r.id, len(r.queue), r.tally, r.completed, r.progress, r.now().Sub(r.startedAt))
	r.log.Info("session complete",
		"session_id", r.id,
		"completed", r.tally.Completed,
		"skipped", r.tally.Skipped,
	)
	if r.render != nil {
		r.render.RenderSummary(r.summary)
	}
}

func (r *Runner) renderCurrent(ctx context.Context) {
	e := r.queue[r.index]
	if r.progress != nil {
		r.progress.Begin(ctx, e.Key)
	}
	if r.render != nil {
		r.render.RenderItem(r.index, len(r.queue), e)
	}
}

// Current returns the item being served.
func (r *Runner) Current() (spacedrep.ScheduleEntry, bool) {
	if r.status != StatusRunning {
		return spacedrep.ScheduleEntry{}, false
	}
	return r.queue[r.index], true
}

// State returns a snapshot of the runner.
func (r *Runner) State() State {
	st := State{
		SessionID: r.id,
		Status:    r.status,
		Index:     r.index,
		Total:     len(r.queue),
		Tally:     r.tally,
	}
	if cur, ok := r.Current(); ok {
		st.Current = &cur
	}
	return st
}

// Summary returns the summary of a completed run. Before completion it
// reports the tally so far.
func (r *Runner) Summary(ctx context.Context) Summary {
	switch r.status {
	case StatusConfiguring:
		return Summary{Ratings: map[int]int{}}
	case StatusComplete:
		return r.summary
	}
	return BuildSummary(ctx, r.id, len(r.queue), r.tally, r.completed, r.progress, r.now().Sub(r.startedAt))
}

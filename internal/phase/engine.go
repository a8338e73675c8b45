package phase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/drill/internal/logger"
)

// Listener is called with the current state after every change and tick.
type Listener func(State)

// Engine applies the pure transitions to the persisted session record.
// It holds no session state of its own.
type Engine struct {
	mu        sync.Mutex
	repo      Repo
	settings  Settings
	now       func() time.Time
	log       *logger.Logger
	listeners []Listener
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger for session lifecycle events.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine returns an engine that stores its state in repo. settings
// seed every state it creates.
func NewEngine(repo Repo, settings Settings, opts ...Option) *Engine {
	e := &Engine{repo: repo, settings: settings, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	e.log = logger.OrNop(e.log)
	return e
}

// OnChange registers a listener.
func (e *Engine) OnChange(fn Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Settings returns the phase lengths used for new sessions.
func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Configure replaces the phase lengths for sessions created afterwards.
// A session already in progress keeps the lengths it was created with.
func (e *Engine) Configure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings = s
	return nil
}

// Now returns the engine's clock reading.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Create replaces any existing session with a fresh, paused one.
func (e *Engine) Create(ctx context.Context) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := New(uuid.NewString(), e.settings)
	e.commit(ctx, s)
	e.log.Info("timer session created", "session_id", s.ID, "focus_minutes", s.FocusMinutes)
	return s
}

// Start creates a fresh session and resumes it, entering prep.
func (e *Engine) Start(ctx context.Context) State {
	e.Create(ctx)
	s, _ := e.Resume(ctx)
	return s
}

// Pause freezes the running session. ok is false when there is no session.
func (e *Engine) Pause(ctx context.Context) (State, bool) {
	return e.update(ctx, Pause)
}

// Resume restarts a paused session. ok is false when there is no session.
func (e *Engine) Resume(ctx context.Context) (State, bool) {
	return e.update(ctx, Resume)
}

// Hide pauses the session and stops driving it, keeping the record so it
// can be resumed later.
func (e *Engine) Hide(ctx context.Context) (State, bool) {
	return e.update(ctx, Pause)
}

// Reset removes the session record.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.repo.Clear(ctx)
	e.log.Info("timer session reset")
}

// Tick advances the session to now and reports whether it is still
// running. A false return means the caller should stop ticking.
func (e *Engine) Tick(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	cur, ok := e.repo.Load(ctx)
	if !ok || cur.Status != StatusRunning {
		return false
	}
	next := Transition(cur, e.now())
	if next != cur {
		e.log.Debug("phase changed", "from", cur.Phase, "to", next.Phase, "cycles", next.CompletedCycles)
		e.repo.Save(ctx, next)
	}
	e.notify(next)
	return next.Status == StatusRunning
}

// State returns the session as of now, without persisting any catch-up.
func (e *Engine) State(ctx context.Context) (State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.repo.Load(ctx)
	if !ok {
		return State{}, false
	}
	return Transition(s, e.now()), true
}

// Status returns the display view of the session.
func (e *Engine) Status(ctx context.Context) (Report, bool) {
	s, ok := e.State(ctx)
	if !ok {
		return Report{}, false
	}
	return s.Report(e.now()), true
}

func (e *Engine) update(ctx context.Context, fn func(State, time.Time) State) (State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cur, ok := e.repo.Load(ctx)
	if !ok {
		return State{}, false
	}
	next := fn(cur, e.now())
	e.commit(ctx, next)
	return next, true
}

func (e *Engine) commit(ctx context.Context, s State) {
	e.repo.Save(ctx, s)
	e.notify(s)
}

func (e *Engine) notify(s State) {
	for _, fn := range e.listeners {
		fn(s)
	}
}

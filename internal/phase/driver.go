package phase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/abhisek/drill/internal/logger"
)

// Driver runs an engine's one-second tick on a gocron scheduler, plus an
// optional periodic reminder job.
type Driver struct {
	engine      *Engine
	log         *logger.Logger
	loc         *time.Location
	remind      func(ctx context.Context)
	remindEvery time.Duration
}

type DriverOption func(*Driver)

// WithReminder runs fn every interval while the driver is running.
func WithReminder(every time.Duration, fn func(ctx context.Context)) DriverOption {
	return func(d *Driver) {
		d.remindEvery = every
		d.remind = fn
	}
}

func WithDriverLogger(l *logger.Logger) DriverOption {
	return func(d *Driver) { d.log = l }
}

func NewDriver(engine *Engine, opts ...DriverOption) *Driver {
	d := &Driver{engine: engine, loc: time.UTC}
	for _, o := range opts {
		o(d)
	}
	d.log = logger.OrNop(d.log)
	return d
}

// Run ticks the engine every second until the session stops running or
// ctx is cancelled. It returns nil when the session stopped on its own.
func (d *Driver) Run(ctx context.Context) error {
	s := gocron.NewScheduler(d.loc)
	s.SingletonModeAll()

	stopped := make(chan struct{})
	var once sync.Once

	_, err := s.Every(1).Second().Do(func() {
		if !d.engine.Tick(ctx) {
			once.Do(func() { close(stopped) })
		}
	})
	if err != nil {
		return fmt.Errorf("schedule tick: %w", err)
	}

	if d.remind != nil && d.remindEvery > 0 {
		_, err := s.Every(d.remindEvery).WaitForSchedule().Do(func() { d.remind(ctx) })
		if err != nil {
			return fmt.Errorf("schedule reminder: %w", err)
		}
	}

	s.StartAsync()
	defer s.Stop()
	d.log.Debug("timer driver started")

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-stopped:
		d.log.Debug("timer driver stopped: session not running")
		return nil
	}
}

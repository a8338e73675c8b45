// Package notify carries "item rated" completion notifications from the
// scheduler to whoever wants to react to progress.
package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/abhisek/drill/internal/logger"
)

// ItemRated is raised every time a practice item receives a quality outcome.
type ItemRated struct {
	Key        string    `json:"key"`
	Label      string    `json:"label,omitempty"`
	Quality    int       `json:"quality"`
	Interval   int       `json:"interval"`
	EaseFactor float64   `json:"ease_factor"`
	NextReview time.Time `json:"next_review"`
	At         time.Time `json:"at"`
}

// Handler receives notifications. Handlers run synchronously on the
// publisher's goroutine and must not block.
type Handler func(ItemRated)

// Forwarder relays notifications outside the process.
type Forwarder interface {
	Publish(ctx context.Context, ev ItemRated) error
}

// Bus is an in-process observer list with an optional remote forwarder.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]Handler
	nextID int

	forward Forwarder
	log     *logger.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithForwarder relays every published notification through f.
func WithForwarder(f Forwarder) Option {
	return func(b *Bus) { b.forward = f }
}

// WithLogger sets the logger used for forwarding failures.
func WithLogger(l *logger.Logger) Option {
	return func(b *Bus) { b.log = l }
}

// New returns an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{subs: make(map[int]Handler)}
	for _, o := range opts {
		o(b)
	}
	b.log = logger.OrNop(b.log)
	return b
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn Handler) (cancel func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers ev to every subscriber in subscription order, then to
// the forwarder. A forwarding failure is logged, never returned.
func (b *Bus) Publish(ctx context.Context, ev ItemRated) {
	if b == nil {
		return
	}
	for _, h := range b.handlers() {
		h(ev)
	}
	if b.forward != nil {
		if err := b.forward.Publish(ctx, ev); err != nil {
			b.log.Warn("forward notification failed", "key", ev.Key, "error", err)
		}
	}
}

// Len reports the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Bus) handlers() []Handler {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	hs := make([]Handler, len(ids))
	for i, id := range ids {
		hs[i] = b.subs[id]
	}
	return hs
}

// Package queue turns scheduling state into ordered practice queues.
package queue

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/drill/internal/spacedrep"
)

// Mode selects how a queue is composed.
type Mode string

const (
	ModeReview  Mode = "review"
	ModeWeakest Mode = "weakest"
	ModeMixed   Mode = "mixed"

	// ModeDiscover means there is no scheduling history yet. Build returns
	// nothing for it; the caller offers unseen content instead.
	ModeDiscover Mode = "discover"
)

// Preselection thresholds.
const (
	MinDueForReview   = 5
	MinWeakForWeakest = 3
	WeakPreselectEase = 2.0
)

// ParseMode converts a user-supplied mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeReview, ModeWeakest, ModeMixed, ModeDiscover:
		return m, nil
	}
	return "", fmt.Errorf("unknown queue mode %q (want review, weakest, mixed or discover)", s)
}

// Filter reports whether an item key belongs in the queue. A nil Filter
// accepts every key.
type Filter func(key string) bool

// Accept reports whether key passes f.
func (f Filter) Accept(key string) bool {
	return f == nil || f(key)
}

// Source is the part of the scheduler the builder reads.
type Source interface {
	All(ctx context.Context) []spacedrep.ScheduleEntry
	DueExercises(ctx context.Context) []spacedrep.ScheduleEntry
	WeakestExercises(ctx context.Context, n int) []spacedrep.ScheduleEntry
}

// Builder composes queues from a scheduler.
type Builder struct {
	src Source
}

func NewBuilder(src Source) *Builder {
	return &Builder{src: src}
}

// Build returns the candidates for mode, then applies filter. Review
// queues are not truncated to count; the caller decides how many to run.
// Weakest queues over-fetch 2*count so filtering still leaves enough.
func (b *Builder) Build(ctx context.Context, mode Mode, count int, filter Filter) []spacedrep.ScheduleEntry {
	var candidates []spacedrep.ScheduleEntry
	switch mode {
	case ModeReview:
		candidates = b.src.DueExercises(ctx)
	case ModeWeakest:
		candidates = b.src.WeakestExercises(ctx, 2*count)
	case ModeMixed:
		candidates = Union(b.src.DueExercises(ctx), b.src.WeakestExercises(ctx, count))
	default:
		return nil
	}
	return apply(candidates, filter)
}

// PreselectBestMode recommends a default mode for the filtered content.
func (b *Builder) PreselectBestMode(ctx context.Context, filter Filter) Mode {
	if len(apply(b.src.DueExercises(ctx), filter)) >= MinDueForReview {
		return ModeReview
	}

	weak := 0
	for _, e := range apply(b.src.WeakestExercises(ctx, math.MaxInt32), filter) {
		if e.EaseFactor < WeakPreselectEase {
			weak++
		}
	}
	if weak >= MinWeakForWeakest {
		return ModeWeakest
	}

	if len(apply(b.src.All(ctx), filter)) > 0 {
		return ModeMixed
	}
	return ModeDiscover
}

// Union concatenates lists, keeping the first occurrence of each key.
func Union(lists ...[]spacedrep.ScheduleEntry) []spacedrep.ScheduleEntry {
	seen := make(map[string]bool)
	var out []spacedrep.ScheduleEntry
	for _, list := range lists {
		for _, e := range list {
			if seen[e.Key] {
				continue
			}
			seen[e.Key] = true
			out = append(out, e)
		}
	}
	return out
}

// Truncate returns at most n entries.
func Truncate(q []spacedrep.ScheduleEntry, n int) []spacedrep.ScheduleEntry {
	if n >= 0 && len(q) > n {
		return q[:n]
	}
	return q
}

// Keys returns the item keys of q in order.
func Keys(q []spacedrep.ScheduleEntry) []string {
	keys := make([]string, len(q))
	for i, e := range q {
		keys[i] = e.Key
	}
	return keys
}

func apply(entries []spacedrep.ScheduleEntry, filter Filter) []spacedrep.ScheduleEntry {
	if filter == nil {
		return entries
	}
	var out []spacedrep.ScheduleEntry
	for _, e := range entries {
		if filter.Accept(e.Key) {
			out = append(out, e)
		}
	}
	return out
}

// KeySet returns a Filter accepting exactly keys.
func KeySet(keys []string) Filter {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return func(key string) bool { return set[key] }
}

// Prefix returns a Filter accepting keys that start with p.
func Prefix(p string) Filter {
	return func(key string) bool { return strings.HasPrefix(key, p) }
}

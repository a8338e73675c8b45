package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/store"
	"github.com/abhisek/drill/internal/streak"
)

type countingActivity struct{ ticks int }

func (c *countingActivity) RecordActivity(context.Context) streak.State {
	c.ticks++
	return streak.State{Current: 1}
}

type recordingRenderer struct {
	items     []string
	summaries []Summary
}

func (r *recordingRenderer) RenderItem(index, total int, e spacedrep.ScheduleEntry) {
	r.items = append(r.items, e.Key)
}

func (r *recordingRenderer) RenderSummary(s Summary) {
	r.summaries = append(r.summaries, s)
}

func queueOf(keys ...string) []spacedrep.ScheduleEntry {
	q := make([]spacedrep.ScheduleEntry, len(keys))
	for i, k := range keys {
		q[i] = spacedrep.ScheduleEntry{Key: k, EaseFactor: spacedrep.DefaultEase}
	}
	return q
}

func newTestRunner(t *testing.T) (*Runner, *countingActivity, *recordingRenderer, *ProgressStore) {
	t.Helper()
	clock := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	act := &countingActivity{}
	rend := &recordingRenderer{}
	progress := NewProgressStore(store.NewDocs(store.NewMemory(), nil), now)
	r := NewRunner(act, WithRenderer(rend), WithProgress(progress), WithClock(now))
	return r, act, rend, progress
}

func TestStart_EmptyQueueFails(t *testing.T) {
	r, _, rend, _ := newTestRunner(t)

	if r.Start(context.Background(), nil) {
		t.Error("Start(empty) = true, want false")
	}
	if err := r.Begin(context.Background(), nil); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("Begin(empty) error = %v, want ErrEmptyQueue", err)
	}
	if r.State().Status != StatusConfiguring {
		t.Errorf("Status = %v, want configuring", r.State().Status)
	}
	if len(rend.items) != 0 {
		t.Errorf("rendered %v on empty queue", rend.items)
	}
}

func TestRunThroughQueue(t *testing.T) {
	ctx := context.Background()
	r, act, rend, _ := newTestRunner(t)

	if !r.Start(ctx, queueOf("a", "b", "c")) {
		t.Fatal("Start() = false")
	}
	if st := r.State(); st.Status != StatusRunning || st.Current == nil || st.Current.Key != "a" {
		t.Fatalf("State() after start = %+v", st)
	}
	if r.State().SessionID == "" {
		t.Error("expected a session id")
	}

	r.Next(ctx)
	r.Skip(ctx)
	r.Next(ctx)

	st := r.State()
	if st.Status != StatusComplete {
		t.Errorf("Status = %v, want complete", st.Status)
	}
	if st.Tally != (Tally{Completed: 2, Skipped: 1}) {
		t.Errorf("Tally = %+v", st.Tally)
	}
	if act.ticks != 2 {
		t.Errorf("activity ticks = %d, want 2 (skip does not tick)", act.ticks)
	}
	if got := rend.items; len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("rendered items = %v", got)
	}
	if len(rend.summaries) != 1 {
		t.Fatalf("rendered %d summaries, want 1", len(rend.summaries))
	}
}

func TestNextAfterCompleteIsNoop(t *testing.T) {
	ctx := context.Background()
	r, act, rend, _ := newTestRunner(t)
	r.Start(ctx, queueOf("a"))
	r.Next(ctx)

	r.Next(ctx)
	r.Skip(ctx)

	if act.ticks != 1 {
		t.Errorf("ticks = %d, want 1", act.ticks)
	}
	if len(rend.summaries) != 1 {
		t.Errorf("summaries = %d, want 1", len(rend.summaries))
	}
	if _, ok := r.Current(); ok {
		t.Error("Current() ok after completion")
	}
}

func TestNextBeforeStartIsNoop(t *testing.T) {
	r, act, _, _ := newTestRunner(t)
	r.Next(context.Background())
	r.Skip(context.Background())
	if act.ticks != 0 || r.State().Tally != (Tally{}) {
		t.Errorf("runner changed before start: ticks=%d tally=%+v", act.ticks, r.State().Tally)
	}
}

func TestSummaryBreaksDownRatings(t *testing.T) {
	ctx := context.Background()
	r, _, rend, progress := newTestRunner(t)
	r.Start(ctx, queueOf("a", "b", "c", "d", "e"))

	progress.Rate(ctx, "a", spacedrep.RatingSolved)
	r.Next(ctx)
	progress.Rate(ctx, "b", spacedrep.RatingNeededSolution)
	r.Next(ctx)
	progress.Rate(ctx, "c", spacedrep.RatingSolved)
	r.Skip(ctx) // skipped items do not count
	r.Next(ctx) // d unrated
	progress.Rate(ctx, "e", spacedrep.RatingSolved)
	r.Next(ctx)

	s := rend.summaries[0]
	if s.Ratings[1] != 2 || s.Ratings[3] != 1 || s.Ratings[2] != 0 {
		t.Errorf("Ratings = %v", s.Ratings)
	}
	if s.Unrated != 1 {
		t.Errorf("Unrated = %d, want 1", s.Unrated)
	}
	if s.Rated() != 3 || s.Completed != 4 || s.Skipped != 1 || s.Total != 5 {
		t.Errorf("summary = %+v", s)
	}
	if got := r.Summary(ctx); got.SessionID != s.SessionID {
		t.Errorf("Summary() id = %q, want %q", got.SessionID, s.SessionID)
	}
}

func TestRestartClearsPreviousRun(t *testing.T) {
	ctx := context.Background()
	r, _, _, _ := newTestRunner(t)
	r.Start(ctx, queueOf("a"))
	first := r.State().SessionID
	r.Next(ctx)

	r.Start(ctx, queueOf("x", "y"))
	st := r.State()
	if st.SessionID == first {
		t.Error("expected a fresh session id")
	}
	if st.Tally != (Tally{}) || st.Index != 0 || st.Total != 2 {
		t.Errorf("State() after restart = %+v", st)
	}
}

func TestRunnerWithoutCollaborators(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil)
	if !r.Start(ctx, queueOf("a")) {
		t.Fatal("Start() = false")
	}
	r.Next(ctx)
	s := r.Summary(ctx)
	if s.Completed != 1 || s.Unrated != 1 {
		t.Errorf("Summary() = %+v", s)
	}
}

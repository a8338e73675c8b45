package screens

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drill/internal/course"
	"github.com/abhisek/drill/internal/queue"
	"github.com/abhisek/drill/internal/store"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

const manifest = `
course: go-basics
title: Go Basics
modules:
  - id: m1
    title: Values
    items:
      - {key: m1_a, label: Declare, concept: variables}
      - {key: m1_b, label: Zero values, concept: variables}
  - id: m2
    title: Control flow
    items:
      - {key: m2_a, label: FizzBuzz, concept: loops}
`

func testDeps(t *testing.T) Deps {
	t.Helper()
	c, err := course.Parse([]byte(manifest))
	require.NoError(t, err)
	docs := store.NewDocs(store.NewMemory(), nil)
	return Wire(context.Background(), docs, c, Options{Now: func() time.Time { return t0 }, QueueSize: 2})
}

func TestDiscoverReturnsUnseenItems(t *testing.T) {
	d := testDeps(t)
	d.Scheduler.RecordReview(d.Context(), "m1_a", 5, "Declare")

	q := d.BuildQueue(queue.ModeDiscover)
	require.Len(t, q, 2)
	assert.Equal(t, "m1_b", q[0].Key)
	assert.Equal(t, "Zero values", q[0].Label)
	assert.Equal(t, "m2_a", q[1].Key)
}

func TestDiscoverWithoutCourse(t *testing.T) {
	d := testDeps(t)
	d.Course = nil
	assert.Empty(t, d.BuildQueue(queue.ModeDiscover))
}

func TestBuildQueueTruncatesAllButReview(t *testing.T) {
	c, err := course.Parse([]byte(manifest))
	require.NoError(t, err)
	now := t0
	d := Wire(context.Background(), store.NewDocs(store.NewMemory(), nil), c,
		Options{Now: func() time.Time { return now }, QueueSize: 2})
	for _, k := range []string{"m1_a", "m1_b", "m2_a"} {
		d.Scheduler.RecordReview(d.Context(), k, 1, "")
	}
	now = now.AddDate(0, 0, 2)

	assert.Len(t, d.BuildQueue(queue.ModeReview), 3)
	assert.Len(t, d.BuildQueue(queue.ModeMixed), 2)
}

func TestLabelFallsBackToKey(t *testing.T) {
	d := testDeps(t)
	assert.Equal(t, "FizzBuzz", d.Label("m2_a"))
	assert.Equal(t, "unknown", d.Label("unknown"))
}

func TestStatsCmd(t *testing.T) {
	d := testDeps(t)
	ctx := d.Context()
	d.Scheduler.RecordReview(ctx, "m1_a", 5, "")
	d.Ledger.RecordActivity(ctx)

	msg, ok := d.StatsCmd()().(StatsMsg)
	require.True(t, ok)
	assert.Equal(t, 0, msg.Due)
	assert.Equal(t, 1, msg.Streak)
}

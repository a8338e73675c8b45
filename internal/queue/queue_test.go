package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/store"
)

type stubSource struct {
	all     []spacedrep.ScheduleEntry
	due     []spacedrep.ScheduleEntry
	weakest []spacedrep.ScheduleEntry
	weakN   []int
}

func (s *stubSource) All(context.Context) []spacedrep.ScheduleEntry { return s.all }
func (s *stubSource) DueExercises(context.Context) []spacedrep.ScheduleEntry {
	return s.due
}
func (s *stubSource) WeakestExercises(_ context.Context, n int) []spacedrep.ScheduleEntry {
	s.weakN = append(s.weakN, n)
	return spacedrep.Weakest(s.weakest, n)
}

func e(key string, ease float64) spacedrep.ScheduleEntry {
	return spacedrep.ScheduleEntry{Key: key, EaseFactor: ease, Repetitions: 2}
}

func TestMixedDedupesDueFirst(t *testing.T) {
	src := &stubSource{
		due:     []spacedrep.ScheduleEntry{e("A", 2.5), e("B", 2.0)},
		weakest: []spacedrep.ScheduleEntry{e("B", 2.0), e("C", 2.1)},
	}
	got := NewBuilder(src).Build(context.Background(), ModeMixed, 2, nil)
	assert.Equal(t, []string{"A", "B", "C"}, Keys(got))
}

func TestWeakestOverFetches(t *testing.T) {
	src := &stubSource{}
	NewBuilder(src).Build(context.Background(), ModeWeakest, 5, nil)
	require.Len(t, src.weakN, 1)
	assert.Equal(t, 10, src.weakN[0])
}

func TestReviewIsUnbounded(t *testing.T) {
	var due []spacedrep.ScheduleEntry
	for _, k := range []string{"a", "b", "c", "d"} {
		due = append(due, e(k, 2.5))
	}
	got := NewBuilder(&stubSource{due: due}).Build(context.Background(), ModeReview, 2, nil)
	assert.Len(t, got, 4)
	assert.Len(t, Truncate(got, 2), 2)
}

func TestFilterAppliedAfterSelection(t *testing.T) {
	src := &stubSource{
		weakest: []spacedrep.ScheduleEntry{
			e("m1_a", 1.3), e("m2_a", 1.4), e("m2_b", 1.5), e("m1_b", 1.6),
		},
	}
	got := NewBuilder(src).Build(context.Background(), ModeWeakest, 1, Prefix("m1_"))
	// weakest(2) = [m1_a, m2_a], then filtered.
	assert.Equal(t, []string{"m1_a"}, Keys(got))
}

func TestUnknownModeBuildsNothing(t *testing.T) {
	src := &stubSource{due: []spacedrep.ScheduleEntry{e("a", 2.5)}}
	assert.Empty(t, NewBuilder(src).Build(context.Background(), ModeDiscover, 5, nil))
}

func TestPreselectBestMode(t *testing.T) {
	many := func(prefix string, n int, ease float64) []spacedrep.ScheduleEntry {
		var out []spacedrep.ScheduleEntry
		for i := 0; i < n; i++ {
			out = append(out, e(prefix+string(rune('a'+i)), ease))
		}
		return out
	}

	tests := []struct {
		name   string
		src    *stubSource
		filter Filter
		want   Mode
	}{
		{"five due", &stubSource{due: many("d", 5, 2.5), all: many("d", 5, 2.5)}, nil, ModeReview},
		{"four due", &stubSource{due: many("d", 4, 2.5), all: many("d", 4, 2.5)}, nil, ModeMixed},
		{"three weak", &stubSource{weakest: many("w", 3, 1.9), all: many("w", 3, 1.9)}, nil, ModeWeakest},
		{"weak but not below 2.0", &stubSource{weakest: many("w", 3, 2.1), all: many("w", 3, 2.1)}, nil, ModeMixed},
		{"no history", &stubSource{}, nil, ModeDiscover},
		{"history outside filter", &stubSource{due: many("d", 6, 2.5), all: many("d", 6, 2.5)}, Prefix("x"), ModeDiscover},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBuilder(tt.src).PreselectBestMode(context.Background(), tt.filter)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Mixed ")
	require.NoError(t, err)
	assert.Equal(t, ModeMixed, m)

	m, err = ParseMode("discover")
	require.NoError(t, err)
	assert.Equal(t, ModeDiscover, m)

	_, err = ParseMode("bogus")
	assert.Error(t, err)
}

func TestKeySet(t *testing.T) {
	f := KeySet([]string{"a", "c"})
	assert.True(t, f("a"))
	assert.False(t, f("b"))
}

func TestBuildAgainstScheduler(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	sched := spacedrep.NewScheduler(store.NewDocs(store.NewMemory(), nil),
		spacedrep.WithClock(func() time.Time { return now }))

	// Two failures leave "hard" due tomorrow with reps 0; "easy" passes twice.
	sched.RecordReview(ctx, "easy", 5, "")
	sched.RecordReview(ctx, "easy", 5, "")
	sched.RecordReview(ctx, "hard", 1, "")

	b := NewBuilder(sched)
	assert.Empty(t, b.Build(ctx, ModeReview, 10, nil), "nothing due yet")
	assert.Equal(t, ModeMixed, b.PreselectBestMode(ctx, nil))
}

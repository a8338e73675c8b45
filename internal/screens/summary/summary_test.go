package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/spacedrep"
)

func testSummary() session.Summary {
	return session.Summary{
		SessionID: "s-1",
		Duration:  15 * time.Minute,
		Total:     5,
		Completed: 4,
		Skipped:   1,
		Ratings:   map[int]int{spacedrep.RatingSolved: 2, spacedrep.RatingStruggled: 1},
		Unrated:   1,
	}
}

func testReviewed() []spacedrep.ScheduleEntry {
	return []spacedrep.ScheduleEntry{
		{Key: "go.slices", Label: "Slices", Interval: 6, EaseFactor: 2.6, Repetitions: 2},
		{Key: "go.maps", Label: "Maps", Interval: 1, EaseFactor: 2.18, Repetitions: 0},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), testReviewed(), 3)
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), testReviewed(), 3)
	view := s.View(80, 24)
	for _, want := range []string{"Session complete!", "Completed: 4", "Skipped: 1", "Slices", "Unrated"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_DisplayEmpty(t *testing.T) {
	s := New(session.Summary{}, nil, 0)
	if view := s.View(80, 24); view == "" {
		t.Error("expected non-empty summary view")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		s := New(testSummary(), nil, 0)
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("expected a command on %q", key.String())
		}
		if _, ok := cmd().(router.PopToRootMsg); !ok {
			t.Errorf("%q should return home", key.String())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary(), nil, 0)
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

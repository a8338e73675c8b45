package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/course"
	"github.com/abhisek/drill/internal/queue"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screens"
	"github.com/abhisek/drill/internal/store"
)

const manifest = `
course: go-basics
title: Go Basics
modules:
  - id: m1
    items:
      - {key: m1_a, label: Declare, concept: variables}
      - {key: m1_b, label: Zero values, concept: variables}
`

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func testDeps(t *testing.T, withCourse bool) screens.Deps {
	t.Helper()
	var c *course.Course
	if withCourse {
		var err error
		if c, err = course.Parse([]byte(manifest)); err != nil {
			t.Fatalf("parse manifest: %v", err)
		}
	}
	return screens.Wire(context.Background(), store.NewDocs(store.NewMemory(), nil), c,
		screens.Options{Now: func() time.Time { return t0 }})
}

func TestHome_FreshCourseRecommendsDiscover(t *testing.T) {
	h := New(testDeps(t, true))
	if h.recommended != queue.ModeDiscover {
		t.Errorf("recommended = %q, want discover", h.recommended)
	}
	view := h.View(100, 30)
	for _, want := range []string{"Go Basics", "Start: discover new", "0 due"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHome_NoCourseDisablesDiscover(t *testing.T) {
	h := New(testDeps(t, false))
	if h.recommended != queue.ModeReview {
		t.Errorf("recommended = %q, want review", h.recommended)
	}
	if !h.menu.Items[4].Disabled {
		t.Error("discover should be disabled without a course")
	}
}

func TestHome_RefreshPicksUpReviews(t *testing.T) {
	d := testDeps(t, true)
	h := New(d)
	d.Scheduler.RecordReview(d.Context(), "m1_a", 5, "Declare")
	d.Ledger.RecordActivity(d.Context())

	cmd := h.Refresh()
	if cmd == nil {
		t.Fatal("expected stats command")
	}
	if h.stats.Total != 1 || h.streak.Current != 1 || h.today != 1 {
		t.Errorf("stats = %+v streak = %+v today = %d", h.stats, h.streak, h.today)
	}
	if h.recommended != queue.ModeMixed {
		t.Errorf("recommended = %q, want mixed", h.recommended)
	}
	if msg, ok := cmd().(screens.StatsMsg); !ok || msg.Streak != 1 {
		t.Errorf("stats msg = %+v", msg)
	}
}

func TestHome_MenuPushesPractice(t *testing.T) {
	h := New(testDeps(t, true))
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command from menu")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if push.Screen.Title() != "Practice: discover" {
		t.Errorf("pushed %q", push.Screen.Title())
	}
}

func TestHome_MenuOpensTimer(t *testing.T) {
	h := New(testDeps(t, true))
	for i := 0; i < 5; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "Focus Timer" {
		t.Errorf("expected timer screen, got %+v", push)
	}
}

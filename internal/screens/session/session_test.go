package session

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/course"
	"github.com/abhisek/drill/internal/queue"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens"
	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/store"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

const manifest = `
course: go-basics
modules:
  - id: m1
    items:
      - {key: m1_a, label: Declare, concept: variables}
      - {key: m1_b, label: Zero values, concept: variables}
`

func testDeps(t *testing.T) screens.Deps {
	t.Helper()
	c, err := course.Parse([]byte(manifest))
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	docs := store.NewDocs(store.NewMemory(), nil)
	return screens.Wire(context.Background(), docs, c, screens.Options{Now: func() time.Time { return t0 }})
}

// started returns a discover session with its queue loaded.
func started(t *testing.T, d screens.Deps) *SessionScreen {
	t.Helper()
	s := New(d, queue.ModeDiscover)
	msg := s.Init()()
	next, _ := s.Update(msg)
	return next.(*SessionScreen)
}

func press(s screen.Screen, key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		return s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	case "tab":
		return s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	case "space":
		return s.Update(tea.KeyPressMsg{Code: tea.KeySpace})
	}
	r := []rune(key)[0]
	return s.Update(tea.KeyPressMsg{Code: r, Text: key})
}

func TestSessionScreen_Title(t *testing.T) {
	s := New(testDeps(t), queue.ModeReview)
	if s.Title() != "Practice: review" {
		t.Errorf("Title = %q, want %q", s.Title(), "Practice: review")
	}
}

func TestSessionScreen_View_Loading(t *testing.T) {
	s := New(testDeps(t), queue.ModeReview)
	if !strings.Contains(s.View(80, 24), "Preparing") {
		t.Error("expected loading view before init")
	}
}

func TestSessionScreen_EmptyQueue(t *testing.T) {
	s := New(testDeps(t), queue.ModeReview)
	s.Update(s.Init()())

	view := s.View(80, 24)
	if !strings.Contains(view, "Nothing is due") {
		t.Errorf("expected empty-queue message, got %q", view)
	}
	_, cmd := press(s, "x")
	if cmd == nil {
		t.Fatal("expected a command on key press")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("any key should go back")
	}
}

func TestSessionScreen_RateSchedulesItem(t *testing.T) {
	d := testDeps(t)
	s := started(t, d)
	if s.current.Key != "m1_a" {
		t.Fatalf("current = %q, want m1_a", s.current.Key)
	}

	press(s, "1")

	e, ok := d.Scheduler.Entry(context.Background(), "m1_a")
	if !ok {
		t.Fatal("expected m1_a to be scheduled")
	}
	if e.LastQuality != 5 || e.Interval != 1 {
		t.Errorf("entry = q%d i%d, want q5 i1", e.LastQuality, e.Interval)
	}
	if e.Label != "Declare" {
		t.Errorf("Label = %q, want Declare", e.Label)
	}
	if s.current.Key != "m1_b" {
		t.Errorf("current = %q, want m1_b", s.current.Key)
	}
	if got := d.Ledger.Current(context.Background()); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}

func TestSessionScreen_HintLowersQuality(t *testing.T) {
	d := testDeps(t)
	s := started(t, d)

	press(s, "h")
	if !strings.Contains(s.View(100, 30), "hint used") {
		t.Error("expected hint flag in view")
	}
	press(s, "1")

	e, _ := d.Scheduler.Entry(context.Background(), "m1_a")
	if e.LastQuality != 4 {
		t.Errorf("LastQuality = %d, want 4", e.LastQuality)
	}
}

func TestSessionScreen_DoneWithoutRating(t *testing.T) {
	d := testDeps(t)
	s := started(t, d)

	press(s, "s")
	press(s, "space")

	e, _ := d.Scheduler.Entry(context.Background(), "m1_a")
	if e.LastQuality != 2 {
		t.Errorf("LastQuality = %d, want 2", e.LastQuality)
	}
}

func TestSessionScreen_SkipThenCompleteShowsSummary(t *testing.T) {
	d := testDeps(t)
	s := started(t, d)

	press(s, "tab")
	if _, ok := d.Scheduler.Entry(context.Background(), "m1_a"); ok {
		t.Error("skipped item should not be scheduled")
	}

	_, cmd := press(s, "2")
	if !s.complete {
		t.Fatal("expected session complete")
	}
	if s.summary.Completed != 1 || s.summary.Skipped != 1 {
		t.Errorf("summary = %+v", s.summary)
	}
	if s.summary.Ratings[spacedrep.RatingStruggled] != 1 {
		t.Errorf("ratings = %v, want one struggled", s.summary.Ratings)
	}
	if cmd == nil {
		t.Error("expected a command to show the summary")
	}
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	s := started(t, testDeps(t))
	if !s.HandlesEscape() {
		t.Fatal("running session should capture Esc")
	}

	press(s, "esc")
	if !s.quitConfirm {
		t.Fatal("expected quit confirm after Esc")
	}
	if len(s.KeyHints()) != 2 {
		t.Errorf("expected 2 confirm hints, got %d", len(s.KeyHints()))
	}

	press(s, "n")
	if s.quitConfirm {
		t.Error("N should dismiss the confirm dialog")
	}
}

func TestSessionScreen_QuitConfirm_Yes(t *testing.T) {
	s := started(t, testDeps(t))
	press(s, "esc")

	_, cmd := press(s, "y")
	if cmd == nil {
		t.Fatal("expected session end command")
	}
	if _, ok := cmd().(sessionEndMsg); !ok {
		t.Fatal("expected sessionEndMsg")
	}

	_, cmd = s.Update(sessionEndMsg{})
	if cmd == nil || !s.complete {
		t.Error("ending early should complete the screen and show a summary")
	}
}

func TestSessionScreen_TimerTick(t *testing.T) {
	s := started(t, testDeps(t))
	s.startTime = time.Now().Add(-90 * time.Second)

	_, cmd := s.Update(timerTickMsg(time.Now()))
	if cmd == nil {
		t.Error("expected next tick to be scheduled")
	}
	if !strings.Contains(s.View(100, 30), "1:30") {
		t.Error("expected elapsed time in view")
	}
}

package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screens"
	"github.com/abhisek/drill/internal/screens/timer"
	"github.com/abhisek/drill/internal/store"
)

func testModel(t *testing.T) AppModel {
	t.Helper()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	d := screens.Wire(context.Background(), store.NewDocs(store.NewMemory(), nil), nil,
		screens.Options{Now: func() time.Time { return now }})
	return newAppModel(d)
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestApp_StatsMsgUpdatesHeader(t *testing.T) {
	m := testModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, screens.StatsMsg{Due: 7, Streak: 3})

	view := m.render()
	if !strings.Contains(view, "7 due") || !strings.Contains(view, "3 days") {
		t.Errorf("header missing counters")
	}
}

func TestApp_TooSmall(t *testing.T) {
	m := testModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "drill needs at least") {
		t.Error("expected min-size message")
	}
}

func TestApp_EscPopsPushedScreen(t *testing.T) {
	m := testModel(t)
	m, _ = update(t, m, router.PushScreenMsg{Screen: timer.New(m.deps)})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestApp_EscAtRootIsNoop(t *testing.T) {
	m := testModel(t)
	if _, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc on home should do nothing")
	}
}

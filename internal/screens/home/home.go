// Package home is the landing screen: today's numbers and the practice menu.
package home

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/queue"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens"
	sessionscreen "github.com/abhisek/drill/internal/screens/session"
	"github.com/abhisek/drill/internal/screens/strength"
	"github.com/abhisek/drill/internal/screens/timer"
	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/streak"
	"github.com/abhisek/drill/internal/ui/components"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps        screens.Deps
	menu        components.Menu
	stats       spacedrep.Stats
	streak      streak.State
	today       int
	recommended queue.Mode
	weakest     []mastery.ConceptStrength
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.load()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.deps.StatsCmd()
}

// Refresh reloads the dashboard after a practice run or timer change.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.load()
	return h.deps.StatsCmd()
}

func (h *HomeScreen) load() {
	ctx := h.deps.Context()
	h.stats = h.deps.Scheduler.Stats(ctx)
	h.streak = h.deps.Ledger.State(ctx)
	h.today = h.deps.Ledger.ActivityOn(ctx, h.deps.Scheduler.Now())
	h.recommended = h.deps.Queue.PreselectBestMode(ctx, h.deps.Filter)
	if h.recommended == queue.ModeDiscover && h.deps.Course == nil {
		h.recommended = queue.ModeReview
	}
	h.weakest = h.deps.Strength.WeakestConcepts(ctx, 3)

	selected := h.menu.Selected
	h.menu = components.NewMenu(h.menuItems())
	if selected > 0 && selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) practice(mode queue.Mode) func() tea.Cmd {
	return func() tea.Cmd {
		s := sessionscreen.New(h.deps, mode)
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) push(build func(screens.Deps) screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build(h.deps)
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	due := ""
	if h.stats.Due > 0 {
		due = fmt.Sprintf("%d due", h.stats.Due)
	}
	return []components.MenuItem{
		{Label: "Start: " + modeName(h.recommended), Hint: "recommended", Action: h.practice(h.recommended)},
		{Label: "Review due", Hint: due, Action: h.practice(queue.ModeReview)},
		{Label: "Weakest items", Action: h.practice(queue.ModeWeakest)},
		{Label: "Mixed", Action: h.practice(queue.ModeMixed)},
		{Label: "Discover new", Action: h.practice(queue.ModeDiscover), Disabled: h.deps.Course == nil},
		{Label: "Focus timer", Action: h.push(func(d screens.Deps) screen.Screen { return timer.New(d) })},
		{Label: "Concept strength", Action: h.push(func(d screens.Deps) screen.Screen { return strength.New(d) })},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func modeName(m queue.Mode) string {
	switch m {
	case queue.ModeReview:
		return "review due"
	case queue.ModeWeakest:
		return "weakest items"
	case queue.ModeDiscover:
		return "discover new"
	}
	return "mixed"
}

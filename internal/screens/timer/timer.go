// Package timer is the focus timer screen over the phase engine.
package timer

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/phase"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
	"github.com/abhisek/drill/internal/ui/theme"
)

// tickMsg drives the engine once a second while a session runs.
type tickMsg time.Time

// TimerScreen shows and controls the timed practice cycle.
type TimerScreen struct {
	deps    screens.Deps
	report  phase.Report
	active  bool
	ticking bool
}

var _ screen.Screen = (*TimerScreen)(nil)
var _ screen.KeyHintProvider = (*TimerScreen)(nil)
var _ screen.Refresher = (*TimerScreen)(nil)

// New creates a timer screen.
func New(deps screens.Deps) *TimerScreen {
	return &TimerScreen{deps: deps}
}

func (t *TimerScreen) Init() tea.Cmd {
	return t.Refresh()
}

// Refresh reloads the session record and resumes ticking if it runs.
func (t *TimerScreen) Refresh() tea.Cmd {
	t.report, t.active = t.deps.Timer.Status(t.deps.Context())
	return t.ensureTicking()
}

func (t *TimerScreen) Title() string {
	return "Focus Timer"
}

func (t *TimerScreen) KeyHints() []layout.KeyHint {
	if !t.active {
		return []layout.KeyHint{
			{Key: "S", Description: "Start"},
			{Key: "E", Description: "Settings"},
			{Key: "Esc", Description: "Back"},
		}
	}
	toggle := "Pause"
	if t.report.Status == phase.StatusPaused {
		toggle = "Resume"
	}
	return []layout.KeyHint{
		{Key: "P", Description: toggle},
		{Key: "R", Description: "Reset"},
		{Key: "H", Description: "Hide"},
		{Key: "S", Description: "Restart"},
		{Key: "Esc", Description: "Back"},
	}
}

func (t *TimerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		t.ticking = false
		ctx := t.deps.Context()
		running := t.deps.Timer.Tick(ctx)
		t.report, t.active = t.deps.Timer.Status(ctx)
		if running {
			return t, t.ensureTicking()
		}
		return t, nil

	case tea.KeyMsg:
		return t.handleKey(msg.String())
	}
	return t, nil
}

func (t *TimerScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	ctx := t.deps.Context()
	switch key {
	case "s", "S":
		t.deps.Timer.Start(ctx)
	case "p", "P", "space", " ":
		if !t.active {
			return t, nil
		}
		if t.report.Status == phase.StatusRunning {
			t.deps.Timer.Pause(ctx)
		} else {
			t.deps.Timer.Resume(ctx)
		}
	case "r", "R":
		t.deps.Timer.Reset(ctx)
	case "h", "H":
		if t.active {
			t.deps.Timer.Hide(ctx)
		}
		return t, func() tea.Msg { return router.PopScreenMsg{} }
	case "e", "E":
		return t, func() tea.Msg {
			return router.PushScreenMsg{Screen: NewSettings(t.deps.Timer)}
		}
	default:
		return t, nil
	}
	return t, t.Refresh()
}

func (t *TimerScreen) ensureTicking() tea.Cmd {
	if t.ticking || !t.active || t.report.Status != phase.StatusRunning {
		return nil
	}
	t.ticking = true
	return tea.Tick(time.Second, func(now time.Time) tea.Msg {
		return tickMsg(now)
	})
}

func (t *TimerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	if !t.active {
		st := t.deps.Timer.Settings()
		body := theme.Body.Render("No timer running.") + "\n\n" +
			theme.Hint.Render(fmt.Sprintf("Focus %d min · break %d min · long break %d min every %d cycles",
				st.FocusMinutes, st.BreakMinutes, st.LongBreakMinutes, st.CyclesBeforeLongBreak))
		return "\n\n" + center(components.Card(body, cw))
	}

	r := t.report
	var b strings.Builder

	b.WriteString(phaseStyle(r.Phase).Render(strings.ToUpper(phaseName(r.Phase))))
	if r.Status == phase.StatusPaused {
		b.WriteString("  " + components.Badge("paused"))
	}
	b.WriteString("\n\n")

	remaining := r.Remaining.Round(time.Second)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%02d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60)))
	b.WriteString("\n\n")

	b.WriteString(components.NewProgressBar("", r.Progress(), true, cw-6).View())
	b.WriteString("\n\n")

	b.WriteString(theme.Hint.Render(fmt.Sprintf("Cycles completed: %d", r.CompletedCycles)))
	if r.Message != "" {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(r.Message))
	}

	return "\n\n" + center(components.Card(b.String(), cw))
}

func phaseName(p phase.Phase) string {
	switch p {
	case phase.PhasePrep:
		return "prep"
	case phase.PhaseBreak:
		return "break"
	case phase.PhaseLongBreak:
		return "long break"
	}
	return "focus"
}

func phaseStyle(p phase.Phase) lipgloss.Style {
	switch p {
	case phase.PhasePrep:
		return theme.Prep
	case phase.PhaseBreak, phase.PhaseLongBreak:
		return theme.Rest
	}
	return theme.Focus
}

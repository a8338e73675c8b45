// Package strength lists concept and module mastery, weakest first.
package strength

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/queue"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens"
	sessionscreen "github.com/abhisek/drill/internal/screens/session"
	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
	"github.com/abhisek/drill/internal/ui/theme"
)

// Ease range mapped onto the strength bar.
const (
	barMinEase = spacedrep.MinEase
	barMaxEase = 3.0
)

// StrengthScreen shows mastery per concept or per module.
type StrengthScreen struct {
	deps     screens.Deps
	concepts []mastery.ConceptStrength
	modules  []mastery.ConceptStrength
	byModule bool
	cursor   int
}

var _ screen.Screen = (*StrengthScreen)(nil)
var _ screen.KeyHintProvider = (*StrengthScreen)(nil)
var _ screen.Refresher = (*StrengthScreen)(nil)

// New creates the strength screen.
func New(deps screens.Deps) *StrengthScreen {
	return &StrengthScreen{deps: deps}
}

func (s *StrengthScreen) Init() tea.Cmd {
	return s.Refresh()
}

// Refresh recomputes strengths from the current schedule.
func (s *StrengthScreen) Refresh() tea.Cmd {
	ctx := s.deps.Context()
	s.concepts = s.deps.Strength.Concepts(ctx)
	s.modules = s.deps.Strength.Modules(ctx)
	s.clampCursor()
	return nil
}

func (s *StrengthScreen) Title() string {
	if s.byModule {
		return "Module Strength"
	}
	return "Concept Strength"
}

func (s *StrengthScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Concepts/Modules"},
		{Key: "Enter", Description: "Practise"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StrengthScreen) rows() []mastery.ConceptStrength {
	if s.byModule {
		return s.modules
	}
	return s.concepts
}

func (s *StrengthScreen) clampCursor() {
	if n := len(s.rows()); s.cursor >= n {
		s.cursor = max(n-1, 0)
	}
}

func (s *StrengthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.rows())-1 {
			s.cursor++
		}
	case "tab":
		s.byModule = !s.byModule
		s.cursor = 0
	case "enter":
		rows := s.rows()
		if len(rows) == 0 {
			return s, nil
		}
		d := s.deps
		d.Filter = s.filterFor(rows[s.cursor])
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: sessionscreen.New(d, queue.ModeMixed)}
		}
	}
	return s, nil
}

// filterFor accepts the keys that belong to row.
func (s *StrengthScreen) filterFor(row mastery.ConceptStrength) queue.Filter {
	if s.deps.Course == nil {
		return s.deps.Filter
	}
	idx := s.deps.Course.ConceptIndex()
	return func(key string) bool {
		ref, ok := idx[key]
		if !ok || ref.Module != row.Module {
			return false
		}
		return row.Concept == "" || ref.Concept == row.Concept
	}
}

func (s *StrengthScreen) View(width, height int) string {
	rows := s.rows()
	cw := components.ContentWidth(width)

	if len(rows) == 0 {
		msg := theme.Body.Render("No reviews yet.") + "\n\n" +
			theme.Hint.Render("Strength appears once items in a course have been reviewed.")
		return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(msg, cw))
	}

	var b strings.Builder
	for i, r := range rows {
		name := r.Module
		if r.Concept != "" {
			name = r.Module + " / " + r.Concept
		}
		prefix := "  "
		nameStyle := theme.Unselected
		if i == s.cursor {
			prefix = "▸ "
			nameStyle = theme.Selected
		}

		b.WriteString(nameStyle.Render(fmt.Sprintf("%s%-28s", prefix, truncate(name, 28))))
		b.WriteString(" ")
		b.WriteString(labelStyle(r.Label).Render(fmt.Sprintf("%-9s", r.Label.String())))
		b.WriteString("\n    ")
		pct := (r.AvgEase - barMinEase) / (barMaxEase - barMinEase)
		b.WriteString(components.NewProgressBar("", pct, false, cw-24).View())
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %.2f · %d %s", r.AvgEase, r.SampleCount, items(r.SampleCount))))
		b.WriteString("\n")
		if i == s.cursor {
			b.WriteString("    " + theme.Hint.Render(r.Label.Hint()) + "\n")
		}
	}

	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func labelStyle(l mastery.Label) lipgloss.Style {
	return theme.ForStrength(string(l))
}

func items(n int) string {
	if n == 1 {
		return "item"
	}
	return "items"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package timer

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/phase"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
	"github.com/abhisek/drill/internal/ui/theme"
)


// SettingsScreen edits the phase lengths used by the next timer session.
type SettingsScreen struct {
	engine  *phase.Engine
	inputs  []components.NumberField
	focused int
	errMsg  string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// NewSettings creates the form prefilled with the engine's settings.
func NewSettings(engine *phase.Engine) *SettingsScreen {
	st := engine.Settings()
	s := &SettingsScreen{engine: engine}
	s.inputs = []components.NumberField{
		components.NewNumberField("Focus minutes", st.FocusMinutes, 1),
		components.NewNumberField("Break minutes", st.BreakMinutes, 0),
		components.NewNumberField("Long break minutes", st.LongBreakMinutes, 0),
		components.NewNumberField("Cycles before long break", st.CyclesBeforeLongBreak, 1),
	}
	s.inputs[0].Focus()
	return s
}

func (s *SettingsScreen) Init() tea.Cmd {
	return s.inputs[s.focused].Focus()
}

func (s *SettingsScreen) Title() string {
	return "Timer Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.move(1)
		case "shift+tab", "up":
			return s, s.move(-1)
		case "enter":
			return s.save()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return s, cmd
}

func (s *SettingsScreen) move(delta int) tea.Cmd {
	s.inputs[s.focused].Blur()
	s.focused = (s.focused + delta + len(s.inputs)) % len(s.inputs)
	return s.inputs[s.focused].Focus()
}

// Settings parses the form.
func (s *SettingsScreen) Settings() (phase.Settings, error) {
	vals := make([]int, len(s.inputs))
	for i, in := range s.inputs {
		v, err := in.Int()
		if err != nil {
			return phase.Settings{}, err
		}
		vals[i] = v
	}
	return phase.Settings{
		FocusMinutes:          vals[0],
		BreakMinutes:          vals[1],
		LongBreakMinutes:      vals[2],
		CyclesBeforeLongBreak: vals[3],
	}, nil
}

func (s *SettingsScreen) save() (screen.Screen, tea.Cmd) {
	st, err := s.Settings()
	if err == nil {
		err = s.engine.Configure(st)
	}
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *SettingsScreen) View(width, height int) string {
	var b strings.Builder
	for i, in := range s.inputs {
		label := fmt.Sprintf("%-26s", in.Label)
		if i == s.focused {
			b.WriteString(theme.Selected.Render("▸ " + label))
		} else {
			b.WriteString(theme.Unselected.Render("  " + label))
		}
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Changes apply to the next session you start."))

	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(b.String(), components.ContentWidth(width)))
}

package components

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/ui/theme"
)

// NumberField is a short integer form field with a lower bound.
type NumberField struct {
	Label string
	Min   int
	input textinput.Model
}

// NewNumberField returns a blurred field holding value.
func NewNumberField(label string, value, min int) NumberField {
	in := textinput.New()
	in.CharLimit = 3
	in.SetValue(strconv.Itoa(value))
	return NumberField{Label: label, Min: min, input: in}
}

// Update forwards msg to the input, dropping printable non-digit keys.
func (f NumberField) Update(msg tea.Msg) (NumberField, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.Text != "" {
		if strings.IndexFunc(k.Text, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			return f, nil
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// Int parses the field, enforcing Min.
func (f NumberField) Int() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(f.input.Value()))
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", strings.ToLower(f.Label))
	}
	if v < f.Min {
		return 0, fmt.Errorf("%s must be at least %d", strings.ToLower(f.Label), f.Min)
	}
	return v, nil
}

func (f *NumberField) SetValue(v string) { f.input.SetValue(v) }
func (f *NumberField) Focus() tea.Cmd    { return f.input.Focus() }
func (f *NumberField) Blur()             { f.input.Blur() }

// View renders the input, flagging a value Int would reject.
func (f NumberField) View() string {
	v := f.input.View()
	if _, err := f.Int(); err != nil {
		v += " " + theme.Incorrect.Render("✗")
	}
	return v
}

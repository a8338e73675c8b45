// Package phase implements the timed practice cycle: a fixed prep phase,
// then focus blocks separated by short and long breaks.
package phase

import (
	"fmt"
	"time"
)

// Phase is the current segment of the cycle.
type Phase string

const (
	PhasePrep      Phase = "prep"
	PhaseFocus     Phase = "focus"
	PhaseBreak     Phase = "break"
	PhaseLongBreak Phase = "longBreak"
)

// Status tells whether the countdown is running.
type Status string

const (
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// PrepDuration is the fixed length of the prep phase.
const PrepDuration = 5 * time.Minute

// Settings are the configurable phase lengths.
type Settings struct {
	FocusMinutes          int
	BreakMinutes          int
	LongBreakMinutes      int
	CyclesBeforeLongBreak int
}

// DefaultSettings returns 25/5/15 with a long break every fourth cycle.
func DefaultSettings() Settings {
	return Settings{
		FocusMinutes:          25,
		BreakMinutes:          5,
		LongBreakMinutes:      15,
		CyclesBeforeLongBreak: 4,
	}
}

// Validate checks that the settings describe a usable cycle.
func (s Settings) Validate() error {
	if s.FocusMinutes <= 0 {
		return fmt.Errorf("focus minutes must be positive, got %d", s.FocusMinutes)
	}
	if s.BreakMinutes < 0 || s.LongBreakMinutes < 0 {
		return fmt.Errorf("break minutes must not be negative")
	}
	if s.CyclesBeforeLongBreak <= 0 {
		return fmt.Errorf("cycles before long break must be positive, got %d", s.CyclesBeforeLongBreak)
	}
	return nil
}

// State is the persisted session record. While running, StartAt anchors
// the countdown; while paused, RemainingSeconds holds it. Every field
// needed to continue is stored, so a reloaded State resumes exactly.
type State struct {
	ID                    string    `json:"id"`
	Status                Status    `json:"status"`
	Phase                 Phase     `json:"phase"`
	FocusMinutes          int       `json:"focus_minutes"`
	BreakMinutes          int       `json:"break_minutes"`
	LongBreakMinutes      int       `json:"long_break_minutes"`
	CompletedCycles       int       `json:"completed_cycles"`
	CyclesBeforeLongBreak int       `json:"cycles_before_long_break"`
	StartAt               time.Time `json:"start_at,omitzero"`
	RemainingSeconds      int       `json:"remaining_seconds,omitempty"`
	Message               string    `json:"message,omitempty"`
	Prepped               bool      `json:"prepped,omitempty"`
}

// New returns a paused state at the very start of the cycle.
func New(id string, s Settings) State {
	st := State{
		ID:                    id,
		Status:                StatusPaused,
		Phase:                 PhaseFocus,
		FocusMinutes:          s.FocusMinutes,
		BreakMinutes:          s.BreakMinutes,
		LongBreakMinutes:      s.LongBreakMinutes,
		CyclesBeforeLongBreak: s.CyclesBeforeLongBreak,
	}
	st.RemainingSeconds = int(st.Duration(PhaseFocus) / time.Second)
	st.Message = messageFor(PhaseFocus)
	return st
}

// Duration returns the full length of phase p.
func (s State) Duration(p Phase) time.Duration {
	switch p {
	case PhasePrep:
		return PrepDuration
	case PhaseFocus:
		return time.Duration(s.FocusMinutes) * time.Minute
	case PhaseBreak:
		return time.Duration(s.BreakMinutes) * time.Minute
	case PhaseLongBreak:
		return time.Duration(s.LongBreakMinutes) * time.Minute
	}
	return 0
}

// Remaining returns how long the current phase has left at now.
func (s State) Remaining(now time.Time) time.Duration {
	if s.Status != StatusRunning {
		return time.Duration(s.RemainingSeconds) * time.Second
	}
	left := s.Duration(s.Phase) - now.Sub(s.StartAt)
	if left < 0 {
		return 0
	}
	return left
}

// Elapsed returns how much of the current phase has passed at now.
func (s State) Elapsed(now time.Time) time.Duration {
	return s.Duration(s.Phase) - s.Remaining(now)
}

// IsFreshStart reports whether the state has never run: the first focus
// block, untouched, with prep not yet taken. Only a fresh start enters prep
// on resume.
func (s State) IsFreshStart() bool {
	return !s.Prepped &&
		s.Phase == PhaseFocus &&
		s.CompletedCycles == 0 &&
		s.Status == StatusPaused &&
		time.Duration(s.RemainingSeconds)*time.Second == s.Duration(PhaseFocus)
}

// Report is a display view of a state.
type Report struct {
	Phase           Phase
	Status          Status
	Remaining       time.Duration
	Total           time.Duration
	CompletedCycles int
	Message         string
}

// Report returns the display view at now.
func (s State) Report(now time.Time) Report {
	return Report{
		Phase:           s.Phase,
		Status:          s.Status,
		Remaining:       s.Remaining(now),
		Total:           s.Duration(s.Phase),
		CompletedCycles: s.CompletedCycles,
		Message:         s.Message,
	}
}

// Progress returns the fraction of the current phase that has passed.
func (r Report) Progress() float64 {
	if r.Total <= 0 {
		return 1
	}
	return 1 - float64(r.Remaining)/float64(r.Total)
}

func messageFor(p Phase) string {
	switch p {
	case PhasePrep:
		return "Get ready: pick your first item."
	case PhaseFocus:
		return "Focus."
	case PhaseBreak:
		return "Short break. Step away from the screen."
	case PhaseLongBreak:
		return "Long break. You earned it."
	}
	return ""
}

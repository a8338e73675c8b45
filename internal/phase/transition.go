package phase

import "time"

// maxCatchUp bounds the phases replayed in one Transition after a long
// absence.
const maxCatchUp = 1000

// Transition returns s advanced to now. Every phase that expired since
// StartAt is replayed in order, each new phase starting at the instant the
// previous one ended, so a state reloaded long after it was saved lands in
// the correct phase. A paused state is returned unchanged.
func Transition(s State, now time.Time) State {
	for i := 0; i < maxCatchUp && s.Status == StatusRunning; i++ {
		end := s.StartAt.Add(s.Duration(s.Phase))
		if now.Before(end) {
			return s
		}
		s = expire(s, end)
	}
	return s
}

// expire moves s past the end of its current phase.
func expire(s State, end time.Time) State {
	switch s.Phase {
	case PhasePrep:
		return enter(s, PhaseFocus, end)

	case PhaseFocus:
		s.CompletedCycles++
		if s.BreakMinutes == 0 {
			// No break loop: hold in focus, reseeded, until resumed.
			s.Status = StatusPaused
			s.StartAt = time.Time{}
			s.RemainingSeconds = int(s.Duration(PhaseFocus) / time.Second)
			s.Message = "Focus block done. Resume for another."
			return s
		}
		if s.CyclesBeforeLongBreak > 0 && s.CompletedCycles%s.CyclesBeforeLongBreak == 0 {
			return enter(s, PhaseLongBreak, end)
		}
		return enter(s, PhaseBreak, end)

	default:
		return enter(s, PhaseFocus, end)
	}
}

func enter(s State, p Phase, at time.Time) State {
	s.Phase = p
	s.StartAt = at
	s.RemainingSeconds = 0
	s.Message = messageFor(p)
	return s
}

// Pause freezes the countdown, storing what is left of the current phase.
func Pause(s State, now time.Time) State {
	s = Transition(s, now)
	if s.Status != StatusRunning {
		return s
	}
	s.RemainingSeconds = int(s.Remaining(now) / time.Second)
	s.StartAt = time.Time{}
	s.Status = StatusPaused
	return s
}

// Resume restarts the countdown. A fresh start enters prep; anything else
// continues the current phase where it was paused.
func Resume(s State, now time.Time) State {
	if s.Status != StatusPaused {
		return s
	}
	if s.IsFreshStart() {
		s = enter(s, PhasePrep, now)
		s.Prepped = true
		s.Status = StatusRunning
		return s
	}
	elapsed := s.Duration(s.Phase) - time.Duration(s.RemainingSeconds)*time.Second
	s.StartAt = now.Add(-elapsed)
	s.RemainingSeconds = 0
	s.Status = StatusRunning
	s.Message = messageFor(s.Phase)
	return s
}

// Package session is the practice screen: it serves a queue through the
// session runner and feeds each self-rating to the scheduler.
package session

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/queue"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens"
	"github.com/abhisek/drill/internal/screens/summary"
	sess "github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
)

var ratingOptions = []string{
	"Solved it",
	"Solved it, but struggled",
	"Needed the solution",
}

// SessionScreen implements screen.Screen for a practice run.
type SessionScreen struct {
	deps   screens.Deps
	mode   queue.Mode
	runner *sess.Runner
	choice components.Choice

	started  bool
	current  spacedrep.ScheduleEntry
	index    int
	total    int
	outcome  spacedrep.Outcome
	reviewed []spacedrep.ScheduleEntry
	last     *spacedrep.ScheduleEntry

	complete    bool
	summary     sess.Summary
	startTime   time.Time
	elapsed     time.Duration
	quitConfirm bool
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)
var _ sess.Renderer = (*SessionScreen)(nil)

// New creates a practice screen for mode.
func New(deps screens.Deps, mode queue.Mode) *SessionScreen {
	s := &SessionScreen{
		deps:   deps,
		mode:   mode,
		choice: components.NewChoice("How did it go?", ratingOptions),
	}
	s.runner = sess.NewRunner(deps.Ledger,
		sess.WithRenderer(s),
		sess.WithProgress(deps.Progress),
		sess.WithClock(deps.Scheduler.Now),
		sess.WithLogger(deps.Log),
	)
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.initSession()
}

func (s *SessionScreen) Title() string {
	return "Practice: " + string(s.mode)
}

func (s *SessionScreen) HandlesEscape() bool {
	return s.started && !s.complete
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if !s.started {
		return []layout.KeyHint{
			{Key: "any key", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-3", Description: "Rate"},
		{Key: "Space", Description: "Done"},
		{Key: "H", Description: "Hint"},
		{Key: "S", Description: "Solution"},
		{Key: "Tab", Description: "Skip"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if !s.started {
		return renderLoading(width, height)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width, height)
	}
	return s.renderItemView(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case timerTickMsg:
		if !s.started || s.complete {
			return s, nil
		}
		s.elapsed = time.Time(msg).Sub(s.startTime)
		return s, tickCmd()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// RenderItem is called by the runner when a new item is served.
func (s *SessionScreen) RenderItem(index, total int, entry spacedrep.ScheduleEntry) {
	s.index = index
	s.total = total
	s.current = entry
	s.outcome = spacedrep.Outcome{}
	s.choice.Reset()
}

// RenderSummary is called by the runner when the queue is exhausted.
func (s *SessionScreen) RenderSummary(sum sess.Summary) {
	s.complete = true
	s.summary = sum
}

func (s *SessionScreen) initSession() tea.Cmd {
	return func() tea.Msg {
		return sessionInitMsg{Queue: s.deps.BuildQueue(s.mode)}
	}
}

func (s *SessionScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	err := s.runner.Begin(s.deps.Context(), msg.Queue)
	if errors.Is(err, sess.ErrEmptyQueue) {
		s.errMsg = emptyMessage(s.mode)
		return s, nil
	}
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.started = true
	s.startTime = time.Now()
	return s, tickCmd()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if !s.started || s.complete {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	ctx := s.deps.Context()
	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "h", "H":
		ip := s.deps.Progress.MarkHint(ctx, s.current.Key)
		s.outcome = ip.Outcome
		return s, nil
	case "s", "S":
		ip := s.deps.Progress.MarkSolution(ctx, s.current.Key)
		s.outcome = ip.Outcome
		return s, nil
	case "space", " ":
		return s.finishItem(0)
	case "tab":
		s.runner.Skip(ctx)
		return s.afterAdvance()
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		return s.finishItem(s.choice.Value())
	}
	return s, nil
}

// finishItem records the review of the current item and advances. A zero
// rating derives quality from the hint and solution flags alone.
func (s *SessionScreen) finishItem(rating int) (screen.Screen, tea.Cmd) {
	ctx := s.deps.Context()
	key := s.current.Key
	if rating > 0 {
		s.deps.Progress.Rate(ctx, key, rating)
	}
	quality := s.deps.Progress.Quality(ctx, key)

	label := s.current.Label
	if label == "" {
		label = s.deps.Label(key)
	}
	entry := s.deps.Scheduler.RecordReview(ctx, key, quality, label)
	s.reviewed = append(s.reviewed, entry)
	s.last = &entry

	s.runner.Next(ctx)
	return s.afterAdvance()
}

func (s *SessionScreen) afterAdvance() (screen.Screen, tea.Cmd) {
	if !s.complete {
		return s, s.deps.StatsCmd()
	}
	return s, s.showSummary(s.summary)
}

func (s *SessionScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if !s.started {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.complete = true
	return s, s.showSummary(s.runner.Summary(s.deps.Context()))
}

func (s *SessionScreen) showSummary(sum sess.Summary) tea.Cmd {
	streak := 0
	if s.deps.Ledger != nil {
		streak = s.deps.Ledger.Current(s.deps.Context())
	}
	next := summary.New(sum, s.reviewed, streak)
	return tea.Batch(
		s.deps.StatsCmd(),
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func emptyMessage(mode queue.Mode) string {
	switch mode {
	case queue.ModeReview:
		return "Nothing is due for review. Come back later!"
	case queue.ModeWeakest:
		return "No weak items yet. Keep practising."
	case queue.ModeDiscover:
		return "Every item has been seen at least once."
	}
	return fmt.Sprintf("Nothing to practise in %s mode.", mode)
}

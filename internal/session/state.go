package session

import "github.com/abhisek/drill/internal/spacedrep"

// Status is the lifecycle state of a practice run.
type Status int

const (
	StatusConfiguring Status = iota // No queue started yet
	StatusRunning                   // Serving items
	StatusComplete                  // Queue exhausted, summary rendered
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusComplete:
		return "complete"
	default:
		return "configuring"
	}
}

// Tally counts how each served item ended.
type Tally struct {
	Completed int
	Skipped   int
}

// State is a read-only view of a runner.
type State struct {
	SessionID string
	Status    Status
	Index     int
	Total     int
	Tally     Tally

	// Current is the item being served. Nil unless Status is running.
	Current *spacedrep.ScheduleEntry
}

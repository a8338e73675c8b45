package session

import (
	"time"

	"github.com/abhisek/drill/internal/spacedrep"
)

// sessionInitMsg is sent when the practice queue has been built.
type sessionInitMsg struct {
	Queue []spacedrep.ScheduleEntry
}

// timerTickMsg is sent every second to update the elapsed clock.
type timerTickMsg time.Time

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}

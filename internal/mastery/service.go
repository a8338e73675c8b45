package mastery

import (
	"context"
	"time"

	"github.com/abhisek/drill/internal/spacedrep"
)

// EntrySource supplies the persisted schedule entries.
type EntrySource interface {
	All(ctx context.Context) []spacedrep.ScheduleEntry
}

// Service ranks the concepts of one course by mastery.
type Service struct {
	src   EntrySource
	index Index
	now   func() time.Time
}

// NewService creates a service reading entries from src. A nil now uses time.Now.
func NewService(src EntrySource, index Index, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{src: src, index: index, now: now}
}

// Concepts returns every concept with history, weakest first.
func (s *Service) Concepts(ctx context.Context) []ConceptStrength {
	return ComputeConceptStrength(s.src.All(ctx), s.index, s.now())
}

// Modules returns every module with history, weakest first.
func (s *Service) Modules(ctx context.Context) []ConceptStrength {
	return ModuleStrength(s.src.All(ctx), s.index, s.now())
}

// WeakestConcepts returns up to n labelled concepts in the Weak or
// Moderate bands.
func (s *Service) WeakestConcepts(ctx context.Context, n int) []ConceptStrength {
	var out []ConceptStrength
	for _, c := range s.Concepts(ctx) {
		if len(out) >= n {
			break
		}
		if c.Label == LabelWeak || c.Label == LabelModerate {
			out = append(out, c)
		}
	}
	return out
}

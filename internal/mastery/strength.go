package mastery

import (
	"sort"
	"time"

	"github.com/abhisek/drill/internal/spacedrep"
)

// ConceptRef places an item key within the content: the module it belongs
// to and the concept it exercises.
type ConceptRef struct {
	Module  string
	Concept string
}

// Index maps item keys to concepts. Keys absent from the index are ignored.
type Index map[string]ConceptRef

// ConceptStrength is the recency-weighted mastery of one concept. For
// module-level results Concept is empty.
type ConceptStrength struct {
	Concept     string  `json:"concept"`
	Module      string  `json:"module"`
	AvgEase     float64 `json:"avg_ease"`
	SampleCount int     `json:"sample_count"`
	Label       Label   `json:"label"`
}

// RecencyWeight returns how much a review last made at last counts at now.
// A review made now counts 1; one made 30 days ago counts 0.5.
func RecencyWeight(last, now time.Time) float64 {
	days := now.Sub(last).Hours() / 24
	if days < 0 {
		days = 0
	}
	return 1 / (1 + days/RecencyHalfDays)
}

// DecayedEase pulls e's ease toward the spacedrep floor by its recency
// weight. A review made now keeps its ease; an old one approaches MinEase,
// so a concept nobody has refreshed drifts toward Weak.
func DecayedEase(e spacedrep.ScheduleEntry, now time.Time) float64 {
	w := RecencyWeight(e.LastReviewed(), now)
	return spacedrep.MinEase + w*(e.EaseFactor-spacedrep.MinEase)
}

type accumulator struct {
	sum     float64
	samples int
}

func (a *accumulator) add(e spacedrep.ScheduleEntry, now time.Time) {
	a.sum += DecayedEase(e, now)
	a.samples++
}

func (a *accumulator) avg() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

// ComputeConceptStrength groups entries by (module, concept) through index
// and returns one result per group, sorted for display.
func ComputeConceptStrength(entries []spacedrep.ScheduleEntry, index Index, now time.Time) []ConceptStrength {
	return aggregate(entries, index, now, func(ref ConceptRef) ConceptRef { return ref }, MinConceptSamples)
}

// ModuleStrength is ComputeConceptStrength at module granularity.
func ModuleStrength(entries []spacedrep.ScheduleEntry, index Index, now time.Time) []ConceptStrength {
	return aggregate(entries, index, now, func(ref ConceptRef) ConceptRef {
		return ConceptRef{Module: ref.Module}
	}, MinModuleSamples)
}

func aggregate(
	entries []spacedrep.ScheduleEntry,
	index Index,
	now time.Time,
	group func(ConceptRef) ConceptRef,
	minSamples int,
) []ConceptStrength {
	groups := make(map[ConceptRef]*accumulator)
	for _, e := range entries {
		ref, ok := index[e.Key]
		if !ok {
			continue
		}
		g := group(ref)
		acc := groups[g]
		if acc == nil {
			acc = &accumulator{}
			groups[g] = acc
		}
		acc.add(e, now)
	}

	out := make([]ConceptStrength, 0, len(groups))
	for ref, acc := range groups {
		avg := acc.avg()
		out = append(out, ConceptStrength{
			Concept:     ref.Concept,
			Module:      ref.Module,
			AvgEase:     avg,
			SampleCount: acc.samples,
			Label:       LabelFor(avg, acc.samples, minSamples),
		})
	}
	SortForDisplay(out)
	return out
}

// SortForDisplay puts the weakest labelled groups first and TooEarly groups last.
func SortForDisplay(cs []ConceptStrength) {
	sort.SliceStable(cs, func(i, j int) bool {
		ei, ej := cs[i].Label == LabelTooEarly, cs[j].Label == LabelTooEarly
		if ei != ej {
			return !ei
		}
		if cs[i].AvgEase != cs[j].AvgEase {
			return cs[i].AvgEase < cs[j].AvgEase
		}
		if cs[i].Module != cs[j].Module {
			return cs[i].Module < cs[j].Module
		}
		return cs[i].Concept < cs[j].Concept
	})
}

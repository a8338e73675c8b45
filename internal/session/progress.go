package session

import (
	"context"
	"time"

	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/store"
)

// ItemProgress is what the learner did on an item the last time it was
// worked: the self-rating and whether hints or the solution were opened.
type ItemProgress struct {
	spacedrep.Outcome
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgressStore persists ItemProgress per item key in the progress record.
type ProgressStore struct {
	docs *store.Docs
	now  func() time.Time
}

// NewProgressStore creates a progress store. A nil now uses time.Now.
func NewProgressStore(docs *store.Docs, now func() time.Time) *ProgressStore {
	if now == nil {
		now = time.Now
	}
	return &ProgressStore{docs: docs, now: now}
}

func (p *ProgressStore) all(ctx context.Context) map[string]ItemProgress {
	m, _ := store.Load[map[string]ItemProgress](ctx, p.docs, store.KeyProgress)
	if m == nil {
		m = make(map[string]ItemProgress)
	}
	return m
}

func (p *ProgressStore) update(ctx context.Context, key string, fn func(*ItemProgress)) ItemProgress {
	m := p.all(ctx)
	ip := m[key]
	fn(&ip)
	ip.UpdatedAt = p.now()
	m[key] = ip
	p.docs.Save(ctx, store.KeyProgress, m)
	return ip
}

// Get returns the recorded progress for key.
func (p *ProgressStore) Get(ctx context.Context, key string) (ItemProgress, bool) {
	ip, ok := p.all(ctx)[key]
	return ip, ok
}

// Begin clears the previous attempt's flags before an item is served again.
func (p *ProgressStore) Begin(ctx context.Context, key string) {
	p.update(ctx, key, func(ip *ItemProgress) { ip.Outcome = spacedrep.Outcome{} })
}

// Rate records a 1..3 self-rating.
func (p *ProgressStore) Rate(ctx context.Context, key string, rating int) ItemProgress {
	return p.update(ctx, key, func(ip *ItemProgress) { ip.SelfRating = rating })
}

// MarkHint records that a hint was opened.
func (p *ProgressStore) MarkHint(ctx context.Context, key string) ItemProgress {
	return p.update(ctx, key, func(ip *ItemProgress) { ip.HintsUsed = true })
}

// MarkSolution records that the solution was opened.
func (p *ProgressStore) MarkSolution(ctx context.Context, key string) ItemProgress {
	return p.update(ctx, key, func(ip *ItemProgress) { ip.SolutionViewed = true })
}

// Quality derives the review quality for key from its recorded progress.
func (p *ProgressStore) Quality(ctx context.Context, key string) int {
	ip, _ := p.Get(ctx, key)
	return spacedrep.DeriveQuality(ip.Outcome)
}

package phase

import (
	"context"

	"github.com/abhisek/drill/internal/store"
)

// Repo stores the single session record.
type Repo interface {
	Load(ctx context.Context) (State, bool)
	Save(ctx context.Context, s State)
	Clear(ctx context.Context)
}

// DocRepo keeps the session record as a JSON document.
type DocRepo struct {
	docs *store.Docs
}

var _ Repo = (*DocRepo)(nil)

func NewDocRepo(docs *store.Docs) *DocRepo {
	return &DocRepo{docs: docs}
}

func (r *DocRepo) Load(ctx context.Context) (State, bool) {
	s, ok := store.Load[State](ctx, r.docs, store.KeySession)
	if ok && s.Status == "" {
		return State{}, false
	}
	return s, ok
}

func (r *DocRepo) Save(ctx context.Context, s State) {
	r.docs.Save(ctx, store.KeySession, s)
}

func (r *DocRepo) Clear(ctx context.Context) {
	r.docs.Delete(ctx, store.KeySession)
}

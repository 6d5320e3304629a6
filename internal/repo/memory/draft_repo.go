package memory

import (
	"context"
	"sync"

	"github.com/Ihido/inside-bot/internal/domain/model"
)

// DraftRepo is the in-process fallback tracker used when Redis is not
// configured. Drafts do not survive a restart.
type DraftRepo struct {
	mu     sync.Mutex
	byUser map[int64]model.Draft
}

func NewDraftRepo() *DraftRepo {
	return &DraftRepo{byUser: make(map[int64]model.Draft)}
}

func (r *DraftRepo) Get(_ context.Context, telegramID int64) (model.Draft, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.byUser[telegramID]
	return draft, ok, nil
}

func (r *DraftRepo) Set(_ context.Context, telegramID int64, draft model.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[telegramID] = draft
	return nil
}

func (r *DraftRepo) Clear(_ context.Context, telegramID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUser, telegramID)
	return nil
}

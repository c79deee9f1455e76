package inmemdb

import (
	"context"

	"github.com/bunjo05/volunteer-faster/core/booking"
)

type draftStore struct {
	db *DB
}

var _ booking.DraftStore = (*draftStore)(nil) // interface compliance check

func NewDraftStore(db *DB) *draftStore {
	return &draftStore{db: db}
}

func (store *draftStore) LoadDraft(ctx context.Context, key string) (booking.Draft, error) {
	store.db.mu.RLock()
	defer store.db.mu.RUnlock()

	if d, ok := store.db.drafts[key]; ok {
		cpy := *d
		cpy.Amounts = make(map[booking.Aspect]int64, len(d.Amounts))
		for aspect, cents := range d.Amounts {
			cpy.Amounts[aspect] = cents
		}
		return cpy, nil
	}
	return booking.Draft{}, booking.ErrDraftNotFound
}

func (store *draftStore) SaveDraft(ctx context.Context, d booking.Draft) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	store.db.drafts[d.Key] = &d
	return nil
}

func (store *draftStore) ClearDraft(ctx context.Context, key string) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	delete(store.db.drafts, key)
	return nil
}

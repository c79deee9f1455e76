package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/bunjo05/volunteer-faster/core"
	"github.com/bunjo05/volunteer-faster/core/booking"
)

// draftStore persists wizard drafts as jsonb rows. The draft is an opaque
// session document; only the key is queried on.
type draftStore struct {
	exec core.DBExecutor
}

var _ booking.DraftStore = (*draftStore)(nil) // interface compliance check

func NewDraftStore(exec core.DBExecutor) *draftStore {
	return &draftStore{exec: exec}
}

func (store draftStore) LoadDraft(ctx context.Context, key string) (booking.Draft, error) {
	q := `SELECT data FROM booking_draft WHERE key = $1`
	var data []byte
	if err := store.exec.QueryRowContext(ctx, q, key).Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return booking.Draft{}, booking.ErrDraftNotFound
		}
		return booking.Draft{}, errors.Wrap(err, "loading draft")
	}

	var d booking.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return booking.Draft{}, errors.Wrap(err, "decoding draft")
	}
	return d, nil
}

func (store draftStore) SaveDraft(ctx context.Context, d booking.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return errors.Wrap(err, "encoding draft")
	}

	q := `
	INSERT INTO booking_draft (key, data, created_at, updated_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (key)
	DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	_, err = store.exec.ExecContext(ctx, q, d.Key, data, d.CreatedAt, d.UpdatedAt)
	return errors.Wrap(err, "saving draft")
}

func (store draftStore) ClearDraft(ctx context.Context, key string) error {
	q := `DELETE FROM booking_draft WHERE key = $1`
	_, err := store.exec.ExecContext(ctx, q, key)
	return errors.Wrap(err, "clearing draft")
}

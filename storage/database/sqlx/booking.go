package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/bunjo05/volunteer-faster/core"
	"github.com/bunjo05/volunteer-faster/core/booking"
)

const bookingColumns = `id, project_id, user_id, start_date, end_date, duration_days,
	traveller_count, message, status, created_at, updated_at`

const sponsorshipColumns = `id, booking_id, items, total_cents, self_intro, skills, impact,
	commitment, agreement, privacy, created_at`

type bookingRepository struct {
	exec core.DBExecutor
}

var _ booking.Repository = (*bookingRepository)(nil) // interface compliance check

func NewBookingRepository(exec core.DBExecutor) *bookingRepository {
	return &bookingRepository{exec: exec}
}

func (repo bookingRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func scanBooking(row rowScanner) (booking.Booking, error) {
	var bkg booking.Booking
	err := row.Scan(
		&bkg.ID, &bkg.ProjectID, &bkg.UserID, &bkg.StartDate, &bkg.EndDate, &bkg.DurationDays,
		&bkg.TravellerCount, &bkg.Message, &bkg.Status, &bkg.CreatedAt, &bkg.UpdatedAt,
	)
	return bkg, err
}

func scanSponsorship(row rowScanner) (booking.Sponsorship, error) {
	var (
		sp    booking.Sponsorship
		items []byte
	)
	err := row.Scan(
		&sp.ID, &sp.BookingID, &items, &sp.TotalCents, &sp.SelfIntro, &sp.Skills, &sp.Impact,
		&sp.Commitment, &sp.Agreement, &sp.Privacy, &sp.CreatedAt,
	)
	if err != nil {
		return booking.Sponsorship{}, err
	}
	if err = json.Unmarshal(items, &sp.Items); err != nil {
		return booking.Sponsorship{}, errors.Wrap(err, "decoding sponsorship items")
	}
	return sp, nil
}

func (repo bookingRepository) CreateBooking(ctx context.Context, bkg booking.Booking, exec ...core.DBExecutor) (booking.Booking, error) {
	bkg.ID = uuid.NewString()
	q := `
	INSERT INTO booking (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := repo.getExec(exec).ExecContext(
		ctx, q,
		bkg.ID, bkg.ProjectID, bkg.UserID, bkg.StartDate, bkg.EndDate, bkg.DurationDays,
		bkg.TravellerCount, bkg.Message, bkg.Status, bkg.CreatedAt, bkg.UpdatedAt,
	)
	if err != nil {
		return booking.Booking{}, errors.Wrap(err, "inserting booking")
	}
	return bkg, nil
}

func (repo bookingRepository) CreateSponsorship(ctx context.Context, sp booking.Sponsorship, exec ...core.DBExecutor) (booking.Sponsorship, error) {
	sp.ID = uuid.NewString()
	items, err := json.Marshal(sp.Items)
	if err != nil {
		return booking.Sponsorship{}, errors.Wrap(err, "encoding sponsorship items")
	}

	q := `
	INSERT INTO sponsorship (` + sponsorshipColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = repo.getExec(exec).ExecContext(
		ctx, q,
		sp.ID, sp.BookingID, items, sp.TotalCents, sp.SelfIntro, sp.Skills, sp.Impact,
		sp.Commitment, sp.Agreement, sp.Privacy, sp.CreatedAt,
	)
	if err != nil {
		return booking.Sponsorship{}, errors.Wrap(err, "inserting sponsorship")
	}
	return sp, nil
}

func (repo bookingRepository) GetBooking(ctx context.Context, id string, exec ...core.DBExecutor) (booking.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM booking WHERE id = $1`
	bkg, err := scanBooking(repo.getExec(exec).QueryRowContext(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return booking.Booking{}, booking.ErrNotFound
		}
		return booking.Booking{}, errors.Wrap(err, "getting booking")
	}

	if err = repo.attachSponsorships(ctx, []booking.Booking{bkg}, func(i int, sp booking.Sponsorship) {
		bkg.Sponsorship = &sp
	}, exec); err != nil {
		return booking.Booking{}, err
	}
	return bkg, nil
}

func (repo bookingRepository) QueryBookingsByUser(ctx context.Context, userID string, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]booking.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM booking WHERE user_id = $1` + orderingClause(ordering, "created_at DESC")
	rows, err := repo.getExec(exec).QueryContext(ctx, q, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying bookings")
	}
	defer func() { _ = rows.Close() }()

	var bookings []booking.Booking
	for rows.Next() {
		bkg, err := scanBooking(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning booking")
		}
		bookings = append(bookings, bkg)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "querying bookings")
	}

	if err = repo.attachSponsorships(ctx, bookings, func(i int, sp booking.Sponsorship) {
		bookings[i].Sponsorship = &sp
	}, exec); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (repo bookingRepository) attachSponsorships(ctx context.Context, bookings []booking.Booking, attach func(int, booking.Sponsorship), exec []core.DBExecutor) error {
	if len(bookings) == 0 {
		return nil
	}
	ids := make([]string, 0, len(bookings))
	idx := make(map[string]int, len(bookings))
	for i, bkg := range bookings {
		ids = append(ids, bkg.ID)
		idx[bkg.ID] = i
	}

	q, args, err := sqlx.In(`SELECT `+sponsorshipColumns+` FROM sponsorship WHERE booking_id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building sponsorship query")
	}
	q = sqlx.Rebind(sqlx.DOLLAR, q)

	rows, err := repo.getExec(exec).QueryContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "querying sponsorships")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		sp, err := scanSponsorship(rows)
		if err != nil {
			return errors.Wrap(err, "scanning sponsorship")
		}
		if i, ok := idx[sp.BookingID]; ok {
			attach(i, sp)
		}
	}
	return errors.Wrap(rows.Err(), "querying sponsorships")
}

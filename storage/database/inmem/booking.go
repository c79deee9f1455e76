package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/bunjo05/volunteer-faster/core"
	"github.com/bunjo05/volunteer-faster/core/booking"
)

type bookingRepository struct {
	db *DB
}

var _ booking.Repository = (*bookingRepository)(nil) // interface compliance check

func NewBookingRepository(db *DB) *bookingRepository {
	return &bookingRepository{db: db}
}

func (repo *bookingRepository) CreateBooking(ctx context.Context, bkg booking.Booking, exec ...core.DBExecutor) (booking.Booking, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	bkg.ID = uuid.NewString()
	stored := bkg
	stored.Sponsorship = nil
	repo.db.bookings[bkg.ID] = &stored
	return bkg, nil
}

func (repo *bookingRepository) CreateSponsorship(ctx context.Context, sp booking.Sponsorship, exec ...core.DBExecutor) (booking.Sponsorship, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	sp.ID = uuid.NewString()
	repo.db.sponsorships[sp.BookingID] = &sp
	return sp, nil
}

func (repo *bookingRepository) GetBooking(ctx context.Context, id string, exec ...core.DBExecutor) (booking.Booking, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	bkg, ok := repo.db.bookings[id]
	if !ok {
		return booking.Booking{}, booking.ErrNotFound
	}
	found := *bkg
	if sp, ok := repo.db.sponsorships[id]; ok {
		cpy := *sp
		found.Sponsorship = &cpy
	}
	return found, nil
}

func (repo *bookingRepository) QueryBookingsByUser(ctx context.Context, userID string, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]booking.Booking, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var bookings []booking.Booking
	for _, bkg := range repo.db.bookings {
		if bkg.UserID != userID {
			continue
		}
		found := *bkg
		if sp, ok := repo.db.sponsorships[bkg.ID]; ok {
			cpy := *sp
			found.Sponsorship = &cpy
		}
		bookings = append(bookings, found)
	}

	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.After(bookings[j].CreatedAt) })
	return bookings, nil
}

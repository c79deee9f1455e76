package inmemdb

import (
	"sync"

	"github.com/bunjo05/volunteer-faster/core/booking"
	"github.com/bunjo05/volunteer-faster/core/project"
	"github.com/bunjo05/volunteer-faster/core/user"
)

// DB is an in-memory stand-in for the real database, used by tests and
// local tinkering. All repositories share the one mutex.
type DB struct {
	mu sync.RWMutex

	users map[string]*user.User
	codes map[string]*user.VerificationCode

	orgs     map[string]*project.Organization
	projects map[string]*project.Project

	bookings     map[string]*booking.Booking
	sponsorships map[string]*booking.Sponsorship // keyed by booking ID
	drafts       map[string]*booking.Draft
}

func NewDB() *DB {
	return &DB{
		users:        make(map[string]*user.User),
		codes:        make(map[string]*user.VerificationCode),
		orgs:         make(map[string]*project.Organization),
		projects:     make(map[string]*project.Project),
		bookings:     make(map[string]*booking.Booking),
		sponsorships: make(map[string]*booking.Sponsorship),
		drafts:       make(map[string]*booking.Draft),
	}
}

func codeKey(email string, purpose user.VerificationPurpose) string {
	return email + "|" + string(purpose)
}

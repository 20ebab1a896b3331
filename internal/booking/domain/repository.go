package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the persistence gateway for bookings. Every method takes the
// handle to run against so callers can pass either the root connection or a
// transaction; mutations that must be atomic run inside one gorm transaction.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, booking *Booking) error

	// LockUserBookings serializes concurrent cancellations for one user within
	// the calling transaction. Without it, two transactions cancelling
	// different bookings of the same user could both count the cancelled set
	// under the cap and both skip eviction.
	LockUserBookings(ctx context.Context, db *gorm.DB, userID string) error

	// FindByUser returns every booking owned by userID ordered by
	// scheduled_at ascending.
	FindByUser(ctx context.Context, db *gorm.DB, userID string) ([]Booking, error)

	// FindUpcoming returns up to limit active bookings scheduled at or after
	// now, ordered by scheduled_at ascending.
	FindUpcoming(ctx context.Context, db *gorm.DB, userID string, now time.Time, limit int) ([]Booking, error)

	// FindOwned resolves a booking by (id, userID) so one user can never
	// reach another's rows. Returns nil when absent.
	FindOwned(ctx context.Context, db *gorm.DB, id snowflake.ID, userID string) (*Booking, error)

	Update(ctx context.Context, db *gorm.DB, booking *Booking) error

	DeleteByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error

	// DeleteOwned removes a booking by (id, userID) and reports how many rows
	// went away. Zero is not an error.
	DeleteOwned(ctx context.Context, db *gorm.DB, id snowflake.ID, userID string) (int64, error)

	// FindCancelled returns the user's cancelled bookings ordered by
	// cancelled_at ascending, id ascending.
	FindCancelled(ctx context.Context, db *gorm.DB, userID string) ([]Booking, error)
}

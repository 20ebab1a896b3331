package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/riverasoft/reservas/internal/booking/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, booking *domain.Booking) error {
	return db.WithContext(ctx).Create(booking).Error
}

func (r *repo) LockUserBookings(ctx context.Context, db *gorm.DB, userID string) error {
	// A per-user advisory lock, held until the transaction commits or rolls
	// back. Row locks cannot serialize this: two cancellations of different
	// bookings lock disjoint rows, and a locking read of the cancelled set
	// would still miss rows cancelled by the other transaction under read
	// committed. sqlite transactions are single-writer and need nothing.
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", userID).Error
}

func (r *repo) FindByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_at asc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repo) FindUpcoming(ctx context.Context, db *gorm.DB, userID string, now time.Time, limit int) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND scheduled_at >= ?", userID, domain.StatusActive, now).
		Order("scheduled_at asc").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repo) FindOwned(ctx context.Context, db *gorm.DB, id snowflake.ID, userID string) (*domain.Booking, error) {
	stmt := db.WithContext(ctx)
	// Row lock pins the booking for the rest of the transaction. Per-user
	// serialization is LockUserBookings' job, not this lock's.
	// sqlite has no FOR UPDATE; its transactions are single-writer anyway.
	if stmt.Dialector.Name() == "postgres" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var booking domain.Booking
	err := stmt.Where("id = ? AND user_id = ?", id, userID).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, booking *domain.Booking) error {
	return db.WithContext(ctx).Save(booking).Error
}

func (r *repo) DeleteByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.Booking{}).Error
}

func (r *repo) DeleteOwned(ctx context.Context, db *gorm.DB, id snowflake.ID, userID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Booking{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repo) FindCancelled(ctx context.Context, db *gorm.DB, userID string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.StatusCancelled).
		Order("cancelled_at asc, id asc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

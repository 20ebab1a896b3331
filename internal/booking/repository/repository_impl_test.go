package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/riverasoft/reservas/internal/booking/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	db.Exec(`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT PRIMARY KEY,
		user_id TEXT NOT NULL,
		scheduled_at TIMESTAMP NOT NULL,
		service_name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		cancelled_at TIMESTAMP,
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)

	return db
}

// openDryRunPostgres builds statements with the postgres dialector without a
// server, capturing the SQL each repository call would issue.
func openDryRunPostgres(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()

	db, err := gorm.Open(postgres.Open("host=localhost user=postgres dbname=bookings sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open dry-run postgres: %v", err)
	}

	captured := &[]string{}
	capture := func(tx *gorm.DB) {
		*captured = append(*captured, tx.Statement.SQL.String())
	}
	if err := db.Callback().Query().After("gorm:query").Register("capture_query_sql", capture); err != nil {
		t.Fatalf("register query callback: %v", err)
	}
	if err := db.Callback().Raw().After("gorm:raw").Register("capture_raw_sql", capture); err != nil {
		t.Fatalf("register raw callback: %v", err)
	}

	return db, captured
}

func lastSQL(t *testing.T, captured *[]string) string {
	t.Helper()
	if len(*captured) == 0 {
		t.Fatal("no SQL captured")
	}
	return (*captured)[len(*captured)-1]
}

func seedBooking(t *testing.T, db *gorm.DB, r domain.Repository, id int64, userID string, scheduledAt time.Time, status domain.BookingStatus, cancelledAt *time.Time) domain.Booking {
	t.Helper()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	booking := domain.Booking{
		ID:          snowflake.ID(id),
		UserID:      userID,
		ScheduledAt: scheduledAt,
		ServiceName: "Suite",
		Status:      status,
		CancelledAt: cancelledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.Insert(context.Background(), db, &booking); err != nil {
		t.Fatalf("insert booking %d: %v", id, err)
	}
	return booking
}

func TestFindUpcomingFiltersAndLimits(t *testing.T) {
	db := openTestDB(t, "repo_upcoming")
	r := Provide()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Past, cancelled and foreign rows are all excluded.
	seedBooking(t, db, r, 1, "u1", now.Add(-time.Hour), domain.StatusActive, nil)
	cancelTime := now.Add(-time.Minute)
	seedBooking(t, db, r, 2, "u1", now.Add(time.Hour), domain.StatusCancelled, &cancelTime)
	seedBooking(t, db, r, 3, "u2", now.Add(time.Hour), domain.StatusActive, nil)
	for i := int64(0); i < 7; i++ {
		seedBooking(t, db, r, 10+i, "u1", now.Add(time.Duration(7-i)*24*time.Hour), domain.StatusActive, nil)
	}

	upcoming, err := r.FindUpcoming(ctx, db, "u1", now, 5)
	if err != nil {
		t.Fatalf("find upcoming: %v", err)
	}

	if assert.Len(t, upcoming, 5) {
		for i := 1; i < len(upcoming); i++ {
			assert.False(t, upcoming[i].ScheduledAt.Before(upcoming[i-1].ScheduledAt))
		}
		for _, booking := range upcoming {
			assert.Equal(t, "u1", booking.UserID)
			assert.Equal(t, domain.StatusActive, booking.Status)
		}
	}
}

func TestFindOwnedScopesToUser(t *testing.T) {
	db := openTestDB(t, "repo_owned")
	r := Provide()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seedBooking(t, db, r, 1, "u1", now, domain.StatusActive, nil)

	booking, err := r.FindOwned(ctx, db, snowflake.ID(1), "u1")
	if err != nil {
		t.Fatalf("find owned: %v", err)
	}
	if assert.NotNil(t, booking) {
		assert.Equal(t, snowflake.ID(1), booking.ID)
	}

	// Another user's lookup and an absent id both come back empty, not as errors.
	booking, err = r.FindOwned(ctx, db, snowflake.ID(1), "u2")
	assert.NoError(t, err)
	assert.Nil(t, booking)

	booking, err = r.FindOwned(ctx, db, snowflake.ID(999), "u1")
	assert.NoError(t, err)
	assert.Nil(t, booking)
}

func TestFindCancelledOrdersByCancellationThenID(t *testing.T) {
	db := openTestDB(t, "repo_cancelled")
	r := Provide()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	later := base.Add(time.Hour)
	seedBooking(t, db, r, 5, "u1", base, domain.StatusCancelled, &later)
	seedBooking(t, db, r, 3, "u1", base, domain.StatusCancelled, &base)
	seedBooking(t, db, r, 2, "u1", base, domain.StatusCancelled, &base)
	seedBooking(t, db, r, 9, "u1", base, domain.StatusActive, nil)

	cancelled, err := r.FindCancelled(ctx, db, "u1")
	if err != nil {
		t.Fatalf("find cancelled: %v", err)
	}

	if assert.Len(t, cancelled, 3) {
		assert.Equal(t, snowflake.ID(2), cancelled[0].ID)
		assert.Equal(t, snowflake.ID(3), cancelled[1].ID)
		assert.Equal(t, snowflake.ID(5), cancelled[2].ID)
	}
}

func TestDeleteByIDs(t *testing.T) {
	db := openTestDB(t, "repo_delete_ids")
	r := Provide()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seedBooking(t, db, r, 1, "u1", now, domain.StatusActive, nil)
	seedBooking(t, db, r, 2, "u1", now, domain.StatusActive, nil)
	seedBooking(t, db, r, 3, "u1", now, domain.StatusActive, nil)

	assert.NoError(t, r.DeleteByIDs(ctx, db, nil))

	if err := r.DeleteByIDs(ctx, db, []snowflake.ID{1, 3}); err != nil {
		t.Fatalf("delete by ids: %v", err)
	}

	remaining, err := r.FindByUser(ctx, db, "u1")
	if err != nil {
		t.Fatalf("find by user: %v", err)
	}
	if assert.Len(t, remaining, 1) {
		assert.Equal(t, snowflake.ID(2), remaining[0].ID)
	}
}

func TestFindOwnedLocksRowOnPostgres(t *testing.T) {
	db, captured := openDryRunPostgres(t)
	r := Provide()

	_, err := r.FindOwned(context.Background(), db, snowflake.ID(1), "u1")
	assert.NoError(t, err)
	assert.Contains(t, lastSQL(t, captured), "FOR UPDATE")
}

func TestLockUserBookingsTakesAdvisoryLockOnPostgres(t *testing.T) {
	db, captured := openDryRunPostgres(t)
	r := Provide()

	if err := r.LockUserBookings(context.Background(), db, "u1"); err != nil {
		t.Fatalf("lock user bookings: %v", err)
	}
	assert.Contains(t, lastSQL(t, captured), "pg_advisory_xact_lock")
}

func TestLockUserBookingsIsNoOpOnSqlite(t *testing.T) {
	db := openTestDB(t, "repo_lock_sqlite")
	r := Provide()

	// sqlite holds the database write lock for the whole transaction, so the
	// advisory lock is skipped and no statement is issued.
	assert.NoError(t, r.LockUserBookings(context.Background(), db, "u1"))
}

func TestDeleteOwned(t *testing.T) {
	db := openTestDB(t, "repo_delete_owned")
	r := Provide()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seedBooking(t, db, r, 1, "u1", now, domain.StatusActive, nil)

	deleted, err := r.DeleteOwned(ctx, db, snowflake.ID(1), "u2")
	assert.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = r.DeleteOwned(ctx, db, snowflake.ID(1), "u1")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
}

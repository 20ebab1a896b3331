package domain

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
)

func cancelledBooking(id int64, cancelledAt time.Time) Booking {
	return Booking{
		ID:          snowflake.ID(id),
		UserID:      "u1",
		Status:      StatusCancelled,
		CancelledAt: &cancelledAt,
	}
}

func TestEvictableIDsUnderCap(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	var cancelled []Booking
	for i := int64(1); i <= 5; i++ {
		cancelled = append(cancelled, cancelledBooking(i, base.Add(time.Duration(i)*time.Minute)))
	}

	assert.Empty(t, EvictableIDs(cancelled, CancelledRetentionCap))
	assert.Empty(t, EvictableIDs(nil, CancelledRetentionCap))
}

func TestEvictableIDsOldestPrefix(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	// Shuffled input: ordering must come from cancelled_at, not position.
	cancelled := []Booking{
		cancelledBooking(4, base.Add(4*time.Minute)),
		cancelledBooking(1, base.Add(1*time.Minute)),
		cancelledBooking(7, base.Add(7*time.Minute)),
		cancelledBooking(2, base.Add(2*time.Minute)),
		cancelledBooking(6, base.Add(6*time.Minute)),
		cancelledBooking(3, base.Add(3*time.Minute)),
		cancelledBooking(5, base.Add(5*time.Minute)),
	}

	got := EvictableIDs(cancelled, CancelledRetentionCap)
	assert.Equal(t, []snowflake.ID{1, 2}, got)
}

func TestEvictableIDsTieBreakOnID(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	cancelled := []Booking{
		cancelledBooking(30, at),
		cancelledBooking(10, at),
		cancelledBooking(20, at),
		cancelledBooking(50, at),
		cancelledBooking(40, at),
		cancelledBooking(60, at),
	}

	got := EvictableIDs(cancelled, CancelledRetentionCap)
	assert.Equal(t, []snowflake.ID{10}, got)
}

func TestEvictableIDsNeverSelectsNewest(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	var cancelled []Booking
	for i := int64(1); i <= 9; i++ {
		cancelled = append(cancelled, cancelledBooking(i, base.Add(time.Duration(i)*time.Minute)))
	}

	got := EvictableIDs(cancelled, CancelledRetentionCap)
	assert.Len(t, got, 4)
	for _, id := range got {
		assert.NotEqual(t, snowflake.ID(9), id)
	}
}

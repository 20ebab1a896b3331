package domain

import (
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
)

// CancelledRetentionCap is the maximum number of cancelled bookings kept per
// user. Excess oldest ones are evicted in the same transaction as the
// cancellation that pushed the count over the cap.
const CancelledRetentionCap = 5

// EvictableIDs returns the ids of the oldest cancelled bookings that must be
// removed to keep at most cap of them. Ordering is ascending cancelled_at
// with ascending id as tie-break, so eviction is deterministic and the most
// recently cancelled booking is never selected.
func EvictableIDs(cancelled []Booking, cap int) []snowflake.ID {
	if cap < 0 || len(cancelled) <= cap {
		return nil
	}

	sorted := make([]Booking, len(cancelled))
	copy(sorted, cancelled)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := cancelledAt(sorted[i]), cancelledAt(sorted[j])
		if a.Equal(b) {
			return sorted[i].ID < sorted[j].ID
		}
		return a.Before(b)
	})

	excess := len(sorted) - cap
	ids := make([]snowflake.ID, 0, excess)
	for _, booking := range sorted[:excess] {
		ids = append(ids, booking.ID)
	}
	return ids
}

func cancelledAt(b Booking) time.Time {
	if b.CancelledAt == nil {
		return time.Time{}
	}
	return *b.CancelledAt
}

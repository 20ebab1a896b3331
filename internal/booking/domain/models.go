package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking is a reservation owned by one user for a service at a scheduled
// instant. Once cancelled it never becomes active again.
type Booking struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	UserID      string            `gorm:"not null;index:idx_bookings_user_scheduled,priority:1;index:idx_bookings_user_status_cancelled,priority:1" json:"user_id"`
	ScheduledAt time.Time         `gorm:"not null;index:idx_bookings_user_scheduled,priority:2" json:"scheduled_at"`
	ServiceName string            `gorm:"not null" json:"service_name"`
	Status      BookingStatus     `gorm:"not null;default:'active';index:idx_bookings_user_status_cancelled,priority:2" json:"status"`
	CancelledAt *time.Time        `gorm:"index:idx_bookings_user_status_cancelled,priority:3" json:"cancelled_at,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

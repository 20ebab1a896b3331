package domain

import (
	"context"
	"errors"
)

type CreateBookingRequest struct {
	ScheduledAt string
	ServiceName string
	Metadata    map[string]any
}

type CancelBookingRequest struct {
	ID string
}

type DeleteBookingRequest struct {
	ID string
}

// Service owns the booking lifecycle: state transitions, transaction
// boundaries and the degradation policy for the identity and notification
// dependencies. The acting user is carried in the context.
type Service interface {
	Create(ctx context.Context, req CreateBookingRequest) (Booking, error)
	List(ctx context.Context) ([]Booking, error)
	ListUpcoming(ctx context.Context) ([]Booking, error)
	Cancel(ctx context.Context, req CancelBookingRequest) (Booking, error)
	Delete(ctx context.Context, req DeleteBookingRequest) (bool, error)
}

var (
	ErrInvalidUser    = errors.New("invalid_user")
	ErrInvalidDate    = errors.New("invalid_date")
	ErrInvalidService = errors.New("invalid_service")
	ErrNotFound       = errors.New("not_found")
)

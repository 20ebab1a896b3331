package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/riverasoft/reservas/internal/booking/domain"
	"github.com/riverasoft/reservas/internal/clock"
	"github.com/riverasoft/reservas/internal/identity"
	"github.com/riverasoft/reservas/internal/notification"
	"github.com/riverasoft/reservas/internal/usercontext"
	"github.com/riverasoft/reservas/pkg/timefmt"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const upcomingLimit = 5

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	Identity   identity.Resolver
	Dispatcher notification.Dispatcher
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	identity   identity.Resolver
	dispatcher notification.Dispatcher
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("booking.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		identity:   p.Identity,
		dispatcher: p.Dispatcher,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateBookingRequest) (domain.Booking, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.Booking{}, domain.ErrInvalidUser
	}

	serviceName := strings.TrimSpace(req.ServiceName)
	if serviceName == "" {
		return domain.Booking{}, domain.ErrInvalidService
	}

	scheduledAt, err := parseSchedule(req.ScheduledAt)
	if err != nil {
		return domain.Booking{}, domain.ErrInvalidDate
	}

	info := s.enrich(ctx, userID)

	metadata := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	now := s.clock.Now()
	booking := domain.Booking{
		ID:          s.genID.Generate(),
		UserID:      userID,
		ScheduledAt: scheduledAt,
		ServiceName: serviceName,
		Status:      domain.StatusActive,
		Metadata:    metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Insert(ctx, tx, &booking)
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.dispatch(ctx, "reserva", info, booking, s.dispatcher.DispatchCreated)

	return booking, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Booking, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidUser
	}
	return s.repo.FindByUser(ctx, s.db, userID)
}

func (s *Service) ListUpcoming(ctx context.Context) ([]domain.Booking, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidUser
	}
	return s.repo.FindUpcoming(ctx, s.db, userID, s.clock.Now(), upcomingLimit)
}

func (s *Service) Cancel(ctx context.Context, req domain.CancelBookingRequest) (domain.Booking, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.Booking{}, domain.ErrInvalidUser
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		// An id that cannot exist is indistinguishable from an absent one.
		return domain.Booking{}, domain.ErrNotFound
	}

	info := s.enrich(ctx, userID)

	var cancelled domain.Booking
	var alreadyCancelled bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Taken before any read so concurrent cancellations for the same user
		// cannot interleave around the retention check.
		if err := s.repo.LockUserBookings(ctx, tx, userID); err != nil {
			return err
		}

		booking, err := s.repo.FindOwned(ctx, tx, id, userID)
		if err != nil {
			return err
		}
		if booking == nil {
			return domain.ErrNotFound
		}

		// cancelled_at is written exactly once; a repeated cancel is a no-op.
		if booking.IsCancelled() {
			cancelled = *booking
			alreadyCancelled = true
			return nil
		}

		now := s.clock.Now()
		booking.Status = domain.StatusCancelled
		booking.CancelledAt = &now
		booking.UpdatedAt = now
		if err := s.repo.Update(ctx, tx, booking); err != nil {
			return err
		}

		// The triggering booking is the newest cancelled one, so it is never
		// in the evictable prefix.
		allCancelled, err := s.repo.FindCancelled(ctx, tx, userID)
		if err != nil {
			return err
		}
		if evict := domain.EvictableIDs(allCancelled, domain.CancelledRetentionCap); len(evict) > 0 {
			if err := s.repo.DeleteByIDs(ctx, tx, evict); err != nil {
				return err
			}
		}

		cancelled = *booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}

	if !alreadyCancelled {
		s.dispatch(ctx, "cancelacion", info, cancelled, s.dispatcher.DispatchCancelled)
	}

	return cancelled, nil
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteBookingRequest) (bool, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return false, domain.ErrInvalidUser
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return false, nil
	}

	deleted, err := s.repo.DeleteOwned(ctx, s.db, id, userID)
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// enrich resolves display data for the acting user, degrading to synthesized
// placeholder data when the identity service is unreachable or rejects the
// call. A failed enrichment never fails the booking operation.
func (s *Service) enrich(ctx context.Context, userID string) identity.UserInfo {
	token := usercontext.BearerTokenFromContext(ctx)
	info, err := s.identity.Resolve(ctx, userID, token)
	if err != nil {
		if !errors.Is(err, identity.ErrNoCredential) {
			s.log.Warn("identity enrichment degraded",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
		return identity.Fallback(userID)
	}
	return info
}

// dispatch sends one best-effort notification after the owning transaction
// committed. Failures are logged and swallowed, never retried here.
func (s *Service) dispatch(
	ctx context.Context,
	event string,
	info identity.UserInfo,
	booking domain.Booking,
	send func(context.Context, notification.Payload) error,
) {
	displayName := info.DisplayName
	if strings.TrimSpace(displayName) == "" {
		displayName = "Usuario"
	}

	payload := notification.Payload{
		Email:   info.Email,
		Name:    displayName,
		Service: booking.ServiceName,
		Date:    timefmt.Minute(booking.ScheduledAt),
	}

	if err := send(ctx, payload); err != nil {
		s.log.Warn("notification dispatch degraded",
			zap.String("event", event),
			zap.String("booking_id", booking.ID.String()),
			zap.Error(err),
		)
	}
}

func parseSchedule(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, domain.ErrInvalidDate
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	// Zone-less inputs are interpreted in the service's civil time zone.
	layouts := []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, timefmt.Location()); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.ErrInvalidDate
}

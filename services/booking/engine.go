// File: services/booking/engine.go
package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"wrenchly/database/repository"
	"wrenchly/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	reserveMaxAttempts  = 3
	reserveRetryBackoff = 100 * time.Millisecond
	sideEffectTimeout   = 30 * time.Second
)

// Create turns a booking request into a durable, conflict-free reservation.
// The slot mark and the booking insert commit in one transaction; calendar
// sync and notification run after the commit and never unwind it.
func (s *DefaultBookingService) Create(ctx context.Context, p *models.Principal, input models.BookingCreateInput) (*models.Booking, error) {
	// Bookings belong to whoever carries the customer email; only admins may
	// book on someone else's behalf.
	if !p.CanActFor(input.CustomerEmail) {
		return nil, NewError(KindPermissionDenied, "cannot book on behalf of another customer")
	}

	if s.Area != nil {
		if err := s.Area.Validate(input.CustomerZip); err != nil {
			return nil, WrapError(KindInvalidArgument, "address outside service area", err)
		}
	}

	svc, err := s.Catalog.GetByID(ctx, input.ServiceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(KindNotFound, "service not found")
	}
	if err != nil {
		return nil, WrapError(KindInternal, "failed to resolve service", err)
	}
	if !svc.Active {
		return nil, NewError(KindNotFound, "service is no longer offered")
	}

	if err := s.checkSlotAlignment(input.SlotStart); err != nil {
		return nil, err
	}

	day := input.SlotStart.Format("2006-01-02")
	slotKey := input.SlotStart.Format("15:04")

	mechanicID, err := s.resolveMechanic(ctx, day, slotKey, input.SlotStart.Weekday())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &models.Booking{
		ID:              uuid.New().String(),
		ServiceID:       svc.ID,
		MechanicID:      mechanicID,
		ServiceName:     svc.Name,
		ServicePrice:    svc.Price,
		SlotStart:       input.SlotStart,
		SlotEnd:         input.SlotStart.Add(time.Duration(svc.Minutes) * time.Minute),
		CustomerUID:     p.UID,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		CustomerCity:    input.CustomerCity,
		CustomerState:   input.CustomerState,
		CustomerZip:     input.CustomerZip,
		VehicleID:       input.VehicleID,
		Notes:           input.Notes,
		Status:          models.BookingPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.reserveWithRetry(ctx, b); err != nil {
		return nil, err
	}

	s.Cache.DropDay(ctx, day)
	go s.afterCreate(b)

	return b, nil
}

func (s *DefaultBookingService) checkSlotAlignment(start time.Time) error {
	gran := s.GranularityMin
	if gran <= 0 {
		gran = 30
	}
	minutes := start.Hour()*60 + start.Minute()
	if start.Second() != 0 || start.Nanosecond() != 0 || minutes%gran != 0 {
		return NewError(KindInvalidArgument, "requested start does not fall on a slot boundary")
	}
	return nil
}

// resolveMechanic picks the mechanic that will take the booking. With the
// day record published, eligibility means: contributed to the day and
// scheduled to work at the requested time. Ties break on the lowest ID so
// the choice is deterministic. Without a day record, dynamic deployments
// fall back to the schedule alone.
func (s *DefaultBookingService) resolveMechanic(ctx context.Context, day, slotKey string, weekday time.Weekday) (string, error) {
	rec, err := s.Availability.GetDay(ctx, day)
	if errors.Is(err, repository.ErrNotFound) {
		if !s.AllowDynamicDays {
			return "", NewError(KindDayNotPublished, "availability has not been generated for that day")
		}
		return s.anyScheduledMechanic(ctx, slotKey, weekday)
	}
	if err != nil {
		return "", WrapError(KindInternal, "failed to read availability", err)
	}

	if rec.Slots[slotKey] != models.SlotFree {
		return "", NewError(KindConflict, "time slot is not available")
	}

	ids := append([]string(nil), rec.Mechanics...)
	sort.Strings(ids)
	for _, id := range ids {
		mech, err := s.Mechanics.GetByID(ctx, id)
		if err != nil {
			continue
		}
		if mech.Active && mechanicCovers(mech, slotKey, weekday) {
			return mech.ID, nil
		}
	}
	return "", NewError(KindConflict, "no mechanic available at that time")
}

func (s *DefaultBookingService) anyScheduledMechanic(ctx context.Context, slotKey string, weekday time.Weekday) (string, error) {
	mechanics, err := s.Mechanics.ListActive(ctx)
	if err != nil {
		return "", WrapError(KindInternal, "failed to list mechanics", err)
	}
	sort.Slice(mechanics, func(i, j int) bool { return mechanics[i].ID < mechanics[j].ID })
	for _, mech := range mechanics {
		if mechanicCovers(&mech, slotKey, weekday) {
			return mech.ID, nil
		}
	}
	return "", NewError(KindConflict, "no mechanic available at that time")
}

// mechanicCovers relies on zero-padded HH:MM keys comparing correctly as
// strings.
func mechanicCovers(m *models.Mechanic, slotKey string, weekday time.Weekday) bool {
	hours := m.Schedule.ForWeekday(weekday)
	if !hours.Complete() {
		return false
	}
	return slotKey >= hours.Start && slotKey < hours.End
}

// reserveWithRetry drives the atomic reserve-and-write, re-reading fresh
// state on each attempt. Only transient infrastructure errors are retried;
// a lost race surfaces immediately as a conflict.
func (s *DefaultBookingService) reserveWithRetry(ctx context.Context, b *models.Booking) error {
	backoff := reserveRetryBackoff
	var lastErr error
	for attempt := 1; attempt <= reserveMaxAttempts; attempt++ {
		err := s.Bookings.ReserveSlot(ctx, b, s.AllowDynamicDays)
		if err == nil {
			return nil
		}
		if errors.Is(err, repository.ErrSlotTaken) {
			return NewError(KindConflict, "time slot is no longer available")
		}
		if errors.Is(err, repository.ErrDayNotPublished) {
			return NewError(KindDayNotPublished, "availability has not been generated for that day")
		}
		if !repository.IsTransient(err) {
			return WrapError(KindInternal, "booking transaction failed", err)
		}
		lastErr = err
		s.Logger.Warn("transient error reserving slot, retrying",
			zap.String("booking", b.ID),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < reserveMaxAttempts {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return WrapError(KindTransient, "booking cancelled while retrying", ctx.Err())
			}
			backoff *= 2
		}
	}
	return WrapError(KindTransient, "booking storage unavailable", lastErr)
}

// afterCreate runs the post-commit side effects on a fresh context so they
// outlive the request.
func (s *DefaultBookingService) afterCreate(b *models.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	if s.Calendar != nil {
		eventID, err := s.Calendar.CreateEvent(ctx, b)
		if err != nil {
			s.Logger.Warn("calendar event creation failed",
				zap.String("booking", b.ID), zap.Error(err))
		} else if err := s.Bookings.SetCalendarEventID(ctx, b.ID, eventID); err != nil {
			s.Logger.Warn("failed to persist calendar event id",
				zap.String("booking", b.ID), zap.Error(err))
		}
	}

	s.notify(ctx, models.NotificationPayload{
		Kind:           models.NotifyBookingCreated,
		BookingID:      b.ID,
		RecipientEmail: b.CustomerEmail,
		RecipientName:  b.CustomerName,
		ServiceName:    b.ServiceName,
		SlotStart:      b.SlotStart.Format(time.RFC3339),
	})
}

// notify swallows dispatch failures; notifications are advisory.
func (s *DefaultBookingService) notify(ctx context.Context, payload models.NotificationPayload) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Dispatch(ctx, payload); err != nil {
		s.Logger.Warn("notification dispatch failed",
			zap.String("kind", payload.Kind),
			zap.String("booking", payload.BookingID),
			zap.Error(err))
	}
}

// Get returns a booking, restricted to its owner unless the caller is staff.
func (s *DefaultBookingService) Get(ctx context.Context, p *models.Principal, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(KindNotFound, "booking not found")
	}
	if err != nil {
		return nil, WrapError(KindInternal, "failed to fetch booking", err)
	}
	if !p.Admin && !p.Mechanic && !p.CanActFor(b.CustomerEmail) {
		return nil, NewError(KindPermissionDenied, "not your booking")
	}
	return b, nil
}

// List applies the caller's visibility: customers only ever see their own
// bookings.
func (s *DefaultBookingService) List(ctx context.Context, p *models.Principal, f models.BookingFilter) ([]models.Booking, error) {
	if !p.Admin && !p.Mechanic {
		f.CustomerEmail = p.Email
	}
	bookings, err := s.Bookings.List(ctx, f)
	if err != nil {
		return nil, WrapError(KindInternal, "failed to list bookings", err)
	}
	return bookings, nil
}

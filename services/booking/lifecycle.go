// File: services/booking/lifecycle.go
package booking

import (
	"context"
	"errors"
	"time"

	"wrenchly/database/repository"
	bookingRepo "wrenchly/database/repository/booking"
	"wrenchly/models"

	"go.uber.org/zap"
)

// Approve moves a pending booking to confirmed, recording who approved it.
func (s *DefaultBookingService) Approve(ctx context.Context, p *models.Principal, id, notes string) (*models.Booking, error) {
	if !p.Admin && !p.Mechanic {
		return nil, NewError(KindPermissionDenied, "only staff can approve bookings")
	}

	b, err := s.update(ctx, id, func(b *models.Booking) (*bookingRepo.SlotRelease, error) {
		if b.Status != models.BookingPending {
			return nil, NewError(KindInvalidState, "only pending bookings can be approved")
		}
		now := time.Now().UTC()
		b.Status = models.BookingConfirmed
		b.ApprovedBy = p.Email
		b.ApprovedAt = &now
		b.ApprovalNotes = notes
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	go s.afterTransition(b, models.NotifyBookingConfirmed, "", false)
	return b, nil
}

// Deny moves a pending booking to denied and frees its slot in the same
// transaction, releasing the capacity back for sale.
func (s *DefaultBookingService) Deny(ctx context.Context, p *models.Principal, id, notes string) (*models.Booking, error) {
	if !p.Admin && !p.Mechanic {
		return nil, NewError(KindPermissionDenied, "only staff can deny bookings")
	}

	b, err := s.update(ctx, id, func(b *models.Booking) (*bookingRepo.SlotRelease, error) {
		if b.Status != models.BookingPending {
			return nil, NewError(KindInvalidState, "only pending bookings can be denied")
		}
		now := time.Now().UTC()
		b.Status = models.BookingDenied
		b.ApprovedBy = p.Email
		b.ApprovedAt = &now
		b.ApprovalNotes = notes
		return &bookingRepo.SlotRelease{Day: b.Day(), Key: b.SlotKey()}, nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.DropDay(ctx, b.Day())
	go s.afterTransition(b, models.NotifyBookingDenied, notes, true)
	return b, nil
}

// Cancel lets the booking's own customer, or an administrator, cancel a
// pending or confirmed booking. The slot is freed in the same transaction.
func (s *DefaultBookingService) Cancel(ctx context.Context, p *models.Principal, id, reason string) (*models.Booking, error) {
	b, err := s.update(ctx, id, func(b *models.Booking) (*bookingRepo.SlotRelease, error) {
		if !p.CanActFor(b.CustomerEmail) {
			return nil, NewError(KindPermissionDenied, "not your booking")
		}
		if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
			return nil, NewError(KindInvalidState, "booking cannot be cancelled from status "+b.Status)
		}
		now := time.Now().UTC()
		b.Status = models.BookingCancelled
		b.CancelledBy = p.Email
		b.CancelledAt = &now
		b.CancelReason = reason
		return &bookingRepo.SlotRelease{Day: b.Day(), Key: b.SlotKey()}, nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.DropDay(ctx, b.Day())
	go s.afterTransition(b, models.NotifyBookingCancelled, reason, true)
	return b, nil
}

// RequestReschedule records the customer's reason and 1 to 3 candidate slots.
// No slot moves here; resolving the request is a separate administrative
// step.
func (s *DefaultBookingService) RequestReschedule(ctx context.Context, p *models.Principal, id, reason string, candidates []time.Time) (*models.Booking, error) {
	if len(candidates) < 1 || len(candidates) > 3 {
		return nil, NewError(KindInvalidArgument, "between 1 and 3 candidate slots are required")
	}

	b, err := s.update(ctx, id, func(b *models.Booking) (*bookingRepo.SlotRelease, error) {
		// Reschedule requests come from the customer, not staff.
		if p.Email != b.CustomerEmail {
			return nil, NewError(KindPermissionDenied, "only the booking's customer can request a reschedule")
		}
		if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
			return nil, NewError(KindInvalidState, "booking cannot be rescheduled from status "+b.Status)
		}
		now := time.Now().UTC()
		b.Status = models.BookingRescheduleRequested
		b.RescheduleReason = reason
		b.RescheduleSlots = candidates
		b.RescheduleRequestedAt = &now
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	go s.afterTransition(b, models.NotifyRescheduleRequest, reason, false)
	return b, nil
}

// PatchStatus is the administrative escape hatch for transitions the
// dedicated operations do not cover, such as completed and no-show. It
// deliberately does not validate reachability from the current status.
func (s *DefaultBookingService) PatchStatus(ctx context.Context, p *models.Principal, id, status string) (*models.Booking, error) {
	if !p.Admin {
		return nil, NewError(KindPermissionDenied, "only administrators can patch booking status")
	}
	if !validStatus(status) {
		return nil, NewError(KindInvalidArgument, "unknown status "+status)
	}

	return s.update(ctx, id, func(b *models.Booking) (*bookingRepo.SlotRelease, error) {
		b.Status = status
		return nil, nil
	})
}

func validStatus(status string) bool {
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingDenied,
		models.BookingCancelled, models.BookingCompleted, models.BookingNoShow,
		models.BookingRescheduleRequested:
		return true
	}
	return false
}

// update wraps the repository transaction and maps its sentinels onto
// tagged errors. Transient infra failures are retried the same way the
// engine retries reservations.
func (s *DefaultBookingService) update(ctx context.Context, id string, mutate bookingRepo.MutateFunc) (*models.Booking, error) {
	backoff := reserveRetryBackoff
	var lastErr error
	for attempt := 1; attempt <= reserveMaxAttempts; attempt++ {
		b, err := s.Bookings.UpdateTransactionally(ctx, id, mutate)
		if err == nil {
			return b, nil
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewError(KindNotFound, "booking not found")
		}
		var be *Error
		if errors.As(err, &be) {
			return nil, err
		}
		if !repository.IsTransient(err) {
			return nil, WrapError(KindInternal, "booking transition failed", err)
		}
		lastErr = err
		s.Logger.Warn("transient error updating booking, retrying",
			zap.String("booking", id),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < reserveMaxAttempts {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, WrapError(KindTransient, "transition cancelled while retrying", ctx.Err())
			}
			backoff *= 2
		}
	}
	return nil, WrapError(KindTransient, "booking storage unavailable", lastErr)
}

// afterTransition handles the best-effort follow-ups shared by the
// lifecycle transitions: optional calendar event deletion and a
// notification describing what happened.
func (s *DefaultBookingService) afterTransition(b *models.Booking, kind, reason string, dropCalendarEvent bool) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	if dropCalendarEvent && s.Calendar != nil && b.CalendarEventID != "" {
		if err := s.Calendar.DeleteEvent(ctx, b.CalendarEventID); err != nil {
			s.Logger.Warn("calendar event deletion failed",
				zap.String("booking", b.ID),
				zap.String("event", b.CalendarEventID),
				zap.Error(err))
		}
	}

	s.notify(ctx, models.NotificationPayload{
		Kind:           kind,
		BookingID:      b.ID,
		RecipientEmail: b.CustomerEmail,
		RecipientName:  b.CustomerName,
		ServiceName:    b.ServiceName,
		SlotStart:      b.SlotStart.Format(time.RFC3339),
		Reason:         reason,
	})
}

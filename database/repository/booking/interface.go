// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"wrenchly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotRelease asks a transactional status update to free the named slot,
// but only if it is currently booked.
type SlotRelease struct {
	Day string
	Key string
}

// MutateFunc describes the read-modify-write applied to a booking inside a
// transaction. It receives the freshly-read booking, mutates it in place, and
// may return a SlotRelease to commit alongside the booking update. Returning
// an error aborts the transaction with no partial writes.
type MutateFunc func(b *models.Booking) (*SlotRelease, error)

// BookingRepository owns the booking collection and the cross-collection
// transactions that keep it consistent with the availability day records.
type BookingRepository interface {
	// ReserveSlot atomically verifies the booking's slot is free, marks it
	// booked, and inserts the booking record. Returns
	// repository.ErrDayNotPublished when the day record is missing and
	// dynamic synthesis is off, repository.ErrSlotTaken when the slot is not
	// free.
	ReserveSlot(ctx context.Context, booking *models.Booking, allowDynamic bool) error
	// UpdateTransactionally re-reads the booking, applies mutate, and commits
	// the result (plus an optional slot release) in one transaction.
	UpdateTransactionally(ctx context.Context, bookingID string, mutate MutateFunc) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error)
	// SetCalendarEventID persists the external calendar reference after the
	// booking has committed; best-effort callers ignore failures.
	SetCalendarEventID(ctx context.Context, id, eventID string) error
}

type mongoBookingRepo struct {
	bookingColl *mongo.Collection
	availColl   *mongo.Collection
	client      *mongo.Client
}

// NewMongoBookingRepo constructs a MongoDB-backed BookingRepository.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &mongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		availColl:   db.Collection("availability"),
		client:      db.Client(),
	}
}

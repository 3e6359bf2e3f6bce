// File: database/repository/booking/booking_mongo.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wrenchly/database/repository"
	"wrenchly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *mongoBookingRepo) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.CustomerUID != "" {
		filter["customerUid"] = f.CustomerUID
	}
	if f.CustomerEmail != "" {
		filter["customerEmail"] = f.CustomerEmail
	}
	if f.MechanicID != "" {
		filter["mechanicId"] = f.MechanicID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Day != "" {
		dayStart, err := time.Parse("2006-01-02", f.Day)
		if err != nil {
			return nil, fmt.Errorf("invalid day filter %q: %w", f.Day, err)
		}
		filter["slotStart"] = bson.M{
			"$gte": dayStart,
			"$lt":  dayStart.AddDate(0, 0, 1),
		}
	}

	opts := options.Find().SetSort(bson.M{"slotStart": 1})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) SetCalendarEventID(ctx context.Context, id, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"calendarEventId": eventID,
		"updatedAt":       time.Now().UTC(),
	}}
	res, err := r.bookingColl.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set calendar event id: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

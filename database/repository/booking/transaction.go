// File: database/repository/booking/transaction.go
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
)

// withTransaction runs fn inside a session transaction with the
// start/abort/commit sequence shared by both write paths below.
func (r *mongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// ReserveSlot is the booking engine's atomic boundary: one transaction reads
// the day record, verifies the slot, marks it booked and writes the booking.
// Two racing requests serialize here; the loser sees ErrSlotTaken.
func (r *mongoBookingRepo) ReserveSlot(ctx context.Context, booking *models.Booking, allowDynamic bool) error {
	day := booking.Day()
	key := booking.SlotKey()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		now := time.Now().UTC()

		var rec models.AvailabilityDay
		err := r.availColl.FindOne(sc, bson.M{"day": day}).Decode(&rec)
		if errors.Is(err, mongo.ErrNoDocuments) {
			if !allowDynamic {
				return repository.ErrDayNotPublished
			}
			rec = models.AvailabilityDay{
				Day:                  day,
				Slots:                map[string]models.SlotState{key: models.SlotBooked},
				Mechanics:            []string{booking.MechanicID},
				GeneratedDynamically: true,
				CreatedAt:            now,
				UpdatedAt:            now,
			}
			if _, err := r.availColl.InsertOne(sc, rec); err != nil {
				return fmt.Errorf("insert dynamic availability day failed: %w", err)
			}
			if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
				return fmt.Errorf("insert booking failed: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("read availability day failed: %w", err)
		}

		if rec.Slots[key] != models.SlotFree {
			return repository.ErrSlotTaken
		}

		update := bson.M{"$set": bson.M{
			"slots." + key: models.SlotBooked,
			"updatedAt":    now,
		}}
		res, err := r.availColl.UpdateOne(sc, bson.M{"day": day, "slots." + key: models.SlotFree}, update)
		if err != nil {
			return fmt.Errorf("mark slot booked failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return repository.ErrSlotTaken
		}

		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	})
}

// UpdateTransactionally re-reads the booking under the transaction, lets the
// caller's closure decide the transition, and commits booking plus optional
// slot release together.
func (r *mongoBookingRepo) UpdateTransactionally(ctx context.Context, bookingID string, mutate MutateFunc) (*models.Booking, error) {
	var updated models.Booking

	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var b models.Booking
		err := r.bookingColl.FindOne(sc, bson.M{"id": bookingID}).Decode(&b)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("read booking failed: %w", err)
		}

		release, err := mutate(&b)
		if err != nil {
			return err
		}
		b.UpdatedAt = time.Now().UTC()

		if _, err := r.bookingColl.ReplaceOne(sc, bson.M{"id": bookingID}, b); err != nil {
			return fmt.Errorf("write booking failed: %w", err)
		}

		if release != nil {
			// Free the slot only if it is still booked; a blocked or already
			// freed slot is left alone.
			filter := bson.M{"day": release.Day, "slots." + release.Key: models.SlotBooked}
			update := bson.M{"$set": bson.M{
				"slots." + release.Key: models.SlotFree,
				"updatedAt":            time.Now().UTC(),
			}}
			if _, err := r.availColl.UpdateOne(sc, filter, update); err != nil {
				return fmt.Errorf("release slot failed: %w", err)
			}
		}

		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// File: database/repository/availability/availability_mongo.go
package availabilityRepo

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

func (r *mongoAvailabilityRepo) GetDay(ctx context.Context, day string) (*models.AvailabilityDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec models.AvailabilityDay
	err := r.coll.FindOne(ctx, bson.M{"day": day}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability for %s: %w", day, err)
	}
	return &rec, nil
}

func (r *mongoAvailabilityRepo) ListDays(ctx context.Context, from, to string) ([]models.AvailabilityDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"day": bson.M{"$gte": from, "$lte": to}}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"day": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list availability days: %w", err)
	}
	defer cursor.Close(ctx)

	var days []models.AvailabilityDay
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("failed to decode availability days: %w", err)
	}
	return days, nil
}

// MergeMechanicGrid performs the seeder's read-merge-write for one
// (mechanic, day) pair inside a Mongo transaction so concurrent seed runs and
// in-flight bookings cannot lose updates.
func (r *mongoAvailabilityRepo) MergeMechanicGrid(ctx context.Context, day, mechanicID string, grid map[string]models.SlotState) (bool, error) {
	sess, err := r.client.StartSession()
	if err != nil {
		return false, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var created bool
	txnFn := func(sc mongo.SessionContext) error {
		now := time.Now().UTC()

		var rec models.AvailabilityDay
		err := r.coll.FindOne(sc, bson.M{"day": day}).Decode(&rec)
		if errors.Is(err, mongo.ErrNoDocuments) {
			rec = models.AvailabilityDay{
				Day:       day,
				Slots:     grid,
				Mechanics: []string{mechanicID},
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err := r.coll.InsertOne(sc, rec); err != nil {
				return fmt.Errorf("insert availability day failed: %w", err)
			}
			created = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("read availability day failed: %w", err)
		}

		// Never overwrite a booked slot; absent, free and blocked keys take
		// the generated value.
		merged := rec.Slots
		if merged == nil {
			merged = make(map[string]models.SlotState, len(grid))
		}
		for key, state := range grid {
			if merged[key] != models.SlotBooked {
				merged[key] = state
			}
		}

		update := bson.M{
			"$set":      bson.M{"slots": merged, "updatedAt": now},
			"$addToSet": bson.M{"mechanics": mechanicID},
		}
		if _, err := r.coll.UpdateOne(sc, bson.M{"day": day}, update); err != nil {
			return fmt.Errorf("merge availability day failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return false, err
	}
	return created, nil
}

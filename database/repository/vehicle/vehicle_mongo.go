// File: database/repository/vehicle/vehicle_mongo.go
package vehicleRepo

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

// VehicleRepository manages customer vehicles. The primary flag is kept
// unique per owner through transactions.
type VehicleRepository interface {
	// Create inserts the vehicle; when it is the owner's first, it becomes
	// primary inside the same transaction.
	Create(ctx context.Context, v *models.Vehicle) error
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	ListByUser(ctx context.Context, userID string) ([]models.Vehicle, error)
	Update(ctx context.Context, id, userID string, set bson.M) error
	Delete(ctx context.Context, id, userID string) error
	// SetPrimary promotes one vehicle and demotes the owner's others atomically.
	SetPrimary(ctx context.Context, id, userID string) error
}

type mongoVehicleRepo struct {
	coll   *mongo.Collection
	client *mongo.Client
}

// NewMongoVehicleRepo constructs a MongoDB-backed VehicleRepository.
func NewMongoVehicleRepo(db *mongo.Database) VehicleRepository {
	return &mongoVehicleRepo{coll: db.Collection("vehicles"), client: db.Client()}
}

func (r *mongoVehicleRepo) Create(ctx context.Context, v *models.Vehicle) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		count, err := r.coll.CountDocuments(sc, bson.M{"userId": v.UserID})
		if err != nil {
			return fmt.Errorf("count vehicles failed: %w", err)
		}
		v.IsPrimary = count == 0
		if _, err := r.coll.InsertOne(sc, v); err != nil {
			return fmt.Errorf("insert vehicle failed: %w", err)
		}
		return nil
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

func (r *mongoVehicleRepo) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var v models.Vehicle
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle %s: %w", id, err)
	}
	return &v, nil
}

func (r *mongoVehicleRepo) ListByUser(ctx context.Context, userID string) ([]models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *mongoVehicleRepo) Update(ctx context.Context, id, userID string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "userId": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update vehicle %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoVehicleRepo) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoVehicleRepo) SetPrimary(ctx context.Context, id, userID string) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sc,
			bson.M{"id": id, "userId": userID},
			bson.M{"$set": bson.M{"isPrimary": true, "updatedAt": time.Now().UTC()}})
		if err != nil {
			return fmt.Errorf("promote vehicle failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return repository.ErrNotFound
		}
		if _, err := r.coll.UpdateMany(sc,
			bson.M{"userId": userID, "id": bson.M{"$ne": id}},
			bson.M{"$set": bson.M{"isPrimary": false}}); err != nil {
			return fmt.Errorf("demote vehicles failed: %w", err)
		}
		return nil
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

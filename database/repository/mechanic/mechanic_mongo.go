// File: database/repository/mechanic/mechanic_mongo.go
package mechanicRepo

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

// MechanicRepository manages mechanic profiles and weekly schedules.
type MechanicRepository interface {
	Create(ctx context.Context, m *models.Mechanic) error
	GetByID(ctx context.Context, id string) (*models.Mechanic, error)
	ListActive(ctx context.Context) ([]models.Mechanic, error)
	List(ctx context.Context) ([]models.Mechanic, error)
	UpdateSchedule(ctx context.Context, id string, schedule models.WeeklySchedule) error
	Update(ctx context.Context, id string, set bson.M) error
}

type mongoMechanicRepo struct {
	coll *mongo.Collection
}

// NewMongoMechanicRepo constructs a MongoDB-backed MechanicRepository.
func NewMongoMechanicRepo(db *mongo.Database) MechanicRepository {
	return &mongoMechanicRepo{coll: db.Collection("mechanics")}
}

func (r *mongoMechanicRepo) Create(ctx context.Context, m *models.Mechanic) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to insert mechanic: %w", err)
	}
	return nil
}

func (r *mongoMechanicRepo) GetByID(ctx context.Context, id string) (*models.Mechanic, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var m models.Mechanic
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mechanic %s: %w", id, err)
	}
	return &m, nil
}

func (r *mongoMechanicRepo) ListActive(ctx context.Context) ([]models.Mechanic, error) {
	return r.list(ctx, bson.M{"active": true})
}

func (r *mongoMechanicRepo) List(ctx context.Context) ([]models.Mechanic, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoMechanicRepo) list(ctx context.Context, filter bson.M) ([]models.Mechanic, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list mechanics: %w", err)
	}
	defer cursor.Close(ctx)

	var mechanics []models.Mechanic
	if err := cursor.All(ctx, &mechanics); err != nil {
		return nil, fmt.Errorf("failed to decode mechanics: %w", err)
	}
	return mechanics, nil
}

func (r *mongoMechanicRepo) UpdateSchedule(ctx context.Context, id string, schedule models.WeeklySchedule) error {
	return r.Update(ctx, id, bson.M{"schedule": schedule})
}

func (r *mongoMechanicRepo) Update(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update mechanic %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

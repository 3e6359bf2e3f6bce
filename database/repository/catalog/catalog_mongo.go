// File: database/repository/catalog/catalog_mongo.go
package catalogRepo

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

// CatalogRepository manages the bookable service catalog.
type CatalogRepository interface {
	Create(ctx context.Context, s *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	ListActive(ctx context.Context) ([]models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
	Update(ctx context.Context, id string, set bson.M) error
	// Deactivate soft-deletes a service; bookings keep their denormalized copy.
	Deactivate(ctx context.Context, id string) error
}

type mongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo constructs a MongoDB-backed CatalogRepository.
func NewMongoCatalogRepo(db *mongo.Database) CatalogRepository {
	return &mongoCatalogRepo{coll: db.Collection("services")}
}

func (r *mongoCatalogRepo) Create(ctx context.Context, s *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to insert service: %w", err)
	}
	return nil
}

func (r *mongoCatalogRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Service
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &s, nil
}

func (r *mongoCatalogRepo) ListActive(ctx context.Context) ([]models.Service, error) {
	return r.list(ctx, bson.M{"active": true})
}

func (r *mongoCatalogRepo) List(ctx context.Context) ([]models.Service, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoCatalogRepo) list(ctx context.Context, filter bson.M) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (r *mongoCatalogRepo) Update(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update service %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCatalogRepo) Deactivate(ctx context.Context, id string) error {
	return r.Update(ctx, id, bson.M{"active": false})
}

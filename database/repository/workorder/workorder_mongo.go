// File: database/repository/workorder/workorder_mongo.go
package workorderRepo

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

// WorkOrderRepository manages work orders and the parts inventory backing
// them.
type WorkOrderRepository interface {
	Create(ctx context.Context, wo *models.WorkOrder) error
	GetByID(ctx context.Context, id string) (*models.WorkOrder, error)
	List(ctx context.Context, customerUID, mechanicID, status string) ([]models.WorkOrder, error)
	Replace(ctx context.Context, wo *models.WorkOrder) error
	Delete(ctx context.Context, id string) error
	AddPhoto(ctx context.Context, id, publicID string) error
	RemovePhoto(ctx context.Context, id, publicID string) error

	CreatePart(ctx context.Context, p *models.Part) error
	GetPart(ctx context.Context, id string) (*models.Part, error)
	ListParts(ctx context.Context) ([]models.Part, error)
	ListLowStockParts(ctx context.Context) ([]models.Part, error)
	UpdatePart(ctx context.Context, id string, set bson.M) error
	DeletePart(ctx context.Context, id string) error
	// AdjustPartQuantity applies a signed delta transactionally; the quantity
	// never goes below zero.
	AdjustPartQuantity(ctx context.Context, id string, delta int) (*models.Part, error)
}

type mongoWorkOrderRepo struct {
	woColl   *mongo.Collection
	partColl *mongo.Collection
	client   *mongo.Client
}

// NewMongoWorkOrderRepo constructs a MongoDB-backed WorkOrderRepository.
func NewMongoWorkOrderRepo(db *mongo.Database) WorkOrderRepository {
	return &mongoWorkOrderRepo{
		woColl:   db.Collection("workorders"),
		partColl: db.Collection("parts"),
		client:   db.Client(),
	}
}

func (r *mongoWorkOrderRepo) Create(ctx context.Context, wo *models.WorkOrder) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.woColl.InsertOne(ctx, wo); err != nil {
		return fmt.Errorf("failed to insert work order: %w", err)
	}
	return nil
}

func (r *mongoWorkOrderRepo) GetByID(ctx context.Context, id string) (*models.WorkOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var wo models.WorkOrder
	err := r.woColl.FindOne(ctx, bson.M{"id": id}).Decode(&wo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work order %s: %w", id, err)
	}
	return &wo, nil
}

func (r *mongoWorkOrderRepo) List(ctx context.Context, customerUID, mechanicID, status string) ([]models.WorkOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if customerUID != "" {
		filter["customerUid"] = customerUID
	}
	if mechanicID != "" {
		filter["mechanicId"] = mechanicID
	}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.woColl.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.WorkOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode work orders: %w", err)
	}
	return orders, nil
}

func (r *mongoWorkOrderRepo) Replace(ctx context.Context, wo *models.WorkOrder) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	wo.UpdatedAt = time.Now().UTC()
	res, err := r.woColl.ReplaceOne(ctx, bson.M{"id": wo.ID}, wo)
	if err != nil {
		return fmt.Errorf("failed to replace work order %s: %w", wo.ID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoWorkOrderRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.woColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete work order %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoWorkOrderRepo) AddPhoto(ctx context.Context, id, publicID string) error {
	return r.updatePhotos(ctx, id, bson.M{"$addToSet": bson.M{"photos": publicID}})
}

func (r *mongoWorkOrderRepo) RemovePhoto(ctx context.Context, id, publicID string) error {
	return r.updatePhotos(ctx, id, bson.M{"$pull": bson.M{"photos": publicID}})
}

func (r *mongoWorkOrderRepo) updatePhotos(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update["$set"] = bson.M{"updatedAt": time.Now().UTC()}
	res, err := r.woColl.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update work order photos: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// File: database/repository/workorder/parts_mongo.go
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
)

func (r *mongoWorkOrderRepo) CreatePart(ctx context.Context, p *models.Part) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.partColl.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to insert part: %w", err)
	}
	return nil
}

func (r *mongoWorkOrderRepo) GetPart(ctx context.Context, id string) (*models.Part, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Part
	err := r.partColl.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch part %s: %w", id, err)
	}
	return &p, nil
}

func (r *mongoWorkOrderRepo) ListParts(ctx context.Context) ([]models.Part, error) {
	return r.listParts(ctx, bson.M{})
}

func (r *mongoWorkOrderRepo) ListLowStockParts(ctx context.Context) ([]models.Part, error) {
	// quantity <= reorderPoint
	return r.listParts(ctx, bson.M{"$expr": bson.M{"$lte": bson.A{"$quantity", "$reorderPoint"}}})
}

func (r *mongoWorkOrderRepo) listParts(ctx context.Context, filter bson.M) ([]models.Part, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.partColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	defer cursor.Close(ctx)

	var parts []models.Part
	if err := cursor.All(ctx, &parts); err != nil {
		return nil, fmt.Errorf("failed to decode parts: %w", err)
	}
	return parts, nil
}

func (r *mongoWorkOrderRepo) UpdatePart(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	res, err := r.partColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update part %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoWorkOrderRepo) DeletePart(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.partColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete part %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AdjustPartQuantity uses a guarded conditional update so two concurrent
// adjustments cannot drive the quantity negative.
func (r *mongoWorkOrderRepo) AdjustPartQuantity(ctx context.Context, id string, delta int) (*models.Part, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	if delta < 0 {
		filter["quantity"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"quantity": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.partColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust part quantity: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the part is missing or the guard rejected the delta.
		if _, getErr := r.GetPart(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, repository.ErrInsufficientStock
	}
	return r.GetPart(ctx, id)
}

// File: services/workorder/parts.go
package workorder

import (
	"context"
	"fmt"
	"time"

	"wrenchly/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// PartsService defines business logic for the parts inventory.
type PartsService interface {
	CreatePart(ctx context.Context, in models.PartInput) (*models.Part, error)
	GetPart(ctx context.Context, id string) (*models.Part, error)
	ListParts(ctx context.Context, lowStockOnly bool) ([]models.Part, error)
	UpdatePart(ctx context.Context, id string, in models.PartInput) (*models.Part, error)
	DeletePart(ctx context.Context, id string) error
	// AdjustPart moves stock by a signed delta, rejecting adjustments that
	// would drive the quantity negative.
	AdjustPart(ctx context.Context, id string, in models.PartAdjustInput) (*models.Part, error)
}

func (s *DefaultWorkOrderService) CreatePart(ctx context.Context, in models.PartInput) (*models.Part, error) {
	now := time.Now().UTC()
	p := &models.Part{
		ID:           uuid.New().String(),
		Name:         in.Name,
		SKU:          in.SKU,
		Description:  in.Description,
		Quantity:     in.Quantity,
		ReorderPoint: in.ReorderPoint,
		UnitCost:     in.UnitCost,
		UnitPrice:    in.UnitPrice,
		Supplier:     in.Supplier,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.CreatePart(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create part: %w", err)
	}
	return p, nil
}

func (s *DefaultWorkOrderService) GetPart(ctx context.Context, id string) (*models.Part, error) {
	return s.Repo.GetPart(ctx, id)
}

func (s *DefaultWorkOrderService) ListParts(ctx context.Context, lowStockOnly bool) ([]models.Part, error) {
	if lowStockOnly {
		return s.Repo.ListLowStockParts(ctx)
	}
	return s.Repo.ListParts(ctx)
}

func (s *DefaultWorkOrderService) UpdatePart(ctx context.Context, id string, in models.PartInput) (*models.Part, error) {
	// Quantity moves only through AdjustPart; edits here cover descriptive
	// fields and pricing.
	set := bson.M{
		"name":         in.Name,
		"sku":          in.SKU,
		"description":  in.Description,
		"reorderPoint": in.ReorderPoint,
		"unitCost":     in.UnitCost,
		"unitPrice":    in.UnitPrice,
		"supplier":     in.Supplier,
	}
	if err := s.Repo.UpdatePart(ctx, id, set); err != nil {
		return nil, err
	}
	return s.Repo.GetPart(ctx, id)
}

func (s *DefaultWorkOrderService) DeletePart(ctx context.Context, id string) error {
	return s.Repo.DeletePart(ctx, id)
}

func (s *DefaultWorkOrderService) AdjustPart(ctx context.Context, id string, in models.PartAdjustInput) (*models.Part, error) {
	if in.Delta == 0 {
		return nil, fmt.Errorf("adjustment delta cannot be zero")
	}
	return s.Repo.AdjustPartQuantity(ctx, id, in.Delta)
}

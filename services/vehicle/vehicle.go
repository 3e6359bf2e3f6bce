// File: services/vehicle/vehicle.go
package vehicle

import (
	"context"
	"fmt"
	"time"

	vehicleRepo "wrenchly/database/repository/vehicle"
	"wrenchly/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// VehicleService defines business logic for customer vehicles.
type VehicleService interface {
	Create(ctx context.Context, p *models.Principal, in models.VehicleInput) (*models.Vehicle, error)
	Get(ctx context.Context, p *models.Principal, id string) (*models.Vehicle, error)
	ListMine(ctx context.Context, p *models.Principal) ([]models.Vehicle, error)
	ListForUser(ctx context.Context, userID string) ([]models.Vehicle, error)
	Update(ctx context.Context, p *models.Principal, id string, in models.VehicleInput) (*models.Vehicle, error)
	Delete(ctx context.Context, p *models.Principal, id string) error
	SetPrimary(ctx context.Context, p *models.Principal, id string) error
}

// DefaultVehicleService is the production implementation.
type DefaultVehicleService struct {
	Repo vehicleRepo.VehicleRepository
}

func (s *DefaultVehicleService) Create(ctx context.Context, p *models.Principal, in models.VehicleInput) (*models.Vehicle, error) {
	now := time.Now().UTC()
	v := &models.Vehicle{
		ID:        uuid.New().String(),
		UserID:    p.UID,
		Make:      in.Make,
		Model:     in.Model,
		Year:      in.Year,
		VIN:       in.VIN,
		Mileage:   in.Mileage,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return v, nil
}

func (s *DefaultVehicleService) Get(ctx context.Context, p *models.Principal, id string) (*models.Vehicle, error) {
	v, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.UserID != p.UID && !p.Admin && !p.Mechanic {
		return nil, fmt.Errorf("vehicle %s does not belong to caller", id)
	}
	return v, nil
}

func (s *DefaultVehicleService) ListMine(ctx context.Context, p *models.Principal) ([]models.Vehicle, error) {
	return s.Repo.ListByUser(ctx, p.UID)
}

func (s *DefaultVehicleService) ListForUser(ctx context.Context, userID string) ([]models.Vehicle, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *DefaultVehicleService) Update(ctx context.Context, p *models.Principal, id string, in models.VehicleInput) (*models.Vehicle, error) {
	set := bson.M{
		"make":    in.Make,
		"model":   in.Model,
		"year":    in.Year,
		"vin":     in.VIN,
		"mileage": in.Mileage,
	}
	if err := s.Repo.Update(ctx, id, p.UID, set); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultVehicleService) Delete(ctx context.Context, p *models.Principal, id string) error {
	return s.Repo.Delete(ctx, id, p.UID)
}

func (s *DefaultVehicleService) SetPrimary(ctx context.Context, p *models.Principal, id string) error {
	return s.Repo.SetPrimary(ctx, id, p.UID)
}

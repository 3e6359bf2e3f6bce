// File: services/catalog/catalog.go
package catalog

import (
	"context"
	"fmt"
	"time"

	catalogRepo "wrenchly/database/repository/catalog"
	"wrenchly/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CatalogService defines business logic for the bookable service catalog.
type CatalogService interface {
	Create(ctx context.Context, in models.ServiceInput) (*models.Service, error)
	Get(ctx context.Context, id string) (*models.Service, error)
	// List returns active services only unless includeInactive is set.
	List(ctx context.Context, includeInactive bool) ([]models.Service, error)
	Update(ctx context.Context, id string, in models.ServiceInput) (*models.Service, error)
	Deactivate(ctx context.Context, id string) error
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo catalogRepo.CatalogRepository
	// Cache holds list reads; writes drop it. Nil disables caching.
	Cache ListCache
	// Granularity is the slot granularity in minutes; service durations must
	// divide evenly into slots.
	Granularity int
}

func (s *DefaultCatalogService) Create(ctx context.Context, in models.ServiceInput) (*models.Service, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	svc := &models.Service{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Minutes:     in.Minutes,
		Price:       in.Price,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	if s.Cache != nil {
		s.Cache.DropLists(ctx)
	}
	return svc, nil
}

func (s *DefaultCatalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultCatalogService) List(ctx context.Context, includeInactive bool) ([]models.Service, error) {
	key := listKeyActive
	if includeInactive {
		key = listKeyAll
	}
	if s.Cache != nil {
		if cached := s.Cache.GetList(ctx, key); cached != nil {
			return cached, nil
		}
	}

	var services []models.Service
	var err error
	if includeInactive {
		services, err = s.Repo.List(ctx)
	} else {
		services, err = s.Repo.ListActive(ctx)
	}
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.SetList(ctx, key, services)
	}
	return services, nil
}

func (s *DefaultCatalogService) Update(ctx context.Context, id string, in models.ServiceInput) (*models.Service, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	set := bson.M{
		"name":        in.Name,
		"description": in.Description,
		"minutes":     in.Minutes,
		"price":       in.Price,
	}
	if err := s.Repo.Update(ctx, id, set); err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.DropLists(ctx)
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultCatalogService) Deactivate(ctx context.Context, id string) error {
	if err := s.Repo.Deactivate(ctx, id); err != nil {
		return err
	}
	if s.Cache != nil {
		s.Cache.DropLists(ctx)
	}
	return nil
}

func (s *DefaultCatalogService) validate(in models.ServiceInput) error {
	if in.Minutes <= 0 {
		return fmt.Errorf("service duration must be positive")
	}
	if s.Granularity > 0 && in.Minutes%s.Granularity != 0 {
		return fmt.Errorf("service duration must be a multiple of %d minutes", s.Granularity)
	}
	if in.Price < 0 {
		return fmt.Errorf("service price cannot be negative")
	}
	return nil
}

// File: services/workorder/workorder.go
package workorder

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"strings"
	"time"

	"wrenchly/database/repository"
	workorderRepo "wrenchly/database/repository/workorder"
	"wrenchly/models"
	"wrenchly/services/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// completedEditWindow is how long a completed work order stays editable.
const completedEditWindow = 48 * time.Hour

const photoFolder = "workorders"

// WorkOrderService defines business logic for work orders. Parts consumed on
// a work order are drawn from inventory; removing a line item returns stock.
type WorkOrderService interface {
	Create(ctx context.Context, p *models.Principal, in models.WorkOrderInput) (*models.WorkOrder, error)
	Get(ctx context.Context, p *models.Principal, id string) (*models.WorkOrder, error)
	List(ctx context.Context, p *models.Principal, customerUID, mechanicID, status string) ([]models.WorkOrder, error)
	Update(ctx context.Context, p *models.Principal, id string, in models.WorkOrderInput) (*models.WorkOrder, error)
	Complete(ctx context.Context, p *models.Principal, id string) (*models.WorkOrder, error)
	Delete(ctx context.Context, p *models.Principal, id string) error

	AddPhoto(ctx context.Context, p *models.Principal, id string, file multipart.File) (string, error)
	RemovePhoto(ctx context.Context, p *models.Principal, id, publicID string) error
	// PhotoURL resolves a stored public ID to its delivery URL.
	PhotoURL(publicID string) string
}

// DefaultWorkOrderService is the production implementation.
type DefaultWorkOrderService struct {
	Repo    workorderRepo.WorkOrderRepository
	Storage storage.StorageService
	Logger  *zap.Logger
}

func (s *DefaultWorkOrderService) Create(ctx context.Context, p *models.Principal, in models.WorkOrderInput) (*models.WorkOrder, error) {
	if !p.Admin && !p.Mechanic {
		return nil, fmt.Errorf("only staff can create work orders")
	}

	if err := s.consumeParts(ctx, nil, in.Parts); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	id := uuid.New().String()
	wo := &models.WorkOrder{
		ID:          id,
		Number:      workOrderNumber(now, id),
		BookingID:   in.BookingID,
		CustomerUID: in.CustomerUID,
		VehicleID:   in.VehicleID,
		MechanicID:  p.UID,
		Description: in.Description,
		Parts:       in.Parts,
		LaborHours:  in.LaborHours,
		LaborRate:   in.LaborRate,
		Status:      models.WorkOrderOpen,
		CreatedBy:   p.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Status != "" {
		wo.Status = in.Status
	}
	computeTotals(wo)

	if err := s.Repo.Create(ctx, wo); err != nil {
		// Return the stock we just consumed.
		s.restoreParts(ctx, in.Parts)
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}
	return wo, nil
}

func (s *DefaultWorkOrderService) Get(ctx context.Context, p *models.Principal, id string) (*models.WorkOrder, error) {
	wo, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Admin && !p.Mechanic && wo.CustomerUID != p.UID {
		return nil, repository.ErrNotFound
	}
	return wo, nil
}

func (s *DefaultWorkOrderService) List(ctx context.Context, p *models.Principal, customerUID, mechanicID, status string) ([]models.WorkOrder, error) {
	// Customers only ever see their own work orders.
	if !p.Admin && !p.Mechanic {
		customerUID = p.UID
	}
	return s.Repo.List(ctx, customerUID, mechanicID, status)
}

func (s *DefaultWorkOrderService) Update(ctx context.Context, p *models.Principal, id string, in models.WorkOrderInput) (*models.WorkOrder, error) {
	if !p.Admin && !p.Mechanic {
		return nil, fmt.Errorf("only staff can update work orders")
	}

	wo, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := editable(wo); err != nil {
		return nil, err
	}

	if err := s.consumeParts(ctx, wo.Parts, in.Parts); err != nil {
		return nil, err
	}

	wo.Description = in.Description
	wo.Parts = in.Parts
	wo.LaborHours = in.LaborHours
	wo.LaborRate = in.LaborRate
	if in.VehicleID != "" {
		wo.VehicleID = in.VehicleID
	}
	if in.Status != "" {
		wo.Status = in.Status
	}
	computeTotals(wo)

	if err := s.Repo.Replace(ctx, wo); err != nil {
		return nil, err
	}
	return wo, nil
}

func (s *DefaultWorkOrderService) Complete(ctx context.Context, p *models.Principal, id string) (*models.WorkOrder, error) {
	if !p.Admin && !p.Mechanic {
		return nil, fmt.Errorf("only staff can complete work orders")
	}

	wo, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wo.Status == models.WorkOrderCompleted {
		return wo, nil
	}

	now := time.Now().UTC()
	wo.Status = models.WorkOrderCompleted
	wo.CompletedAt = &now
	computeTotals(wo)

	if err := s.Repo.Replace(ctx, wo); err != nil {
		return nil, err
	}
	return wo, nil
}

func (s *DefaultWorkOrderService) Delete(ctx context.Context, p *models.Principal, id string) error {
	if !p.Admin {
		return fmt.Errorf("only administrators can delete work orders")
	}

	wo, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Deleting an order returns its parts to inventory.
	s.restoreParts(ctx, wo.Parts)
	return s.Repo.Delete(ctx, id)
}

func (s *DefaultWorkOrderService) AddPhoto(ctx context.Context, p *models.Principal, id string, file multipart.File) (string, error) {
	if !p.Admin && !p.Mechanic {
		return "", fmt.Errorf("only staff can attach photos")
	}
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return "", err
	}

	publicID, err := s.Storage.Upload(ctx, file, photoFolder)
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	if err := s.Repo.AddPhoto(ctx, id, publicID); err != nil {
		// Orphaned upload; best effort cleanup.
		if delErr := s.Storage.Delete(ctx, publicID); delErr != nil {
			s.Logger.Warn("failed to clean up orphaned photo",
				zap.String("publicId", publicID), zap.Error(delErr))
		}
		return "", err
	}
	return publicID, nil
}

func (s *DefaultWorkOrderService) PhotoURL(publicID string) string {
	return s.Storage.URL(publicID)
}

func (s *DefaultWorkOrderService) RemovePhoto(ctx context.Context, p *models.Principal, id, publicID string) error {
	if !p.Admin && !p.Mechanic {
		return fmt.Errorf("only staff can remove photos")
	}
	if err := s.Repo.RemovePhoto(ctx, id, publicID); err != nil {
		return err
	}
	if err := s.Storage.Delete(ctx, publicID); err != nil {
		s.Logger.Warn("photo removed from work order but not from storage",
			zap.String("publicId", publicID), zap.Error(err))
	}
	return nil
}

// consumeParts applies the inventory delta between the old and new line
// items. Adjustments already applied are rolled back if a later one fails.
func (s *DefaultWorkOrderService) consumeParts(ctx context.Context, old, updated []models.WorkOrderPart) error {
	deltas := map[string]int{}
	for _, item := range old {
		deltas[item.PartID] += item.Quantity
	}
	for _, item := range updated {
		if item.Quantity <= 0 {
			return fmt.Errorf("part %s quantity must be positive", item.PartID)
		}
		deltas[item.PartID] -= item.Quantity
	}

	var applied []appliedDelta
	for partID, delta := range deltas {
		if delta == 0 {
			continue
		}
		if _, err := s.Repo.AdjustPartQuantity(ctx, partID, delta); err != nil {
			for _, a := range applied {
				if _, undoErr := s.Repo.AdjustPartQuantity(ctx, a.partID, -a.delta); undoErr != nil {
					s.Logger.Error("failed to roll back inventory adjustment",
						zap.String("part", a.partID), zap.Error(undoErr))
				}
			}
			if errors.Is(err, repository.ErrInsufficientStock) {
				return fmt.Errorf("insufficient stock for part %s: %w", partID, err)
			}
			return fmt.Errorf("failed to adjust part %s: %w", partID, err)
		}
		applied = append(applied, appliedDelta{partID: partID, delta: delta})
	}
	return nil
}

type appliedDelta struct {
	partID string
	delta  int
}

// restoreParts returns consumed stock to inventory, logging failures rather
// than propagating them.
func (s *DefaultWorkOrderService) restoreParts(ctx context.Context, parts []models.WorkOrderPart) {
	for _, item := range parts {
		if _, err := s.Repo.AdjustPartQuantity(ctx, item.PartID, item.Quantity); err != nil {
			s.Logger.Error("failed to restore part to inventory",
				zap.String("part", item.PartID), zap.Error(err))
		}
	}
}

func editable(wo *models.WorkOrder) error {
	if wo.Status != models.WorkOrderCompleted || wo.CompletedAt == nil {
		return nil
	}
	if time.Since(*wo.CompletedAt) > completedEditWindow {
		return fmt.Errorf("work order %s is locked; completed more than %s ago", wo.Number, completedEditWindow)
	}
	return nil
}

func computeTotals(wo *models.WorkOrder) {
	var parts float64
	for _, item := range wo.Parts {
		parts += float64(item.Quantity) * item.UnitPrice
	}
	wo.PartsTotal = round2(parts)
	wo.LaborTotal = round2(wo.LaborHours * wo.LaborRate)
	wo.Total = round2(wo.PartsTotal + wo.LaborTotal)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// workOrderNumber renders e.g. "WO-20260830-AB12CD34".
func workOrderNumber(now time.Time, id string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("WO-%s-%s", now.Format("20060102"), suffix)
}

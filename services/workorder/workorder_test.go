// File: services/workorder/workorder_test.go
package workorder

import (
	"context"
	"fmt"
	"mime/multipart"
	"regexp"
	"testing"
	"time"

	"wrenchly/database/repository"
	"wrenchly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeWorkOrderRepo struct {
	orders map[string]*models.WorkOrder
	parts  map[string]*models.Part
}

func newFakeWorkOrderRepo() *fakeWorkOrderRepo {
	return &fakeWorkOrderRepo{
		orders: make(map[string]*models.WorkOrder),
		parts:  make(map[string]*models.Part),
	}
}

func (f *fakeWorkOrderRepo) Create(_ context.Context, wo *models.WorkOrder) error {
	copied := *wo
	f.orders[wo.ID] = &copied
	return nil
}

func (f *fakeWorkOrderRepo) GetByID(_ context.Context, id string) (*models.WorkOrder, error) {
	wo, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *wo
	return &copied, nil
}

func (f *fakeWorkOrderRepo) List(_ context.Context, customerUID, mechanicID, status string) ([]models.WorkOrder, error) {
	var out []models.WorkOrder
	for _, wo := range f.orders {
		if customerUID != "" && wo.CustomerUID != customerUID {
			continue
		}
		if mechanicID != "" && wo.MechanicID != mechanicID {
			continue
		}
		if status != "" && wo.Status != status {
			continue
		}
		out = append(out, *wo)
	}
	return out, nil
}

func (f *fakeWorkOrderRepo) Replace(_ context.Context, wo *models.WorkOrder) error {
	if _, ok := f.orders[wo.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *wo
	f.orders[wo.ID] = &copied
	return nil
}

func (f *fakeWorkOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeWorkOrderRepo) AddPhoto(_ context.Context, id, publicID string) error {
	wo, ok := f.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	wo.Photos = append(wo.Photos, publicID)
	return nil
}

func (f *fakeWorkOrderRepo) RemovePhoto(_ context.Context, id, publicID string) error {
	wo, ok := f.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	kept := wo.Photos[:0]
	for _, p := range wo.Photos {
		if p != publicID {
			kept = append(kept, p)
		}
	}
	wo.Photos = kept
	return nil
}

func (f *fakeWorkOrderRepo) CreatePart(_ context.Context, p *models.Part) error {
	copied := *p
	f.parts[p.ID] = &copied
	return nil
}

func (f *fakeWorkOrderRepo) GetPart(_ context.Context, id string) (*models.Part, error) {
	p, ok := f.parts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeWorkOrderRepo) ListParts(_ context.Context) ([]models.Part, error) {
	var out []models.Part
	for _, p := range f.parts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeWorkOrderRepo) ListLowStockParts(_ context.Context) ([]models.Part, error) {
	var out []models.Part
	for _, p := range f.parts {
		if p.LowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeWorkOrderRepo) UpdatePart(_ context.Context, id string, _ bson.M) error {
	if _, ok := f.parts[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (f *fakeWorkOrderRepo) DeletePart(_ context.Context, id string) error {
	if _, ok := f.parts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.parts, id)
	return nil
}

func (f *fakeWorkOrderRepo) AdjustPartQuantity(_ context.Context, id string, delta int) (*models.Part, error) {
	p, ok := f.parts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Quantity+delta < 0 {
		return nil, repository.ErrInsufficientStock
	}
	p.Quantity += delta
	copied := *p
	return &copied, nil
}

type fakeStorage struct {
	uploads int
	deleted []string
}

func (f *fakeStorage) Upload(_ context.Context, _ multipart.File, _ string) (string, error) {
	f.uploads++
	return fmt.Sprintf("photo-%d", f.uploads), nil
}

func (f *fakeStorage) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func (f *fakeStorage) URL(publicID string) string { return "https://cdn.example.com/" + publicID }

func newTestService() (*DefaultWorkOrderService, *fakeWorkOrderRepo, *fakeStorage) {
	repo := newFakeWorkOrderRepo()
	store := &fakeStorage{}
	svc := &DefaultWorkOrderService{Repo: repo, Storage: store, Logger: zap.NewNop()}
	return svc, repo, store
}

func mechanicPrincipal() *models.Principal {
	return &models.Principal{UID: "mech-1", Email: "mech@example.com", Mechanic: true}
}

func seedPart(repo *fakeWorkOrderRepo, id string, qty int, price float64) {
	repo.parts[id] = &models.Part{ID: id, Name: id, Quantity: qty, ReorderPoint: 2, UnitPrice: price}
}

func TestCreate_totalsAndNumber(t *testing.T) {
	svc, repo, _ := newTestService()
	seedPart(repo, "filter", 10, 12.50)
	seedPart(repo, "oil", 20, 8.00)

	wo, err := svc.Create(context.Background(), mechanicPrincipal(), models.WorkOrderInput{
		CustomerUID: "u1",
		Description: "oil change",
		Parts: []models.WorkOrderPart{
			{PartID: "filter", Name: "filter", Quantity: 1, UnitPrice: 12.50},
			{PartID: "oil", Name: "oil", Quantity: 5, UnitPrice: 8.00},
		},
		LaborHours: 1.5,
		LaborRate:  90,
	})
	require.NoError(t, err)

	assert.Equal(t, 52.50, wo.PartsTotal)
	assert.Equal(t, 135.0, wo.LaborTotal)
	assert.Equal(t, 187.50, wo.Total)
	assert.Equal(t, models.WorkOrderOpen, wo.Status)
	assert.Regexp(t, regexp.MustCompile(`^WO-\d{8}-[0-9A-F]{8}$`), wo.Number)

	// Inventory was drawn down.
	assert.Equal(t, 9, repo.parts["filter"].Quantity)
	assert.Equal(t, 15, repo.parts["oil"].Quantity)
}

func TestCreate_insufficientStockRollsBack(t *testing.T) {
	svc, repo, _ := newTestService()
	seedPart(repo, "filter", 10, 12.50)
	seedPart(repo, "oil", 2, 8.00)

	_, err := svc.Create(context.Background(), mechanicPrincipal(), models.WorkOrderInput{
		CustomerUID: "u1",
		Description: "oil change",
		Parts: []models.WorkOrderPart{
			{PartID: "filter", Name: "filter", Quantity: 1, UnitPrice: 12.50},
			{PartID: "oil", Name: "oil", Quantity: 5, UnitPrice: 8.00},
		},
	})
	require.Error(t, err)

	// Whatever was consumed before the failure came back.
	assert.Equal(t, 10, repo.parts["filter"].Quantity)
	assert.Equal(t, 2, repo.parts["oil"].Quantity)
	assert.Empty(t, repo.orders)
}

func TestCreate_customersRejected(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Create(context.Background(), &models.Principal{UID: "u1"}, models.WorkOrderInput{
		CustomerUID: "u1", Description: "nope",
	})
	assert.Error(t, err)
}

func TestUpdate_reconcilesInventoryDelta(t *testing.T) {
	svc, repo, _ := newTestService()
	seedPart(repo, "oil", 20, 8.00)

	wo, err := svc.Create(context.Background(), mechanicPrincipal(), models.WorkOrderInput{
		CustomerUID: "u1",
		Description: "oil change",
		Parts:       []models.WorkOrderPart{{PartID: "oil", Name: "oil", Quantity: 5, UnitPrice: 8.00}},
	})
	require.NoError(t, err)
	assert.Equal(t, 15, repo.parts["oil"].Quantity)

	// Drop the line item to 2 units; 3 come back.
	updated, err := svc.Update(context.Background(), mechanicPrincipal(), wo.ID, models.WorkOrderInput{
		CustomerUID: "u1",
		Description: "oil change, smaller engine",
		Parts:       []models.WorkOrderPart{{PartID: "oil", Name: "oil", Quantity: 2, UnitPrice: 8.00}},
	})
	require.NoError(t, err)
	assert.Equal(t, 18, repo.parts["oil"].Quantity)
	assert.Equal(t, 16.0, updated.PartsTotal)
}

func TestUpdate_lockedAfterEditWindow(t *testing.T) {
	svc, repo, _ := newTestService()

	wo, err := svc.Create(context.Background(), mechanicPrincipal(), models.WorkOrderInput{
		CustomerUID: "u1", Description: "brakes",
	})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), mechanicPrincipal(), wo.ID)
	require.NoError(t, err)

	// Recently completed orders stay editable.
	_, err = svc.Update(context.Background(), mechanicPrincipal(), wo.ID, models.WorkOrderInput{
		CustomerUID: "u1", Description: "brakes, adjusted",
	})
	assert.NoError(t, err)

	// Age the completion past the window.
	old := time.Now().UTC().Add(-72 * time.Hour)
	repo.orders[wo.ID].CompletedAt = &old
	repo.orders[wo.ID].Status = models.WorkOrderCompleted

	_, err = svc.Update(context.Background(), mechanicPrincipal(), wo.ID, models.WorkOrderInput{
		CustomerUID: "u1", Description: "too late",
	})
	assert.Error(t, err)
}

func TestComplete_isIdempotent(t *testing.T) {
	svc, _, _ := newTestService()

	wo, err := svc.Create(context.Background(), mechanicPrincipal(), models.WorkOrderInput{
		CustomerUID: "u1", Description: "brakes",
	})
	require.NoError(t, err)

	first, err := svc.Complete(context.Background(), mechanicPrincipal(), wo.ID)
	require.NoError(t, err)
	again, err := svc.Complete(context.Background(), mechanicPrincipal(), wo.ID)
	require.NoError(t, err)
	assert.Equal(t, first.CompletedAt.Unix(), again.CompletedAt.Unix())
}

func TestList_customersScopedToSelf(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.orders["a"] = &models.WorkOrder{ID: "a", CustomerUID: "u1"}
	repo.orders["b"] = &models.WorkOrder{ID: "b", CustomerUID: "u2"}

	mine, err := svc.List(context.Background(), &models.Principal{UID: "u1"}, "", "", "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "u1", mine[0].CustomerUID)

	all, err := svc.List(context.Background(), mechanicPrincipal(), "", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPhotos_uploadAndRemove(t *testing.T) {
	svc, repo, store := newTestService()
	repo.orders["a"] = &models.WorkOrder{ID: "a", CustomerUID: "u1"}

	publicID, err := svc.AddPhoto(context.Background(), mechanicPrincipal(), "a", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{publicID}, repo.orders["a"].Photos)

	require.NoError(t, svc.RemovePhoto(context.Background(), mechanicPrincipal(), "a", publicID))
	assert.Empty(t, repo.orders["a"].Photos)
	assert.Equal(t, []string{publicID}, store.deleted)
}

func TestAdjustPart_guardsNegativeStock(t *testing.T) {
	svc, repo, _ := newTestService()
	seedPart(repo, "oil", 3, 8.00)

	p, err := svc.AdjustPart(context.Background(), "oil", models.PartAdjustInput{Delta: -2})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Quantity)

	_, err = svc.AdjustPart(context.Background(), "oil", models.PartAdjustInput{Delta: -5})
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	_, err = svc.AdjustPart(context.Background(), "oil", models.PartAdjustInput{Delta: 0})
	assert.Error(t, err)
}

func TestListParts_lowStockFilter(t *testing.T) {
	svc, repo, _ := newTestService()
	seedPart(repo, "plenty", 50, 1)
	seedPart(repo, "scarce", 1, 1)

	low, err := svc.ListParts(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "scarce", low[0].ID)
}

// File: services/catalog/catalog_test.go
package catalog

import (
	"context"
	"testing"

	"wrenchly/database/repository"
	"wrenchly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeCatalogRepo struct {
	services  map[string]*models.Service
	listCalls int
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{services: make(map[string]*models.Service)}
}

func (f *fakeCatalogRepo) Create(_ context.Context, s *models.Service) error {
	copied := *s
	f.services[s.ID] = &copied
	return nil
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeCatalogRepo) ListActive(_ context.Context) ([]models.Service, error) {
	f.listCalls++
	var out []models.Service
	for _, s := range f.services {
		if s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) List(_ context.Context) ([]models.Service, error) {
	f.listCalls++
	var out []models.Service
	for _, s := range f.services {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeCatalogRepo) Update(_ context.Context, id string, _ bson.M) error {
	if _, ok := f.services[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (f *fakeCatalogRepo) Deactivate(_ context.Context, id string) error {
	s, ok := f.services[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Active = false
	return nil
}

type fakeListCache struct {
	lists map[string][]models.Service
	drops int
}

func newFakeListCache() *fakeListCache {
	return &fakeListCache{lists: make(map[string][]models.Service)}
}

func (f *fakeListCache) GetList(_ context.Context, key string) []models.Service {
	return f.lists[key]
}

func (f *fakeListCache) SetList(_ context.Context, key string, services []models.Service) {
	f.lists[key] = services
}

func (f *fakeListCache) DropLists(_ context.Context) {
	f.drops++
	f.lists = make(map[string][]models.Service)
}

func newTestCatalog() (*DefaultCatalogService, *fakeCatalogRepo, *fakeListCache) {
	repo := newFakeCatalogRepo()
	cache := newFakeListCache()
	return &DefaultCatalogService{Repo: repo, Cache: cache, Granularity: 30}, repo, cache
}

func oilChange() models.ServiceInput {
	return models.ServiceInput{Name: "Oil Change", Minutes: 30, Price: 49.99}
}

func TestList_servedFromCache(t *testing.T) {
	svc, repo, _ := newTestCatalog()
	_, err := svc.Create(context.Background(), oilChange())
	require.NoError(t, err)

	first, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)
}

func TestList_activeAndFullListsCachedSeparately(t *testing.T) {
	svc, repo, _ := newTestCatalog()
	created, err := svc.Create(context.Background(), oilChange())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(context.Background(), created.ID))

	active, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, 2, repo.listCalls)
}

func TestWrites_dropCachedLists(t *testing.T) {
	svc, repo, cache := newTestCatalog()
	created, err := svc.Create(context.Background(), oilChange())
	require.NoError(t, err)

	_, err = svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)

	_, err = svc.Update(context.Background(), created.ID, oilChange())
	require.NoError(t, err)
	assert.Empty(t, cache.lists)

	// The next read repopulates from the repository.
	_, err = svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))
	assert.Empty(t, cache.lists)
}

func TestValidate_durationAndPrice(t *testing.T) {
	svc, _, _ := newTestCatalog()

	in := oilChange()
	in.Minutes = 45
	_, err := svc.Create(context.Background(), in)
	assert.Error(t, err)

	in = oilChange()
	in.Minutes = 0
	_, err = svc.Create(context.Background(), in)
	assert.Error(t, err)

	in = oilChange()
	in.Price = -1
	_, err = svc.Create(context.Background(), in)
	assert.Error(t, err)
}

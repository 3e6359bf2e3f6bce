// File: handlers/availability_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wrenchly/database/repository"
	"wrenchly/models"
	"wrenchly/services/availability"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAvailabilityRepo struct {
	days map[string]*models.AvailabilityDay
}

func (s *stubAvailabilityRepo) GetDay(_ context.Context, day string) (*models.AvailabilityDay, error) {
	rec, ok := s.days[day]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return rec, nil
}

func (s *stubAvailabilityRepo) MergeMechanicGrid(_ context.Context, _, _ string, _ map[string]models.SlotState) (bool, error) {
	return false, nil
}

func (s *stubAvailabilityRepo) ListDays(_ context.Context, _, _ string) ([]models.AvailabilityDay, error) {
	return nil, nil
}

func newAvailabilityRouter(repo *stubAvailabilityRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &AvailabilityHandler{Query: &availability.Query{Repo: repo, Granularity: 30}}
	r := gin.New()
	r.GET("/api/availability/:day", h.Day)
	return r
}

func TestDay_rejectsMalformedDate(t *testing.T) {
	r := newAvailabilityRouter(&stubAvailabilityRepo{days: map[string]*models.AvailabilityDay{}})

	for _, day := range []string{"tomorrow", "06-15-2026", "2026-6-15"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/availability/"+day, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, day)
	}
}

func TestDay_returnsPublishedSlots(t *testing.T) {
	repo := &stubAvailabilityRepo{days: map[string]*models.AvailabilityDay{
		"2026-06-15": {
			Day:   "2026-06-15",
			Slots: map[string]models.SlotState{"09:00": models.SlotFree},
		},
	}}
	r := newAvailabilityRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/availability/2026-06-15", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Day   string                 `json:"day"`
		Slots []models.AvailableSlot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2026-06-15", body.Day)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "09:00", body.Slots[0].Start)
	assert.Equal(t, "09:30", body.Slots[0].End)
	assert.True(t, body.Slots[0].IsFree)

	// Unpublished days are an empty list, not an error.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/availability/2026-06-16", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

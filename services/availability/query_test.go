// File: services/availability/query_test.go
package availability

import (
	"context"
	"testing"

	"wrenchly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaySlots_sortedProjection(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	avail.days["2026-06-15"] = &models.AvailabilityDay{
		Day: "2026-06-15",
		Slots: map[string]models.SlotState{
			"10:00": models.SlotBooked,
			"09:00": models.SlotFree,
			"09:30": models.SlotBlocked,
		},
	}
	q := &Query{Repo: avail, Granularity: 30}

	slots, err := q.DaySlots(context.Background(), "2026-06-15")
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "09:30", slots[0].End)
	assert.True(t, slots[0].IsFree)

	assert.Equal(t, "09:30", slots[1].Start)
	assert.Equal(t, models.SlotBlocked, slots[1].State)
	assert.False(t, slots[1].IsFree)

	assert.Equal(t, "10:00", slots[2].Start)
	assert.Equal(t, "10:30", slots[2].End)
	assert.False(t, slots[2].IsFree)
}

func TestDaySlots_unpublishedDayIsEmpty(t *testing.T) {
	q := &Query{Repo: newFakeAvailabilityRepo(), Granularity: 30}

	slots, err := q.DaySlots(context.Background(), "2026-06-16")
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestDaySlots_rejectsMalformedDay(t *testing.T) {
	q := &Query{Repo: newFakeAvailabilityRepo(), Granularity: 30}

	for _, day := range []string{"06/15/2026", "2026-6-15", "tomorrow", ""} {
		_, err := q.DaySlots(context.Background(), day)
		assert.Error(t, err, day)
	}
}

// File: services/availability/slots_test.go
package availability

import (
	"testing"

	"wrenchly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSlots_basicWindow(t *testing.T) {
	slots, err := BuildSlots("09:00", "12:00", 30)
	require.NoError(t, err)

	assert.Len(t, slots, 6)
	for _, key := range []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"} {
		assert.Equal(t, models.SlotFree, slots[key], "expected %s to be free", key)
	}
	assert.NotContains(t, slots, "12:00", "end bound is exclusive")
}

func TestBuildSlots_unevenWindowStopsBeforeEnd(t *testing.T) {
	// 09:00-10:45 at 30min granularity: the 10:30 slot starts before the
	// end, so it is included even though it would nominally run past it.
	slots, err := BuildSlots("09:00", "10:45", 30)
	require.NoError(t, err)

	assert.Len(t, slots, 4)
	assert.Contains(t, slots, "10:30")
	assert.NotContains(t, slots, "11:00")
}

func TestBuildSlots_hourGranularity(t *testing.T) {
	slots, err := BuildSlots("08:00", "17:00", 60)
	require.NoError(t, err)
	assert.Len(t, slots, 9)
	assert.Contains(t, slots, "16:00")
}

func TestBuildSlots_invalidInputs(t *testing.T) {
	cases := []struct {
		name        string
		start, end  string
		granularity int
	}{
		{"end before start", "12:00", "09:00", 30},
		{"end equals start", "09:00", "09:00", 30},
		{"bad start format", "9:00", "12:00", 30},
		{"bad end format", "09:00", "12.00", 30},
		{"hour out of range", "25:00", "26:00", 30},
		{"minute out of range", "09:61", "12:00", 30},
		{"non-numeric", "ab:cd", "12:00", 30},
		{"zero granularity", "09:00", "12:00", 0},
		{"negative granularity", "09:00", "12:00", -15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildSlots(tc.start, tc.end, tc.granularity)
			assert.Error(t, err)
		})
	}
}

func TestBuildSlots_midnightBoundary(t *testing.T) {
	slots, err := BuildSlots("23:00", "23:59", 30)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
	assert.Contains(t, slots, "23:30")
}

// File: services/availability/query.go
package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"wrenchly/database/repository"
	availabilityRepo "wrenchly/database/repository/availability"
	"wrenchly/models"
)

// Query is the read side of the availability store. Day records pass through
// a short-lived Redis cache; writers invalidate it.
type Query struct {
	Repo  availabilityRepo.AvailabilityRepository
	Cache *Cache
	// Granularity is the slot width in minutes, used to derive slot end
	// times for the client projection.
	Granularity int
}

// DaySlots returns a day's slots ordered by start time. An unpublished day
// yields an empty list, not an error.
func (q *Query) DaySlots(ctx context.Context, day string) ([]models.AvailableSlot, error) {
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, fmt.Errorf("invalid day %q: want YYYY-MM-DD", day)
	}

	rec := q.Cache.GetDay(ctx, day)
	if rec == nil {
		var err error
		rec, err = q.Repo.GetDay(ctx, day)
		if errors.Is(err, repository.ErrNotFound) {
			return []models.AvailableSlot{}, nil
		}
		if err != nil {
			return nil, err
		}
		q.Cache.SetDay(ctx, rec)
	}

	keys := make([]string, 0, len(rec.Slots))
	for k := range rec.Slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	slots := make([]models.AvailableSlot, 0, len(keys))
	for _, k := range keys {
		state := rec.Slots[k]
		slots = append(slots, models.AvailableSlot{
			Start:  k,
			End:    q.slotEnd(k),
			IsFree: state == models.SlotFree,
			State:  state,
		})
	}
	return slots, nil
}

func (q *Query) slotEnd(start string) string {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return ""
	}
	return t.Add(time.Duration(q.Granularity) * time.Minute).Format("15:04")
}

// File: services/availability/seeder_test.go
package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"wrenchly/database/repository"
	"wrenchly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeMechanicRepo struct {
	mechanics []models.Mechanic
}

func (f *fakeMechanicRepo) Create(_ context.Context, m *models.Mechanic) error {
	f.mechanics = append(f.mechanics, *m)
	return nil
}

func (f *fakeMechanicRepo) GetByID(_ context.Context, id string) (*models.Mechanic, error) {
	for i := range f.mechanics {
		if f.mechanics[i].ID == id {
			m := f.mechanics[i]
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMechanicRepo) ListActive(_ context.Context) ([]models.Mechanic, error) {
	var out []models.Mechanic
	for _, m := range f.mechanics {
		if m.Active {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMechanicRepo) List(_ context.Context) ([]models.Mechanic, error) {
	return f.mechanics, nil
}

func (f *fakeMechanicRepo) UpdateSchedule(_ context.Context, id string, schedule models.WeeklySchedule) error {
	for i := range f.mechanics {
		if f.mechanics[i].ID == id {
			f.mechanics[i].Schedule = schedule
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMechanicRepo) Update(_ context.Context, id string, _ bson.M) error {
	return nil
}

// fakeAvailabilityRepo replays the merge semantics of the Mongo
// implementation in memory.
type fakeAvailabilityRepo struct {
	days map[string]*models.AvailabilityDay
	// failures counts down transient errors injected before merges succeed.
	failures int
	merges   int
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{days: make(map[string]*models.AvailabilityDay)}
}

func (f *fakeAvailabilityRepo) GetDay(_ context.Context, day string) (*models.AvailabilityDay, error) {
	rec, ok := f.days[day]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeAvailabilityRepo) MergeMechanicGrid(_ context.Context, day, mechanicID string, grid map[string]models.SlotState) (bool, error) {
	f.merges++
	if f.failures > 0 {
		f.failures--
		return false, context.DeadlineExceeded
	}

	rec, ok := f.days[day]
	if !ok {
		slots := make(map[string]models.SlotState, len(grid))
		for k, v := range grid {
			slots[k] = v
		}
		f.days[day] = &models.AvailabilityDay{
			Day:       day,
			Slots:     slots,
			Mechanics: []string{mechanicID},
		}
		return true, nil
	}

	for k, v := range grid {
		if rec.Slots[k] != models.SlotBooked {
			rec.Slots[k] = v
		}
	}
	if !rec.HasMechanic(mechanicID) {
		rec.Mechanics = append(rec.Mechanics, mechanicID)
	}
	return false, nil
}

func (f *fakeAvailabilityRepo) ListDays(_ context.Context, from, to string) ([]models.AvailabilityDay, error) {
	var out []models.AvailabilityDay
	for _, rec := range f.days {
		if rec.Day >= from && rec.Day <= to {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func weekdaysOnly() models.WeeklySchedule {
	hours := &models.DayHours{Start: "09:00", End: "17:00"}
	return models.WeeklySchedule{
		"monday": hours, "tuesday": hours, "wednesday": hours,
		"thursday": hours, "friday": hours,
	}
}

func newTestSeeder(mechanics *fakeMechanicRepo, avail *fakeAvailabilityRepo) *Seeder {
	return &Seeder{
		Mechanics:    mechanics,
		Availability: avail,
		Granularity:  30,
		Logger:       zap.NewNop(),
		Now:          func() time.Time { return time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC) }, // a Wednesday
	}
}

func TestNextMonday(t *testing.T) {
	wednesday := time.Date(2026, 6, 10, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-06-15", NextMonday(wednesday).Format("2006-01-02"))

	// A Monday rolls forward a full week, never to itself.
	monday := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-06-22", NextMonday(monday).Format("2006-01-02"))

	sunday := time.Date(2026, 6, 14, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-06-15", NextMonday(sunday).Format("2006-01-02"))
}

func TestSeedWeek_publishesWorkingDays(t *testing.T) {
	mechanics := &fakeMechanicRepo{mechanics: []models.Mechanic{
		{ID: "m1", Name: "Sam", Schedule: weekdaysOnly(), Active: true},
	}}
	avail := newFakeAvailabilityRepo()
	seeder := newTestSeeder(mechanics, avail)

	report, err := seeder.SeedWeek(context.Background(), nil, false)
	require.NoError(t, err)

	assert.Equal(t, "2026-06-15", report.WeekStart)
	assert.Equal(t, 5, report.Created, "five working days")
	assert.Equal(t, 2, report.Skipped, "weekend has no schedule")
	assert.Equal(t, 0, report.Updated)

	monday := avail.days["2026-06-15"]
	require.NotNil(t, monday)
	assert.Len(t, monday.Slots, 16, "09:00-17:00 at 30min")
	assert.Equal(t, models.SlotFree, monday.Slots["09:00"])
	assert.Equal(t, []string{"m1"}, monday.Mechanics)
	assert.Nil(t, avail.days["2026-06-20"], "saturday not published")
}

func TestSeedWeek_idempotentAndNonDestructive(t *testing.T) {
	mechanics := &fakeMechanicRepo{mechanics: []models.Mechanic{
		{ID: "m1", Schedule: weekdaysOnly(), Active: true},
	}}
	avail := newFakeAvailabilityRepo()
	seeder := newTestSeeder(mechanics, avail)

	_, err := seeder.SeedWeek(context.Background(), nil, false)
	require.NoError(t, err)

	// A customer books a slot between runs.
	avail.days["2026-06-15"].Slots["10:00"] = models.SlotBooked

	report, err := seeder.SeedWeek(context.Background(), nil, false)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 5, report.Updated)
	assert.Equal(t, models.SlotBooked, avail.days["2026-06-15"].Slots["10:00"],
		"reseeding never downgrades a booked slot")
	assert.Equal(t, models.SlotFree, avail.days["2026-06-15"].Slots["10:30"])
}

func TestSeedWeek_skipsInactiveAndIncomplete(t *testing.T) {
	incomplete := models.WeeklySchedule{
		"monday":  {Start: "09:00"}, // missing end
		"tuesday": {Start: "09:00", End: "13:00"},
	}
	mechanics := &fakeMechanicRepo{mechanics: []models.Mechanic{
		{ID: "m1", Schedule: incomplete, Active: true},
		{ID: "m2", Schedule: weekdaysOnly(), Active: false},
	}}
	avail := newFakeAvailabilityRepo()
	seeder := newTestSeeder(mechanics, avail)

	report, err := seeder.SeedWeek(context.Background(), nil, false)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created, "only m1's tuesday")
	assert.Equal(t, 6, report.Skipped)
	require.NotNil(t, avail.days["2026-06-16"])
	assert.Len(t, avail.days["2026-06-16"].Slots, 8)
}

func TestSeedWeek_dryRunWritesNothing(t *testing.T) {
	mechanics := &fakeMechanicRepo{mechanics: []models.Mechanic{
		{ID: "m1", Schedule: weekdaysOnly(), Active: true},
	}}
	avail := newFakeAvailabilityRepo()
	seeder := newTestSeeder(mechanics, avail)

	report, err := seeder.SeedWeek(context.Background(), nil, true)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 5, report.Created)
	assert.Empty(t, avail.days)
	assert.Zero(t, avail.merges)
}

func TestSeedWeek_retriesTransientFailures(t *testing.T) {
	mechanics := &fakeMechanicRepo{mechanics: []models.Mechanic{
		{ID: "m1", Schedule: models.WeeklySchedule{"monday": {Start: "09:00", End: "10:00"}}, Active: true},
	}}
	avail := newFakeAvailabilityRepo()
	avail.failures = 2
	seeder := newTestSeeder(mechanics, avail)

	report, err := seeder.SeedWeek(context.Background(), nil, false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 3, avail.merges, "two transient failures then success")
}

func TestSeedWeek_abortsAfterRetryExhaustion(t *testing.T) {
	mechanics := &fakeMechanicRepo{mechanics: []models.Mechanic{
		{ID: "m1", Schedule: models.WeeklySchedule{"monday": {Start: "09:00", End: "10:00"}}, Active: true},
	}}
	avail := newFakeAvailabilityRepo()
	avail.failures = 10
	seeder := newTestSeeder(mechanics, avail)

	_, err := seeder.SeedWeek(context.Background(), nil, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 3, avail.merges, "three attempts then give up")
}

func TestSeedWeek_explicitWeekStart(t *testing.T) {
	mechanics := &fakeMechanicRepo{mechanics: []models.Mechanic{
		{ID: "m1", Schedule: weekdaysOnly(), Active: true},
	}}
	avail := newFakeAvailabilityRepo()
	seeder := newTestSeeder(mechanics, avail)

	start := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	report, err := seeder.SeedWeek(context.Background(), &start, false)
	require.NoError(t, err)
	assert.Equal(t, "2026-07-06", report.WeekStart)
	assert.NotNil(t, avail.days["2026-07-06"])
}

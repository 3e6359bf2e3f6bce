// File: services/booking/fakes_test.go
package booking

import (
	"context"
	"sync"

	"wrenchly/database/repository"
	bookingRepo "wrenchly/database/repository/booking"
	"wrenchly/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeCatalogRepo struct {
	services map[string]*models.Service
}

func (f *fakeCatalogRepo) Create(_ context.Context, s *models.Service) error {
	f.services[s.ID] = s
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
	var out []models.Service
	for _, s := range f.services {
		if s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) List(_ context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeCatalogRepo) Update(_ context.Context, id string, _ bson.M) error { return nil }
func (f *fakeCatalogRepo) Deactivate(_ context.Context, id string) error {
	s, ok := f.services[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Active = false
	return nil
}

type fakeMechanicRepo struct {
	mechanics map[string]*models.Mechanic
}

func (f *fakeMechanicRepo) Create(_ context.Context, m *models.Mechanic) error {
	f.mechanics[m.ID] = m
	return nil
}

func (f *fakeMechanicRepo) GetByID(_ context.Context, id string) (*models.Mechanic, error) {
	m, ok := f.mechanics[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMechanicRepo) ListActive(_ context.Context) ([]models.Mechanic, error) {
	var out []models.Mechanic
	for _, m := range f.mechanics {
		if m.Active {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMechanicRepo) List(_ context.Context) ([]models.Mechanic, error) {
	var out []models.Mechanic
	for _, m := range f.mechanics {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMechanicRepo) UpdateSchedule(_ context.Context, id string, schedule models.WeeklySchedule) error {
	m, ok := f.mechanics[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.Schedule = schedule
	return nil
}

func (f *fakeMechanicRepo) Update(_ context.Context, _ string, _ bson.M) error { return nil }

type fakeAvailabilityRepo struct {
	mu   sync.Mutex
	days map[string]*models.AvailabilityDay
}

func (f *fakeAvailabilityRepo) GetDay(_ context.Context, day string) (*models.AvailabilityDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.days[day]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *rec
	copied.Slots = make(map[string]models.SlotState, len(rec.Slots))
	for k, v := range rec.Slots {
		copied.Slots[k] = v
	}
	return &copied, nil
}

func (f *fakeAvailabilityRepo) MergeMechanicGrid(_ context.Context, day, mechanicID string, grid map[string]models.SlotState) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.days[day]
	if !ok {
		slots := make(map[string]models.SlotState, len(grid))
		for k, v := range grid {
			slots[k] = v
		}
		f.days[day] = &models.AvailabilityDay{Day: day, Slots: slots, Mechanics: []string{mechanicID}}
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
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilityDay
	for _, rec := range f.days {
		if rec.Day >= from && rec.Day <= to {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// fakeBookingRepo mirrors the Mongo transaction semantics behind a mutex so
// concurrent reservations race realistically.
type fakeBookingRepo struct {
	mu       sync.Mutex
	avail    *fakeAvailabilityRepo
	bookings map[string]*models.Booking
	// transientFailures injects that many transient errors before
	// ReserveSlot attempts proceed.
	transientFailures int
	reserveCalls      int
}

func newFakeBookingRepo(avail *fakeAvailabilityRepo) *fakeBookingRepo {
	return &fakeBookingRepo{avail: avail, bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) ReserveSlot(_ context.Context, b *models.Booking, allowDynamic bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reserveCalls++
	if f.transientFailures > 0 {
		f.transientFailures--
		return context.DeadlineExceeded
	}

	day, key := b.Day(), b.SlotKey()
	f.avail.mu.Lock()
	defer f.avail.mu.Unlock()

	rec, ok := f.avail.days[day]
	if !ok {
		if !allowDynamic {
			return repository.ErrDayNotPublished
		}
		f.avail.days[day] = &models.AvailabilityDay{
			Day:                  day,
			Slots:                map[string]models.SlotState{key: models.SlotBooked},
			Mechanics:            []string{b.MechanicID},
			GeneratedDynamically: true,
		}
		copied := *b
		f.bookings[b.ID] = &copied
		return nil
	}
	if rec.Slots[key] != models.SlotFree {
		return repository.ErrSlotTaken
	}
	rec.Slots[key] = models.SlotBooked
	copied := *b
	f.bookings[b.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) UpdateTransactionally(_ context.Context, bookingID string, mutate bookingRepo.MutateFunc) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.bookings[bookingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	working := *stored
	release, err := mutate(&working)
	if err != nil {
		return nil, err
	}
	f.bookings[bookingID] = &working

	if release != nil {
		f.avail.mu.Lock()
		if rec, ok := f.avail.days[release.Day]; ok && rec.Slots[release.Key] == models.SlotBooked {
			rec.Slots[release.Key] = models.SlotFree
		}
		f.avail.mu.Unlock()
	}
	copied := working
	return &copied, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if filter.CustomerEmail != "" && b.CustomerEmail != filter.CustomerEmail {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.MechanicID != "" && b.MechanicID != filter.MechanicID {
			continue
		}
		if filter.Day != "" && b.Day() != filter.Day {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingRepo) SetCalendarEventID(_ context.Context, id, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.CalendarEventID = eventID
	return nil
}

// recordingDispatcher captures dispatched notifications.
type recordingDispatcher struct {
	mu       sync.Mutex
	payloads []models.NotificationPayload
}

func (d *recordingDispatcher) Dispatch(_ context.Context, payload models.NotificationPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.payloads = append(d.payloads, payload)
	return nil
}

func (d *recordingDispatcher) kinds() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for _, p := range d.payloads {
		out = append(out, p.Kind)
	}
	return out
}

// File: services/mechanic/mechanic.go
package mechanic

import (
	"context"
	"fmt"
	"time"

	mechanicRepo "wrenchly/database/repository/mechanic"
	"wrenchly/models"
	"wrenchly/services/booking"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// MechanicService defines business logic for mechanic profiles and weekly
// schedules.
type MechanicService interface {
	Create(ctx context.Context, in MechanicInput) (*models.Mechanic, error)
	Get(ctx context.Context, id string) (*models.Mechanic, error)
	List(ctx context.Context, includeInactive bool) ([]models.Mechanic, error)
	Update(ctx context.Context, id string, in MechanicInput) (*models.Mechanic, error)
	// SetSchedule replaces the weekly schedule. Mechanics may update their
	// own; admins anyone's. The availability store only picks the change up
	// on the next seeding run.
	SetSchedule(ctx context.Context, p *models.Principal, id string, schedule models.WeeklySchedule) (*models.Mechanic, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// MechanicInput is the create/update payload.
type MechanicInput struct {
	Name        string                `json:"name" binding:"required"`
	Email       string                `json:"email" binding:"required,email"`
	Phone       string                `json:"phone"`
	Specialties []string              `json:"specialties"`
	Schedule    models.WeeklySchedule `json:"schedule"`
}

// DefaultMechanicService is the production implementation.
type DefaultMechanicService struct {
	Repo mechanicRepo.MechanicRepository
}

func (s *DefaultMechanicService) Create(ctx context.Context, in MechanicInput) (*models.Mechanic, error) {
	if err := validateSchedule(in.Schedule); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := &models.Mechanic{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Specialties: in.Specialties,
		Schedule:    in.Schedule,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create mechanic: %w", err)
	}
	return m, nil
}

func (s *DefaultMechanicService) Get(ctx context.Context, id string) (*models.Mechanic, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultMechanicService) List(ctx context.Context, includeInactive bool) ([]models.Mechanic, error) {
	if includeInactive {
		return s.Repo.List(ctx)
	}
	return s.Repo.ListActive(ctx)
}

func (s *DefaultMechanicService) Update(ctx context.Context, id string, in MechanicInput) (*models.Mechanic, error) {
	if err := validateSchedule(in.Schedule); err != nil {
		return nil, err
	}

	set := bson.M{
		"name":        in.Name,
		"email":       in.Email,
		"phone":       in.Phone,
		"specialties": in.Specialties,
	}
	if in.Schedule != nil {
		set["schedule"] = in.Schedule
	}
	if err := s.Repo.Update(ctx, id, set); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultMechanicService) SetSchedule(ctx context.Context, p *models.Principal, id string, schedule models.WeeklySchedule) (*models.Mechanic, error) {
	if err := validateSchedule(schedule); err != nil {
		return nil, err
	}
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanActFor(m.Email) {
		return nil, booking.NewError(booking.KindPermissionDenied, "cannot change another mechanic's schedule")
	}
	if err := s.Repo.UpdateSchedule(ctx, id, schedule); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultMechanicService) SetActive(ctx context.Context, id string, active bool) error {
	return s.Repo.Update(ctx, id, bson.M{"active": active})
}

var weekdayNames = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// validateSchedule rejects unknown weekday keys and inverted windows.
// Incomplete entries (missing start or end) are allowed; the seeder skips
// them.
func validateSchedule(schedule models.WeeklySchedule) error {
	for day, hours := range schedule {
		if !weekdayNames[day] {
			return fmt.Errorf("unknown weekday %q in schedule", day)
		}
		if !hours.Complete() {
			continue
		}
		start, err := time.Parse("15:04", hours.Start)
		if err != nil {
			return fmt.Errorf("invalid start time %q for %s", hours.Start, day)
		}
		end, err := time.Parse("15:04", hours.End)
		if err != nil {
			return fmt.Errorf("invalid end time %q for %s", hours.End, day)
		}
		if !end.After(start) {
			return fmt.Errorf("end must be after start for %s", day)
		}
	}
	return nil
}

// File: services/availability/seeder.go
package availability

import (
	"context"
	"fmt"
	"time"

	"wrenchly/database/repository"
	availabilityRepo "wrenchly/database/repository/availability"
	mechanicRepo "wrenchly/database/repository/mechanic"
	"wrenchly/models"

	"go.uber.org/zap"
)

const (
	seedMaxAttempts  = 3
	seedRetryBackoff = 100 * time.Millisecond
)

// Seeder publishes a week of availability from the active mechanics' weekly
// schedules. Re-running it is idempotent: already-booked slots are never
// touched, day records are merged, not replaced.
type Seeder struct {
	Mechanics    mechanicRepo.MechanicRepository
	Availability availabilityRepo.AvailabilityRepository
	Granularity  int
	Logger       *zap.Logger
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// NextMonday returns the next upcoming Monday strictly after now's date.
func NextMonday(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysAhead := (int(time.Monday) - int(today.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return today.AddDate(0, 0, daysAhead)
}

// SeedWeek generates and merges slot grids for every (active mechanic, day)
// pair of the target week. A nil weekStart defaults to the next Monday.
// Transient storage failures are retried per pair with exponential backoff;
// exhaustion aborts the run with the partial report.
func (s *Seeder) SeedWeek(ctx context.Context, weekStart *time.Time, dryRun bool) (*models.SeedReport, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	start := NextMonday(now())
	if weekStart != nil {
		start = *weekStart
	}

	report := &models.SeedReport{
		WeekStart: start.Format("2006-01-02"),
		DryRun:    dryRun,
	}

	mechanics, err := s.Mechanics.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list active mechanics: %w", err)
	}

	for _, mech := range mechanics {
		for offset := 0; offset < 7; offset++ {
			date := start.AddDate(0, 0, offset)
			day := date.Format("2006-01-02")

			hours := mech.Schedule.ForWeekday(date.Weekday())
			if !hours.Complete() {
				report.Skipped++
				continue
			}

			grid, err := BuildSlots(hours.Start, hours.End, s.Granularity)
			if err != nil {
				s.Logger.Warn("skipping day with invalid schedule",
					zap.String("mechanic", mech.ID),
					zap.String("day", day),
					zap.Error(err))
				report.Skipped++
				continue
			}

			if dryRun {
				if _, err := s.Availability.GetDay(ctx, day); err == nil {
					report.Updated++
				} else {
					report.Created++
				}
				continue
			}

			created, err := s.mergeWithRetry(ctx, day, mech.ID, grid)
			if err != nil {
				return report, fmt.Errorf("seeding %s for mechanic %s failed: %w", day, mech.ID, err)
			}
			if created {
				report.Created++
			} else {
				report.Updated++
			}
		}
	}

	s.Logger.Info("availability seed run finished",
		zap.String("weekStart", report.WeekStart),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
		zap.Bool("dryRun", report.DryRun))
	return report, nil
}

func (s *Seeder) mergeWithRetry(ctx context.Context, day, mechanicID string, grid map[string]models.SlotState) (bool, error) {
	backoff := seedRetryBackoff
	var lastErr error
	for attempt := 1; attempt <= seedMaxAttempts; attempt++ {
		created, err := s.Availability.MergeMechanicGrid(ctx, day, mechanicID, grid)
		if err == nil {
			return created, nil
		}
		lastErr = err
		if !repository.IsTransient(err) {
			return false, err
		}
		s.Logger.Warn("transient error merging availability, retrying",
			zap.String("day", day),
			zap.String("mechanic", mechanicID),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < seedMaxAttempts {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return false, ctx.Err()
			}
			backoff *= 2
		}
	}
	return false, lastErr
}

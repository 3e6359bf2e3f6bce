// File: services/calendar/calendar.go
package calendar

import (
	"context"
	"fmt"
	"time"

	"wrenchly/models"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Service creates and deletes external calendar events for bookings. All
// calls are best-effort; the booking record stays the source of truth.
type Service interface {
	CreateEvent(ctx context.Context, b *models.Booking) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// GoogleCalendar talks to the Google Calendar API.
type GoogleCalendar struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleCalendar builds a calendar client from service-account
// credentials.
func NewGoogleCalendar(ctx context.Context, credentialsFile, calendarID string) (*GoogleCalendar, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleCalendar{svc: svc, calendarID: calendarID}, nil
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, b *models.Booking) (string, error) {
	event := &gcal.Event{
		Summary:     fmt.Sprintf("%s - %s", b.CustomerName, b.ServiceName),
		Description: b.Notes,
		Start:       &gcal.EventDateTime{DateTime: b.SlotStart.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: b.SlotEnd.Format(time.RFC3339)},
	}
	created, err := g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}
	return created.Id, nil
}

func (g *GoogleCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	if err := g.svc.Events.Delete(g.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event %s: %w", eventID, err)
	}
	return nil
}

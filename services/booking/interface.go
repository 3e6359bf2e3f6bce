// File: services/booking/interface.go
package booking

import (
	"context"
	"time"

	availabilityRepo "wrenchly/database/repository/availability"
	bookingRepo "wrenchly/database/repository/booking"
	catalogRepo "wrenchly/database/repository/catalog"
	mechanicRepo "wrenchly/database/repository/mechanic"
	"wrenchly/models"
	"wrenchly/services/availability"
	"wrenchly/services/calendar"
	"wrenchly/services/notification"
	"wrenchly/utils"

	"go.uber.org/zap"
)

// BookingService is the booking engine plus the lifecycle state machine.
type BookingService interface {
	Create(ctx context.Context, p *models.Principal, input models.BookingCreateInput) (*models.Booking, error)
	Get(ctx context.Context, p *models.Principal, id string) (*models.Booking, error)
	List(ctx context.Context, p *models.Principal, f models.BookingFilter) ([]models.Booking, error)

	Approve(ctx context.Context, p *models.Principal, id, notes string) (*models.Booking, error)
	Deny(ctx context.Context, p *models.Principal, id, notes string) (*models.Booking, error)
	Cancel(ctx context.Context, p *models.Principal, id, reason string) (*models.Booking, error)
	RequestReschedule(ctx context.Context, p *models.Principal, id, reason string, candidates []time.Time) (*models.Booking, error)
	PatchStatus(ctx context.Context, p *models.Principal, id, status string) (*models.Booking, error)
}

// DefaultBookingService wires the engine against its collaborators. Calendar
// and Notifier are best-effort boundaries; a nil Calendar disables calendar
// sync entirely.
type DefaultBookingService struct {
	Catalog      catalogRepo.CatalogRepository
	Mechanics    mechanicRepo.MechanicRepository
	Availability availabilityRepo.AvailabilityRepository
	Bookings     bookingRepo.BookingRepository

	Calendar calendar.Service
	Notifier notification.Dispatcher
	Cache    *availability.Cache
	Area     *utils.ServiceArea
	Logger   *zap.Logger

	// AllowDynamicDays lets a booking synthesize a minimal day record when
	// none was seeded.
	AllowDynamicDays bool
	// GranularityMin is the slot width bookings must align to.
	GranularityMin int
}

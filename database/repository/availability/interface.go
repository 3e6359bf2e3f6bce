// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"

	"wrenchly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository manages the per-day availability documents. Slot
// reservation and release live on the booking repository because they must
// commit together with the booking record.
type AvailabilityRepository interface {
	// GetDay returns the record for an ISO date, or repository.ErrNotFound.
	GetDay(ctx context.Context, day string) (*models.AvailabilityDay, error)
	// MergeMechanicGrid merges one mechanic's generated grid into a day as a
	// single atomic operation. Existing "booked" slots are never downgraded;
	// the mechanic always joins the day's contributing set. The returned flag
	// is true when the day document was created by this call.
	MergeMechanicGrid(ctx context.Context, day, mechanicID string, grid map[string]models.SlotState) (created bool, err error)
	// ListDays returns day records in [from, to] inclusive, ordered by date.
	ListDays(ctx context.Context, from, to string) ([]models.AvailabilityDay, error)
}

type mongoAvailabilityRepo struct {
	coll   *mongo.Collection
	client *mongo.Client
}

// NewMongoAvailabilityRepo constructs a MongoDB-backed AvailabilityRepository.
func NewMongoAvailabilityRepo(db *mongo.Database) AvailabilityRepository {
	return &mongoAvailabilityRepo{
		coll:   db.Collection("availability"),
		client: db.Client(),
	}
}

package models

import "time"

// SlotState is the occupancy state of a single availability slot.
type SlotState string

const (
	SlotFree    SlotState = "free"
	SlotBooked  SlotState = "booked"
	SlotBlocked SlotState = "blocked"
)

// AvailabilityDay is the per-day availability record. One document per ISO
// date holds the slot map for every mechanic contributing that day; the
// booking engine and the seeder both mutate it through transactions only.
type AvailabilityDay struct {
	Day                  string               `bson:"day" json:"day"` // "YYYY-MM-DD"
	Slots                map[string]SlotState `bson:"slots" json:"slots"`
	Mechanics            []string             `bson:"mechanics" json:"mechanics"`
	GeneratedDynamically bool                 `bson:"generatedDynamically,omitempty" json:"generatedDynamically,omitempty"`
	CreatedAt            time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasMechanic reports whether the mechanic already contributed to this day.
func (d *AvailabilityDay) HasMechanic(mechanicID string) bool {
	for _, id := range d.Mechanics {
		if id == mechanicID {
			return true
		}
	}
	return false
}

// SeedReport summarises one availability seeding run.
type SeedReport struct {
	WeekStart string `json:"weekStart"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
	Skipped   int    `json:"skipped"`
	DryRun    bool   `json:"dryRun"`
}

// AvailableSlot is the read-side projection returned to clients querying a day.
type AvailableSlot struct {
	Start  string    `json:"start"`
	End    string    `json:"end"`
	IsFree bool      `json:"isFree"`
	State  SlotState `json:"state"`
}

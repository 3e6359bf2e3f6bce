package models

import "time"

// Work order statuses.
const (
	WorkOrderOpen       = "open"
	WorkOrderInProgress = "in_progress"
	WorkOrderCompleted  = "completed"
)

// WorkOrderPart is a line item consumed from inventory.
type WorkOrderPart struct {
	PartID    string  `bson:"partId" json:"partId"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice"`
}

// WorkOrder documents the work performed against a booking.
type WorkOrder struct {
	ID          string          `bson:"id" json:"id"`
	Number      string          `bson:"number" json:"number"` // e.g. "WO-20250616-AB12"
	BookingID   string          `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	CustomerUID string          `bson:"customerUid" json:"customerUid"`
	VehicleID   string          `bson:"vehicleId,omitempty" json:"vehicleId,omitempty"`
	MechanicID  string          `bson:"mechanicId" json:"mechanicId"`
	Description string          `bson:"description" json:"description"`
	Parts       []WorkOrderPart `bson:"parts,omitempty" json:"parts,omitempty"`
	LaborHours  float64         `bson:"laborHours" json:"laborHours"`
	LaborRate   float64         `bson:"laborRate" json:"laborRate"`
	PartsTotal  float64         `bson:"partsTotal" json:"partsTotal"`
	LaborTotal  float64         `bson:"laborTotal" json:"laborTotal"`
	Total       float64         `bson:"total" json:"total"`
	Status      string          `bson:"status" json:"status"`
	Photos      []string        `bson:"photos,omitempty" json:"photos,omitempty"` // storage public IDs
	CompletedAt *time.Time      `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedBy   string          `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// WorkOrderInput is the mechanic-facing create/update payload.
type WorkOrderInput struct {
	BookingID   string          `json:"bookingId"`
	CustomerUID string          `json:"customerUid" binding:"required"`
	VehicleID   string          `json:"vehicleId"`
	Description string          `json:"description" binding:"required"`
	Parts       []WorkOrderPart `json:"parts"`
	LaborHours  float64         `json:"laborHours" binding:"gte=0"`
	LaborRate   float64         `json:"laborRate" binding:"gte=0"`
	Status      string          `json:"status"`
}

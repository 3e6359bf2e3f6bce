package models

import "time"

// Booking lifecycle statuses. Transitions are one-directional; nothing
// re-enters "pending" except a fresh booking.
const (
	BookingPending             = "pending"
	BookingConfirmed           = "confirmed"
	BookingDenied              = "denied"
	BookingCancelled           = "cancelled"
	BookingCompleted           = "completed"
	BookingNoShow              = "no_show"
	BookingRescheduleRequested = "reschedule_requested"
)

// Booking is the durable reservation record. Service name and price are
// denormalized at creation time so history survives later catalog edits.
// The matching availability slot carries a duplicate of the occupancy state;
// both are written by the same transaction.
type Booking struct {
	ID         string `bson:"id" json:"id"`
	ServiceID  string `bson:"serviceId" json:"serviceId"`
	MechanicID string `bson:"mechanicId" json:"mechanicId"`

	ServiceName  string  `bson:"serviceName" json:"serviceName"`
	ServicePrice float64 `bson:"servicePrice" json:"servicePrice"`

	SlotStart time.Time `bson:"slotStart" json:"slotStart"`
	SlotEnd   time.Time `bson:"slotEnd" json:"slotEnd"`

	CustomerUID     string `bson:"customerUid" json:"customerUid"`
	CustomerName    string `bson:"customerName" json:"customerName"`
	CustomerEmail   string `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone   string `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	CustomerAddress string `bson:"customerAddress,omitempty" json:"customerAddress,omitempty"`
	CustomerCity    string `bson:"customerCity,omitempty" json:"customerCity,omitempty"`
	CustomerState   string `bson:"customerState,omitempty" json:"customerState,omitempty"`
	CustomerZip     string `bson:"customerZip" json:"customerZip"`
	VehicleID       string `bson:"vehicleId,omitempty" json:"vehicleId,omitempty"`
	Notes           string `bson:"notes,omitempty" json:"notes,omitempty"`

	Status          string `bson:"status" json:"status"`
	CalendarEventID string `bson:"calendarEventId,omitempty" json:"calendarEventId,omitempty"`

	ApprovedBy    string     `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	ApprovalNotes string     `bson:"approvalNotes,omitempty" json:"approvalNotes,omitempty"`

	CancelledBy  string     `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancelledAt  *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancelReason string     `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`

	RescheduleReason      string      `bson:"rescheduleReason,omitempty" json:"rescheduleReason,omitempty"`
	RescheduleSlots       []time.Time `bson:"rescheduleSlots,omitempty" json:"rescheduleSlots,omitempty"`
	RescheduleRequestedAt *time.Time  `bson:"rescheduleRequestedAt,omitempty" json:"rescheduleRequestedAt,omitempty"`
	RescheduleResponse    string      `bson:"rescheduleResponse,omitempty" json:"rescheduleResponse,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Day returns the ISO date the booking occupies.
func (b *Booking) Day() string {
	return b.SlotStart.Format("2006-01-02")
}

// SlotKey returns the "HH:MM" availability key the booking occupies.
func (b *Booking) SlotKey() string {
	return b.SlotStart.Format("15:04")
}

// BookingCreateInput is the payload accepted by the booking engine.
type BookingCreateInput struct {
	ServiceID       string    `json:"serviceId" binding:"required"`
	SlotStart       time.Time `json:"slotStart" binding:"required"`
	CustomerName    string    `json:"customerName" binding:"required"`
	CustomerEmail   string    `json:"customerEmail" binding:"required,email"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerAddress string    `json:"customerAddress"`
	CustomerCity    string    `json:"customerCity"`
	CustomerState   string    `json:"customerState"`
	CustomerZip     string    `json:"customerZip" binding:"required"`
	VehicleID       string    `json:"vehicleId"`
	Notes           string    `json:"notes"`
}

// BookingFilter narrows booking list queries.
type BookingFilter struct {
	CustomerUID   string
	CustomerEmail string
	MechanicID    string
	Status        string
	Day           string
	Limit         int64
}

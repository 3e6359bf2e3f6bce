package models

// Notification event kinds carried on the task queue. The worker renders and
// delivers them; this side only describes what happened.
const (
	NotifyBookingCreated     = "booking_created"
	NotifyBookingConfirmed   = "booking_confirmed"
	NotifyBookingDenied      = "booking_denied"
	NotifyBookingCancelled   = "booking_cancelled"
	NotifyRescheduleRequest  = "booking_reschedule_requested"
	NotifyCustomerInvitation = "customer_invitation"
)

// NotificationPayload is the JSON body of a queued notification task.
type NotificationPayload struct {
	Kind           string `json:"kind"`
	BookingID      string `json:"bookingId,omitempty"`
	RecipientEmail string `json:"recipientEmail"`
	RecipientName  string `json:"recipientName,omitempty"`
	ServiceName    string `json:"serviceName,omitempty"`
	SlotStart      string `json:"slotStart,omitempty"`
	Reason         string `json:"reason,omitempty"`
	// TempPassword carries the invitation credential for customer_invitation
	// events only.
	TempPassword string `json:"tempPassword,omitempty"`
}

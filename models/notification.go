package models

// ReminderPayload is the queued task body for a booking reminder.
type ReminderPayload struct {
	BookingID   string `json:"bookingId"`
	Target      string `json:"target"` // "customer" or "provider"
	RecipientID string `json:"recipientId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	FireDate    string `json:"fireDate"`
}

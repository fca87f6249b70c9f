package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingRequested  BookingStatus = "requested"
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingRejected   BookingStatus = "rejected"
)

// ActiveBookingStatuses are the statuses that occupy a provider's time slot.
var ActiveBookingStatuses = []BookingStatus{
	BookingRequested,
	BookingPending,
	BookingConfirmed,
	BookingInProgress,
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingRequested, BookingPending, BookingConfirmed,
		BookingInProgress, BookingCompleted, BookingCancelled, BookingRejected:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingCompleted, BookingCancelled, BookingRejected:
		return true
	}
	return false
}

// Active reports whether a booking in status s still holds its slot.
func (s BookingStatus) Active() bool {
	return s.Valid() && !s.Terminal()
}

// Booking links a customer, a provider and a service at a specific date/time.
// Dates are stored as "2006-01-02" and times as "15:04"; slot conflict checks
// compare these fields by exact equality.
type Booking struct {
	ID                  string        `bson:"id" json:"id"`
	CustomerID          string        `bson:"customerId" json:"customerId"`
	ProviderID          string        `bson:"providerId" json:"providerId"`
	ServiceID           string        `bson:"serviceId" json:"serviceId"`
	RequestedDate       string        `bson:"requestedDate" json:"requestedDate"`
	RequestedTime       string        `bson:"requestedTime" json:"requestedTime"`
	ConfirmedDate       string        `bson:"confirmedDate,omitempty" json:"confirmedDate,omitempty"`
	ConfirmedTime       string        `bson:"confirmedTime,omitempty" json:"confirmedTime,omitempty"`
	Status              BookingStatus `bson:"status" json:"status"`
	SpecialInstructions string        `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	CancellationReason  string        `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancelledByID       string        `bson:"cancelledById,omitempty" json:"cancelledById,omitempty"`
	CreatedAt           time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time     `bson:"updatedAt" json:"updatedAt"`
}

package bookingRepo

import (
	"time"

	"karigar/models"
)

// BookingRepository persists bookings and performs the conditional status
// writes the lifecycle manager relies on. Every *If method updates the booking
// only when its status still equals the expected value and reports whether the
// write matched, so two concurrent transitions can never both succeed against
// a stale read.
type BookingRepository interface {
	Create(b *models.Booking) error
	// GetByID returns (nil, nil) when no booking with the given id exists.
	GetByID(id string) (*models.Booking, error)
	ListByCustomer(customerID string, status models.BookingStatus) ([]models.Booking, error)
	ListByProvider(providerID string, status models.BookingStatus) ([]models.Booking, error)
	ListAll(status models.BookingStatus) ([]models.Booking, error)

	// FindActiveBySlot returns a booking occupying the exact
	// (provider, date, time) slot in an active status, skipping excludeID.
	// Returns (nil, nil) when the slot is free.
	FindActiveBySlot(providerID, date, timeOfDay, excludeID string) (*models.Booking, error)

	TransitionIf(id string, expected, to models.BookingStatus) (bool, error)
	ConfirmIf(id string, expected models.BookingStatus, confirmedDate, confirmedTime string) (bool, error)
	CancelIf(id string, expected models.BookingStatus, reason, cancelledByID string) (bool, error)
	// CompleteAndCountJob marks the booking completed and increments the
	// provider's completedJobs counter in the same transaction.
	CompleteAndCountJob(id string, expected models.BookingStatus) (bool, error)
	RescheduleIf(id string, expected models.BookingStatus, newDate, newTime, instructions string) (bool, error)

	Count() (int64, error)
	CountSince(t time.Time) (int64, error)
	CountByStatus() (map[models.BookingStatus]int64, error)
}

package booking

import (
	bookingRepo "karigar/database/repository/booking"
	providerRepo "karigar/database/repository/provider"
	serviceRepo "karigar/database/repository/service"
	"karigar/models"
)

// RequestBookingInput carries the fields a customer submits to book a slot.
type RequestBookingInput struct {
	ProviderID          string `json:"providerId" binding:"required"`
	ServiceID           string `json:"serviceId" binding:"required"`
	RequestedDate       string `json:"requestedDate" binding:"required"`
	RequestedTime       string `json:"requestedTime" binding:"required"`
	SpecialInstructions string `json:"specialInstructions"`
}

// BookingService owns the booking lifecycle: creation, status transitions with
// per-transition authorization and side effects, rescheduling, and the slot
// conflict check.
type BookingService interface {
	RequestBooking(actor models.SessionUser, in RequestBookingInput) (*models.Booking, error)
	ChangeStatus(actor models.SessionUser, bookingID string, newStatus models.BookingStatus, cancellationReason string) (*models.Booking, error)
	RescheduleBooking(actor models.SessionUser, bookingID, newDate, newTime, reason string) (*models.Booking, error)
	GetBooking(actor models.SessionUser, bookingID string) (*models.Booking, error)
	ListBookings(actor models.SessionUser, status models.BookingStatus) ([]models.Booking, error)
	HasConflict(providerID, date, timeOfDay, excludeBookingID string) (bool, error)
}

// ReminderScheduler enqueues reminder notifications for a confirmed booking.
// Scheduling is best-effort; a failure never blocks the transition.
type ReminderScheduler interface {
	ScheduleBookingReminders(b *models.Booking) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Services  serviceRepo.ServiceRepository
	Providers providerRepo.ProviderInfoRepository
	Reminders ReminderScheduler // optional
}

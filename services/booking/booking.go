package booking

import (
	"karigar/models"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestBooking creates a new booking in status requested on behalf of a
// customer. The slot must be free and both the service and its provider must
// be accepting bookings.
func (s *DefaultBookingService) RequestBooking(actor models.SessionUser, in RequestBookingInput) (*models.Booking, error) {
	if actor.Role != models.RoleCustomer {
		return nil, utils.NewAppError(utils.CodeForbidden, "only customers can create bookings")
	}
	if err := validateSlot(in.RequestedDate, in.RequestedTime); err != nil {
		return nil, err
	}
	if dateInPast(in.RequestedDate) {
		return nil, utils.NewAppError(utils.CodeValidation, "cannot book in the past")
	}

	svc, err := s.Services.GetByID(in.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "service not found")
	}
	if svc.ProviderID != in.ProviderID {
		return nil, utils.NewAppError(utils.CodeValidation, "service does not belong to this provider")
	}
	if !svc.IsActive {
		return nil, utils.NewAppError(utils.CodeValidation, "service is not available")
	}

	info, err := s.Providers.GetByUserID(in.ProviderID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "provider not found")
	}
	if !info.IsActive {
		return nil, utils.NewAppError(utils.CodeValidation, "provider is not accepting bookings")
	}

	conflict, err := s.HasConflict(in.ProviderID, in.RequestedDate, in.RequestedTime, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, utils.NewAppError(utils.CodeSlotConflict, "this time slot is already booked")
	}

	b := &models.Booking{
		ID:                  uuid.New().String(),
		CustomerID:          actor.ID,
		ProviderID:          in.ProviderID,
		ServiceID:           in.ServiceID,
		RequestedDate:       in.RequestedDate,
		RequestedTime:       in.RequestedTime,
		Status:              models.BookingRequested,
		SpecialInstructions: in.SpecialInstructions,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ChangeStatus applies one legal lifecycle transition on behalf of an actor.
// The underlying status write is conditional on the status the transition was
// validated against, so a concurrent transition cannot be silently overwritten.
func (s *DefaultBookingService) ChangeStatus(actor models.SessionUser, bookingID string, newStatus models.BookingStatus, cancellationReason string) (*models.Booking, error) {
	if !newStatus.Valid() {
		return nil, utils.NewAppError(utils.CodeValidation, "unknown booking status %q", newStatus)
	}

	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "booking not found")
	}

	isCustomer := b.CustomerID == actor.ID
	isProvider := b.ProviderID == actor.ID
	isAdmin := actor.Role == models.RoleAdmin
	if !isCustomer && !isProvider && !isAdmin {
		return nil, utils.NewAppError(utils.CodeUnauthorized, "not a party to this booking")
	}

	if !CanTransition(b.Status, newStatus) {
		return nil, utils.NewAppError(utils.CodeInvalidTransition,
			"cannot change status from %s to %s", b.Status, newStatus)
	}
	if requiresProviderRole(newStatus) && !isProvider && !isAdmin {
		return nil, utils.NewAppError(utils.CodeForbidden, "only the provider can mark a booking %s", newStatus)
	}

	var matched bool
	switch newStatus {
	case models.BookingConfirmed:
		if b.Status == models.BookingRequested {
			// Snapshot the slot being agreed to at the moment of confirmation.
			matched, err = s.Repo.ConfirmIf(b.ID, b.Status, b.RequestedDate, b.RequestedTime)
		} else {
			matched, err = s.Repo.TransitionIf(b.ID, b.Status, newStatus)
		}
	case models.BookingCancelled:
		matched, err = s.Repo.CancelIf(b.ID, b.Status, cancellationReason, actor.ID)
	case models.BookingCompleted:
		matched, err = s.Repo.CompleteAndCountJob(b.ID, b.Status)
	default:
		matched, err = s.Repo.TransitionIf(b.ID, b.Status, newStatus)
	}
	if err != nil {
		return nil, err
	}
	if !matched {
		// Someone else moved the booking between our read and the write.
		return nil, utils.NewAppError(utils.CodeInvalidTransition,
			"booking status changed concurrently, cannot move to %s", newStatus)
	}

	updated, err := s.Repo.GetByID(b.ID)
	if err != nil {
		return nil, err
	}

	if newStatus == models.BookingConfirmed && s.Reminders != nil {
		if err := s.Reminders.ScheduleBookingReminders(updated); err != nil {
			utils.GetLogger().Warn("failed to schedule booking reminders",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	return updated, nil
}

// GetBooking returns one booking to a party of it or an admin.
func (s *DefaultBookingService) GetBooking(actor models.SessionUser, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "booking not found")
	}
	if b.CustomerID != actor.ID && b.ProviderID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, utils.NewAppError(utils.CodeUnauthorized, "not a party to this booking")
	}
	return b, nil
}

// ListBookings returns the actor's bookings; admins see every booking.
func (s *DefaultBookingService) ListBookings(actor models.SessionUser, status models.BookingStatus) ([]models.Booking, error) {
	if status != "" && !status.Valid() {
		return nil, utils.NewAppError(utils.CodeValidation, "unknown booking status %q", status)
	}
	switch actor.Role {
	case models.RoleCustomer:
		return s.Repo.ListByCustomer(actor.ID, status)
	case models.RoleProvider:
		return s.Repo.ListByProvider(actor.ID, status)
	case models.RoleAdmin:
		return s.Repo.ListAll(status)
	}
	return nil, utils.NewAppError(utils.CodeForbidden, "unknown role %q", actor.Role)
}

// HasConflict reports whether an active booking already occupies the exact
// (provider, date, time) slot. Matching is exact; bookings a minute apart do
// not conflict.
func (s *DefaultBookingService) HasConflict(providerID, date, timeOfDay, excludeBookingID string) (bool, error) {
	existing, err := s.Repo.FindActiveBySlot(providerID, date, timeOfDay, excludeBookingID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

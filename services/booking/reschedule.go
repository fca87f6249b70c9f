package booking

import (
	"strings"

	"karigar/models"
	"karigar/utils"
)

// rescheduleNotePrefix annotates reschedule reasons appended to a booking's
// special instructions.
const rescheduleNotePrefix = "[Reschedule Request]: "

// RescheduleBooking moves a booking to a new slot and resets it to requested,
// so it re-enters the approval flow even when it was already confirmed.
func (s *DefaultBookingService) RescheduleBooking(actor models.SessionUser, bookingID, newDate, newTime, reason string) (*models.Booking, error) {
	if err := validateSlot(newDate, newTime); err != nil {
		return nil, err
	}
	if dateInPast(newDate) {
		return nil, utils.NewAppError(utils.CodeValidation, "cannot reschedule to a past date")
	}

	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "booking not found")
	}
	if b.CustomerID != actor.ID && b.ProviderID != actor.ID {
		return nil, utils.NewAppError(utils.CodeUnauthorized, "not a party to this booking")
	}

	switch b.Status {
	case models.BookingRequested, models.BookingPending, models.BookingConfirmed:
	default:
		return nil, utils.NewAppError(utils.CodeInvalidState,
			"cannot reschedule a booking in status %s", b.Status)
	}

	conflict, err := s.HasConflict(b.ProviderID, newDate, newTime, b.ID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, utils.NewAppError(utils.CodeSlotConflict, "this time slot is already booked")
	}

	instructions := b.SpecialInstructions
	if reason != "" {
		instructions = strings.TrimSpace(instructions + "\n" + rescheduleNotePrefix + reason)
	}

	matched, err := s.Repo.RescheduleIf(b.ID, b.Status, newDate, newTime, instructions)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, utils.NewAppError(utils.CodeInvalidState,
			"booking status changed concurrently, reschedule aborted")
	}
	return s.Repo.GetByID(b.ID)
}

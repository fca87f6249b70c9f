package booking

import "karigar/models"

// allowedTransitions is the booking state machine. A status missing from the
// map, or mapped to an empty set, is terminal.
var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingRequested:  {models.BookingConfirmed, models.BookingRejected, models.BookingCancelled},
	models.BookingPending:    {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed:  {models.BookingInProgress, models.BookingCancelled},
	models.BookingInProgress: {models.BookingCompleted, models.BookingCancelled},
	models.BookingCompleted:  {},
	models.BookingCancelled:  {},
	models.BookingRejected:   {},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// requiresProviderRole reports whether only the provider (or an admin) may
// move a booking into the target status. Customers may only cancel, or bump a
// booking back to requested via reschedule.
func requiresProviderRole(to models.BookingStatus) bool {
	switch to {
	case models.BookingConfirmed, models.BookingRejected,
		models.BookingInProgress, models.BookingCompleted:
		return true
	}
	return false
}

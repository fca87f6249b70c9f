package booking

import (
	"testing"

	"karigar/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    models.BookingStatus
		to      models.BookingStatus
		allowed bool
	}{
		{models.BookingRequested, models.BookingConfirmed, true},
		{models.BookingRequested, models.BookingRejected, true},
		{models.BookingRequested, models.BookingCancelled, true},
		{models.BookingRequested, models.BookingCompleted, false},
		{models.BookingRequested, models.BookingInProgress, false},
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingRejected, false},
		{models.BookingConfirmed, models.BookingInProgress, true},
		{models.BookingConfirmed, models.BookingCancelled, true},
		{models.BookingConfirmed, models.BookingCompleted, false},
		{models.BookingConfirmed, models.BookingRequested, false},
		{models.BookingInProgress, models.BookingCompleted, true},
		{models.BookingInProgress, models.BookingCancelled, true},
		{models.BookingInProgress, models.BookingConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatesAllowNothing(t *testing.T) {
	terminals := []models.BookingStatus{
		models.BookingCompleted, models.BookingCancelled, models.BookingRejected,
	}
	targets := []models.BookingStatus{
		models.BookingRequested, models.BookingPending, models.BookingConfirmed,
		models.BookingInProgress, models.BookingCompleted, models.BookingCancelled,
		models.BookingRejected,
	}
	for _, from := range terminals {
		assert.True(t, from.Terminal())
		for _, to := range targets {
			assert.Falsef(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestRequiresProviderRole(t *testing.T) {
	assert.True(t, requiresProviderRole(models.BookingConfirmed))
	assert.True(t, requiresProviderRole(models.BookingRejected))
	assert.True(t, requiresProviderRole(models.BookingInProgress))
	assert.True(t, requiresProviderRole(models.BookingCompleted))
	assert.False(t, requiresProviderRole(models.BookingCancelled))
	assert.False(t, requiresProviderRole(models.BookingRequested))
}

func TestActiveStatusesHoldSlots(t *testing.T) {
	for _, s := range models.ActiveBookingStatuses {
		assert.True(t, s.Active(), string(s))
	}
	assert.False(t, models.BookingCompleted.Active())
	assert.False(t, models.BookingCancelled.Active())
	assert.False(t, models.BookingRejected.Active())
}

package handlers

import (
	"net/http"

	"karigar/middleware"
	"karigar/models"
	bookingSvc "karigar/services/booking"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// CreateBookingHandler books a slot with a provider.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var in bookingSvc.RequestBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := hb.Bookings.RequestBooking(session, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBookingHandler returns one booking to a party of it.
func (hb *HandlerBundle) GetBookingHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	b, err := hb.Bookings.GetBooking(session, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookingsHandler lists the caller's bookings, optionally filtered by
// status.
func (hb *HandlerBundle) ListBookingsHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	status := models.BookingStatus(c.Query("status"))
	list, err := hb.Bookings.ListBookings(session, status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list, "count": len(list)})
}

// UpdateBookingStatusHandler applies one lifecycle transition.
func (hb *HandlerBundle) UpdateBookingStatusHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var in struct {
		Status             models.BookingStatus `json:"status" binding:"required"`
		CancellationReason string               `json:"cancellationReason"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := hb.Bookings.ChangeStatus(session, c.Param("id"), in.Status, in.CancellationReason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RescheduleBookingHandler moves a booking to a new slot and restarts its
// approval flow.
func (hb *HandlerBundle) RescheduleBookingHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var in struct {
		NewDate string `json:"newDate" binding:"required"`
		NewTime string `json:"newTime" binding:"required"`
		Reason  string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := hb.Bookings.RescheduleBooking(session, c.Param("id"), in.NewDate, in.NewTime, in.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CheckAvailabilityHandler reports whether a provider's slot is still free.
func (hb *HandlerBundle) CheckAvailabilityHandler(c *gin.Context) {
	providerID := c.Query("providerId")
	date := c.Query("date")
	timeOfDay := c.Query("time")
	if providerID == "" || date == "" || timeOfDay == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "providerId, date and time are required"})
		return
	}
	conflict, err := hb.Bookings.HasConflict(providerID, date, timeOfDay, "")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": !conflict})
}

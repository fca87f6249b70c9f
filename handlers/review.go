package handlers

import (
	"net/http"
	"strconv"

	"karigar/middleware"
	reviewSvc "karigar/services/review"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// SubmitReviewHandler records a review for a completed booking.
func (hb *HandlerBundle) SubmitReviewHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var in reviewSvc.SubmitReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	rev, err := hb.Reviews.SubmitReview(session, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}

// UpdateReviewHandler edits an existing review.
func (hb *HandlerBundle) UpdateReviewHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var in reviewSvc.UpdateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	rev, err := hb.Reviews.UpdateReview(session, c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rev)
}

// DeleteReviewHandler withdraws a review. The review stays stored but is
// hidden from listings and dropped from the provider's aggregates.
func (hb *HandlerBundle) DeleteReviewHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if err := hb.Reviews.HideReview(session, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review removed"})
}

// GetBookingReviewHandler returns the review attached to a booking.
func (hb *HandlerBundle) GetBookingReviewHandler(c *gin.Context) {
	rev, err := hb.Reviews.GetBookingReview(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rev)
}

// ListProviderReviewsHandler returns a provider's visible reviews.
func (hb *HandlerBundle) ListProviderReviewsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	reviews, err := hb.Reviews.ListProviderReviews(c.Param("id"), limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

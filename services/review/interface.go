package review

import (
	bookingRepo "karigar/database/repository/booking"
	reviewRepo "karigar/database/repository/review"
	"karigar/models"
)

// SubmitReviewInput carries the fields a customer submits after a completed
// booking.
type SubmitReviewInput struct {
	BookingID string `json:"bookingId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// UpdateReviewInput carries an owner's or admin's partial edit. Nil fields
// stay untouched; aggregates are recomputed only when the rating or the
// visibility actually changes.
type UpdateReviewInput struct {
	Rating    *int    `json:"rating"`
	Comment   *string `json:"comment"`
	IsVisible *bool   `json:"isVisible"`
}

// ReviewService owns review submission, moderation and the provider rating
// aggregates derived from visible reviews.
type ReviewService interface {
	SubmitReview(actor models.SessionUser, in SubmitReviewInput) (*models.Review, error)
	UpdateReview(actor models.SessionUser, reviewID string, in UpdateReviewInput) (*models.Review, error)
	HideReview(actor models.SessionUser, reviewID string) error
	ListProviderReviews(providerID string, limit int) ([]models.Review, error)
	GetBookingReview(bookingID string) (*models.Review, error)
	Recompute(providerID string) error
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Repo     reviewRepo.ReviewRepository
	Bookings bookingRepo.BookingRepository
}

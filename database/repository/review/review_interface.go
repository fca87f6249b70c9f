package reviewRepo

import (
	"time"

	"karigar/models"
)

// AggregateFn computes a provider's rating aggregates from the full set of
// currently visible reviews. The repository calls it inside the same
// transaction that persists the triggering review, so review write and
// aggregate write land together or not at all.
type AggregateFn func(visible []models.Review) (averageRating float64, totalReviews int)

// ReviewRepository persists reviews and keeps provider rating aggregates in
// step with them.
type ReviewRepository interface {
	// GetByID returns (nil, nil) when no review with the given id exists.
	GetByID(id string) (*models.Review, error)
	// GetByBookingID returns (nil, nil) when the booking has no review yet.
	GetByBookingID(bookingID string) (*models.Review, error)
	ListVisibleByReviewee(revieweeID string, limit int) ([]models.Review, error)
	ListByReviewee(revieweeID string, includeHidden bool, limit int) ([]models.Review, error)
	ListAll(includeHidden bool, limit int) ([]models.Review, error)

	// CreateWithAggregates inserts the review and refreshes the reviewee's
	// aggregates in one transaction.
	CreateWithAggregates(r *models.Review, agg AggregateFn) error
	// UpdateWithAggregates saves the review; when recompute is true the
	// reviewee's aggregates are refreshed in the same transaction.
	UpdateWithAggregates(r *models.Review, recompute bool, agg AggregateFn) error
	// SetAggregates writes precomputed aggregates for a provider. Used by the
	// periodic reconciliation job.
	SetAggregates(revieweeID string, averageRating float64, totalReviews int) error

	CountVisible() (int64, error)
	CountVisibleSince(t time.Time) (int64, error)
}

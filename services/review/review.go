package review

import (
	"strings"

	"karigar/models"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCommentLength = 1000

// SubmitReview records a customer's review of a completed booking and moves
// the provider's aggregates in the same transaction.
func (s *DefaultReviewService) SubmitReview(actor models.SessionUser, in SubmitReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, utils.NewAppError(utils.CodeValidation, "rating must be between 1 and 5")
	}
	if len(in.Comment) > maxCommentLength {
		return nil, utils.NewAppError(utils.CodeValidation, "comment must be at most %d characters", maxCommentLength)
	}

	b, err := s.Bookings.GetByID(in.BookingID)
	if err != nil {
		utils.GetLogger().Error("SubmitReview: failed to fetch booking", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not load booking")
	}
	if b == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "booking not found")
	}
	if b.CustomerID != actor.ID {
		return nil, utils.NewAppError(utils.CodeForbidden, "only the booking's customer may review it")
	}
	if b.Status != models.BookingCompleted {
		return nil, utils.NewAppError(utils.CodeInvalidState, "only completed bookings can be reviewed")
	}

	existing, err := s.Repo.GetByBookingID(in.BookingID)
	if err != nil {
		utils.GetLogger().Error("SubmitReview: failed to check existing review", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not check existing review")
	}
	if existing != nil {
		return nil, utils.NewAppError(utils.CodeValidation, "booking already has a review")
	}

	rev := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  b.ID,
		ReviewerID: actor.ID,
		RevieweeID: b.ProviderID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
		IsVisible:  true,
	}
	if err := s.Repo.CreateWithAggregates(rev, Aggregate); err != nil {
		utils.GetLogger().Error("SubmitReview: failed to create review", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not save review")
	}
	utils.GetLogger().Info("review submitted",
		zap.String("reviewID", rev.ID),
		zap.String("bookingID", rev.BookingID),
		zap.Int("rating", rev.Rating))
	return rev, nil
}

// UpdateReview applies a partial edit. The reviewer may edit rating and
// comment on their own review; admins may additionally toggle visibility.
// Aggregates are recomputed only when the edit changes what the aggregates
// are derived from.
func (s *DefaultReviewService) UpdateReview(actor models.SessionUser, reviewID string, in UpdateReviewInput) (*models.Review, error) {
	rev, err := s.Repo.GetByID(reviewID)
	if err != nil {
		utils.GetLogger().Error("UpdateReview: failed to fetch review", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not load review")
	}
	if rev == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "review not found")
	}

	isOwner := rev.ReviewerID == actor.ID
	isAdmin := actor.Role == models.RoleAdmin
	if !isOwner && !isAdmin {
		return nil, utils.NewAppError(utils.CodeForbidden, "not allowed to edit this review")
	}

	recompute := false
	if in.Rating != nil && *in.Rating != rev.Rating {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, utils.NewAppError(utils.CodeValidation, "rating must be between 1 and 5")
		}
		rev.Rating = *in.Rating
		recompute = true
	}
	if in.Comment != nil {
		if len(*in.Comment) > maxCommentLength {
			return nil, utils.NewAppError(utils.CodeValidation, "comment must be at most %d characters", maxCommentLength)
		}
		rev.Comment = strings.TrimSpace(*in.Comment)
	}
	if in.IsVisible != nil && *in.IsVisible != rev.IsVisible {
		// The reviewer may withdraw their own review; only admins restore one.
		if !isAdmin && *in.IsVisible {
			return nil, utils.NewAppError(utils.CodeForbidden, "only admins may restore a hidden review")
		}
		rev.IsVisible = *in.IsVisible
		recompute = true
	}

	if err := s.Repo.UpdateWithAggregates(rev, recompute, Aggregate); err != nil {
		utils.GetLogger().Error("UpdateReview: failed to save review", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not save review")
	}
	return rev, nil
}

// HideReview soft-hides a review from public listings and pulls it out of the
// provider's aggregates. Allowed for the reviewer and for admins.
func (s *DefaultReviewService) HideReview(actor models.SessionUser, reviewID string) error {
	hidden := false
	_, err := s.UpdateReview(actor, reviewID, UpdateReviewInput{IsVisible: &hidden})
	return err
}

// ListProviderReviews returns a provider's visible reviews, newest first.
func (s *DefaultReviewService) ListProviderReviews(providerID string, limit int) ([]models.Review, error) {
	reviews, err := s.Repo.ListVisibleByReviewee(providerID, limit)
	if err != nil {
		utils.GetLogger().Error("ListProviderReviews: failed to list reviews", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not list reviews")
	}
	return reviews, nil
}

// GetBookingReview returns the review attached to a booking, or NotFound.
func (s *DefaultReviewService) GetBookingReview(bookingID string) (*models.Review, error) {
	rev, err := s.Repo.GetByBookingID(bookingID)
	if err != nil {
		utils.GetLogger().Error("GetBookingReview: failed to fetch review", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not load review")
	}
	if rev == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "no review for this booking")
	}
	return rev, nil
}

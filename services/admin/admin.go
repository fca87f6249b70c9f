package admin

import (
	"time"

	"karigar/models"
	"karigar/utils"

	"go.uber.org/zap"
)

const topProviderCount = 5

// Dashboard assembles the analytics snapshot shown on the admin home page.
func (s *DefaultAdminService) Dashboard() (*Analytics, error) {
	since := time.Now().AddDate(0, 0, -7)
	out := &Analytics{UsersByRole: make(map[models.UserRole]int64)}

	var err error
	if out.TotalUsers, err = s.Users.Count(); err != nil {
		return nil, s.internal("count users", err)
	}
	for _, role := range []models.UserRole{models.RoleCustomer, models.RoleProvider, models.RoleAdmin} {
		n, err := s.Users.CountByRole(role)
		if err != nil {
			return nil, s.internal("count users by role", err)
		}
		out.UsersByRole[role] = n
	}
	if out.NewUsersLast7Days, err = s.Users.CountSince(since); err != nil {
		return nil, s.internal("count new users", err)
	}

	if out.TotalBookings, err = s.Bookings.Count(); err != nil {
		return nil, s.internal("count bookings", err)
	}
	if out.BookingsByStatus, err = s.Bookings.CountByStatus(); err != nil {
		return nil, s.internal("count bookings by status", err)
	}
	if out.BookingsLast7Days, err = s.Bookings.CountSince(since); err != nil {
		return nil, s.internal("count recent bookings", err)
	}

	if out.VisibleReviews, err = s.Reviews.CountVisible(); err != nil {
		return nil, s.internal("count reviews", err)
	}
	if out.ReviewsLast7Days, err = s.Reviews.CountVisibleSince(since); err != nil {
		return nil, s.internal("count recent reviews", err)
	}

	if out.PendingVerifications, err = s.Providers.CountPendingVerifications(); err != nil {
		return nil, s.internal("count pending verifications", err)
	}
	if out.TopProviders, err = s.Providers.ListTopRated(topProviderCount); err != nil {
		return nil, s.internal("list top providers", err)
	}
	if out.ServicesByCategory, err = s.Services.CountByCategory(0); err != nil {
		return nil, s.internal("count services by category", err)
	}
	return out, nil
}

func (s *DefaultAdminService) internal(op string, err error) error {
	utils.GetLogger().Error("admin dashboard query failed",
		zap.String("op", op), zap.Error(err))
	return utils.NewAppError(utils.CodeInternal, "could not load analytics")
}

// ListUsers pages through accounts, optionally filtered by role or a name and
// email search.
func (s *DefaultAdminService) ListUsers(role models.UserRole, search string, limit, skip int) ([]models.User, error) {
	if role != "" && !role.Valid() {
		return nil, utils.NewAppError(utils.CodeValidation, "unknown role %q", role)
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}
	users, err := s.Users.List(role, search, limit, skip)
	if err != nil {
		utils.GetLogger().Error("ListUsers: failed to list users", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not list users")
	}
	return users, nil
}

// SetProviderActive suspends or reinstates a provider. Suspended providers
// disappear from search and cannot take new bookings.
func (s *DefaultAdminService) SetProviderActive(providerID string, active bool) error {
	info, err := s.Providers.GetByUserID(providerID)
	if err != nil {
		utils.GetLogger().Error("SetProviderActive: failed to fetch provider", zap.Error(err))
		return utils.NewAppError(utils.CodeInternal, "could not load provider")
	}
	if info == nil {
		return utils.NewAppError(utils.CodeNotFound, "provider not found")
	}
	if err := s.Providers.SetActive(providerID, active); err != nil {
		utils.GetLogger().Error("SetProviderActive: failed to update provider", zap.Error(err))
		return utils.NewAppError(utils.CodeInternal, "could not update provider")
	}
	utils.GetLogger().Info("provider active flag changed",
		zap.String("providerID", providerID), zap.Bool("active", active))
	return nil
}

// SetVerificationStatus records the outcome of an admin's credential review.
func (s *DefaultAdminService) SetVerificationStatus(providerID string, status models.VerificationStatus) error {
	if !status.Valid() {
		return utils.NewAppError(utils.CodeValidation, "unknown verification status %q", status)
	}
	info, err := s.Providers.GetByUserID(providerID)
	if err != nil {
		utils.GetLogger().Error("SetVerificationStatus: failed to fetch provider", zap.Error(err))
		return utils.NewAppError(utils.CodeInternal, "could not load provider")
	}
	if info == nil {
		return utils.NewAppError(utils.CodeNotFound, "provider not found")
	}
	if err := s.Providers.SetVerificationStatus(providerID, status); err != nil {
		utils.GetLogger().Error("SetVerificationStatus: failed to update provider", zap.Error(err))
		return utils.NewAppError(utils.CodeInternal, "could not update provider")
	}
	utils.GetLogger().Info("provider verification updated",
		zap.String("providerID", providerID), zap.String("status", string(status)))
	return nil
}

// ListReviews returns reviews for the moderation queue, hidden ones included
// when asked.
func (s *DefaultAdminService) ListReviews(includeHidden bool, limit int) ([]models.Review, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	reviews, err := s.Reviews.ListAll(includeHidden, limit)
	if err != nil {
		utils.GetLogger().Error("ListReviews: failed to list reviews", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not list reviews")
	}
	return reviews, nil
}

// ReconcileAggregates re-derives every provider's rating aggregates from the
// visible review set. Run periodically as a safety net for missed refreshes.
func (s *DefaultAdminService) ReconcileAggregates() error {
	ids, err := s.Providers.ListAllUserIDs()
	if err != nil {
		utils.GetLogger().Error("ReconcileAggregates: failed to list providers", zap.Error(err))
		return utils.NewAppError(utils.CodeInternal, "could not list providers")
	}
	var failed int
	for _, id := range ids {
		if err := s.Ratings.Recompute(id); err != nil {
			failed++
			utils.GetLogger().Warn("failed to reconcile provider aggregates",
				zap.String("providerID", id), zap.Error(err))
		}
	}
	utils.GetLogger().Info("aggregate reconciliation finished",
		zap.Int("providers", len(ids)), zap.Int("failed", failed))
	return nil
}

package admin

import (
	bookingRepo "karigar/database/repository/booking"
	providerRepo "karigar/database/repository/provider"
	reviewRepo "karigar/database/repository/review"
	serviceRepo "karigar/database/repository/service"
	userRepo "karigar/database/repository/user"
	"karigar/models"
)

// Analytics is the admin dashboard snapshot.
type Analytics struct {
	TotalUsers           int64                          `json:"totalUsers"`
	UsersByRole          map[models.UserRole]int64      `json:"usersByRole"`
	NewUsersLast7Days   int64                          `json:"newUsersLast7Days"`
	TotalBookings        int64                          `json:"totalBookings"`
	BookingsByStatus     map[models.BookingStatus]int64 `json:"bookingsByStatus"`
	BookingsLast7Days   int64                          `json:"bookingsLast7Days"`
	VisibleReviews       int64                          `json:"visibleReviews"`
	ReviewsLast7Days    int64                          `json:"reviewsLast7Days"`
	PendingVerifications int64                          `json:"pendingVerifications"`
	TopProviders         []models.ProviderInfo          `json:"topProviders"`
	ServicesByCategory   []serviceRepo.CategoryCount    `json:"servicesByCategory"`
}

// Recomputer re-derives one provider's rating aggregates from the store.
type Recomputer interface {
	Recompute(providerID string) error
}

// AdminService owns the moderation and analytics surface.
type AdminService interface {
	Dashboard() (*Analytics, error)
	ListUsers(role models.UserRole, search string, limit, skip int) ([]models.User, error)
	SetProviderActive(providerID string, active bool) error
	SetVerificationStatus(providerID string, status models.VerificationStatus) error
	ListReviews(includeHidden bool, limit int) ([]models.Review, error)
	ReconcileAggregates() error
}

// DefaultAdminService implements AdminService.
type DefaultAdminService struct {
	Users     userRepo.UserRepository
	Providers providerRepo.ProviderInfoRepository
	Bookings  bookingRepo.BookingRepository
	Reviews   reviewRepo.ReviewRepository
	Services  serviceRepo.ServiceRepository
	Ratings   Recomputer
}

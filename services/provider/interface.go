package provider

import (
	providerRepo "karigar/database/repository/provider"
	serviceRepo "karigar/database/repository/service"
	userRepo "karigar/database/repository/user"
	"karigar/models"
)

// SearchInput carries the filters a customer searches providers with.
type SearchInput struct {
	CategoryID string  `form:"categoryId"`
	City       string  `form:"city"`
	Area       string  `form:"area"`
	Latitude   float64 `form:"lat"`
	Longitude  float64 `form:"lng"`
	RadiusKm   float64 `form:"radiusKm"`
	MinRating  float64 `form:"minRating"`
	PriceMin   float64 `form:"priceMin"`
	PriceMax   float64 `form:"priceMax"`
	SortBy     string  `form:"sortBy"` // distance, rating, reviews, jobs, price_low, price_high
	Limit      int     `form:"limit"`
	Offset     int     `form:"offset"`
}

// SearchResult is one provider card in search results.
type SearchResult struct {
	UserID        string           `json:"userId"`
	Name          string           `json:"name"`
	BusinessName  string           `json:"businessName,omitempty"`
	City          string           `json:"city,omitempty"`
	Area          string           `json:"area,omitempty"`
	AverageRating float64          `json:"averageRating"`
	TotalReviews  int              `json:"totalReviews"`
	CompletedJobs int              `json:"completedJobs"`
	Verified      bool             `json:"verified"`
	DistanceKm    float64          `json:"distanceKm,omitempty"`
	Services      []models.Service `json:"services,omitempty"`
}

// PublicProfile is a provider's full public page.
type PublicProfile struct {
	UserID        string              `json:"userId"`
	Name          string              `json:"name"`
	Profile       models.Profile      `json:"profile"`
	Info          models.ProviderInfo `json:"info"`
	Services      []models.Service    `json:"services"`
	RecentReviews []models.Review     `json:"recentReviews"`
}

// ServiceInput carries a service listing create or update.
type ServiceInput struct {
	CategoryID      string           `json:"categoryId" binding:"required"`
	Name            string           `json:"name" binding:"required"`
	Description     string           `json:"description"`
	PriceType       models.PriceType `json:"priceType" binding:"required"`
	PriceMin        float64          `json:"priceMin"`
	PriceMax        float64          `json:"priceMax"`
	DurationMinutes int              `json:"durationMinutes"`
}

// ReviewLister is the slice of the review layer the public profile needs.
type ReviewLister interface {
	ListProviderReviews(providerID string, limit int) ([]models.Review, error)
}

// ProviderService owns provider discovery and service listing management.
type ProviderService interface {
	Search(in SearchInput) ([]SearchResult, error)
	GetPublicProfile(providerID string) (*PublicProfile, error)
	UpdateBusinessInfo(actor models.SessionUser, businessName, description string, experienceYears int) (*models.ProviderInfo, error)

	CreateService(actor models.SessionUser, in ServiceInput) (*models.Service, error)
	UpdateService(actor models.SessionUser, serviceID string, in ServiceInput) (*models.Service, error)
	DeactivateService(actor models.SessionUser, serviceID string) error
	ListOwnServices(actor models.SessionUser) ([]models.Service, error)

	ListCategories() ([]models.Category, error)
}

// DefaultProviderService implements ProviderService.
type DefaultProviderService struct {
	Providers  providerRepo.ProviderInfoRepository
	Users      userRepo.UserRepository
	Services   serviceRepo.ServiceRepository
	Categories serviceRepo.CategoryRepository
	Reviews    ReviewLister
}

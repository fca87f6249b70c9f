package serviceRepo

import "karigar/models"

// CategoryCount pairs a category with the number of services listed under it.
type CategoryCount struct {
	CategoryID string `bson:"_id"`
	Count      int64  `bson:"count"`
}

// ServiceRepository persists provider service listings.
type ServiceRepository interface {
	Create(s *models.Service) error
	Update(s *models.Service) error
	// GetByID returns (nil, nil) when no service with the given id exists.
	GetByID(id string) (*models.Service, error)
	ListByProvider(providerID string, activeOnly bool) ([]models.Service, error)
	ListActiveByProviders(providerIDs []string, categoryID string) ([]models.Service, error)
	Deactivate(id string) error
	CountByCategory(limit int) ([]CategoryCount, error)
}

// CategoryRepository persists the service category tree.
type CategoryRepository interface {
	Create(c *models.Category) error
	// GetByID returns (nil, nil) when no category with the given id exists.
	GetByID(id string) (*models.Category, error)
	ListActive() ([]models.Category, error)
	// EnsureDefaults seeds the built-in categories when the collection is empty.
	EnsureDefaults() error
}

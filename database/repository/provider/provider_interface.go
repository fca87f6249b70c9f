package providerRepo

import "karigar/models"

// ProviderInfoRepository persists per-provider stats and moderation flags.
type ProviderInfoRepository interface {
	Create(info *models.ProviderInfo) error
	// GetByUserID returns (nil, nil) when the user has no provider record.
	GetByUserID(userID string) (*models.ProviderInfo, error)
	GetByUserIDs(userIDs []string) ([]models.ProviderInfo, error)
	ListActive() ([]models.ProviderInfo, error)
	ListAllUserIDs() ([]string, error)
	Update(info *models.ProviderInfo) error
	SetActive(userID string, active bool) error
	SetVerificationStatus(userID string, status models.VerificationStatus) error
	ListTopRated(limit int) ([]models.ProviderInfo, error)
	CountPendingVerifications() (int64, error)
}

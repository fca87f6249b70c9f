package provider

import (
	"strings"

	"karigar/models"
	"karigar/utils"

	"go.uber.org/zap"
)

const profileReviewCount = 10

// GetPublicProfile assembles a provider's public page from their account,
// stats, listings and most recent reviews.
func (s *DefaultProviderService) GetPublicProfile(providerID string) (*PublicProfile, error) {
	info, err := s.Providers.GetByUserID(providerID)
	if err != nil {
		utils.GetLogger().Error("GetPublicProfile: failed to fetch provider", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not load provider")
	}
	if info == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "provider not found")
	}

	u, err := s.Users.GetByID(providerID)
	if err != nil {
		utils.GetLogger().Error("GetPublicProfile: failed to fetch account", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not load provider")
	}
	if u == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "provider not found")
	}

	services, err := s.Services.ListByProvider(providerID, true)
	if err != nil {
		utils.GetLogger().Error("GetPublicProfile: failed to list services", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not load provider services")
	}

	reviews, err := s.Reviews.ListProviderReviews(providerID, profileReviewCount)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		UserID:        providerID,
		Name:          u.Name,
		Profile:       u.Profile,
		Info:          *info,
		Services:      services,
		RecentReviews: reviews,
	}, nil
}

// UpdateBusinessInfo lets a provider edit their own business details.
func (s *DefaultProviderService) UpdateBusinessInfo(actor models.SessionUser, businessName, description string, experienceYears int) (*models.ProviderInfo, error) {
	if actor.Role != models.RoleProvider {
		return nil, utils.NewAppError(utils.CodeForbidden, "only providers can edit business info")
	}
	if experienceYears < 0 {
		return nil, utils.NewAppError(utils.CodeValidation, "experience years cannot be negative")
	}

	info, err := s.Providers.GetByUserID(actor.ID)
	if err != nil {
		utils.GetLogger().Error("UpdateBusinessInfo: failed to fetch provider", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not load provider")
	}
	if info == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "provider not found")
	}

	info.BusinessName = strings.TrimSpace(businessName)
	info.Description = strings.TrimSpace(description)
	info.ExperienceYears = experienceYears
	if err := s.Providers.Update(info); err != nil {
		utils.GetLogger().Error("UpdateBusinessInfo: failed to save provider", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not save business info")
	}
	return info, nil
}

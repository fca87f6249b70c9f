package provider

import (
	"strings"

	"karigar/models"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultProviderService) validateServiceInput(in *ServiceInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return utils.NewAppError(utils.CodeValidation, "service name is required")
	}
	if !in.PriceType.Valid() {
		return utils.NewAppError(utils.CodeValidation, "unknown price type %q", in.PriceType)
	}
	switch in.PriceType {
	case models.PriceFixed:
		if in.PriceMin <= 0 {
			return utils.NewAppError(utils.CodeValidation, "fixed price must be positive")
		}
		in.PriceMax = in.PriceMin
	case models.PriceRange:
		if in.PriceMin <= 0 || in.PriceMax < in.PriceMin {
			return utils.NewAppError(utils.CodeValidation, "invalid price range")
		}
	case models.PriceQuote:
		in.PriceMin, in.PriceMax = 0, 0
	}
	if in.DurationMinutes < 0 {
		return utils.NewAppError(utils.CodeValidation, "duration cannot be negative")
	}

	cat, err := s.Categories.GetByID(in.CategoryID)
	if err != nil {
		utils.GetLogger().Error("failed to fetch category", zap.Error(err))
		return utils.NewAppError(utils.CodeInternal, "could not validate category")
	}
	if cat == nil || !cat.IsActive {
		return utils.NewAppError(utils.CodeValidation, "unknown category")
	}
	return nil
}

// CreateService adds a listing under the acting provider.
func (s *DefaultProviderService) CreateService(actor models.SessionUser, in ServiceInput) (*models.Service, error) {
	if actor.Role != models.RoleProvider {
		return nil, utils.NewAppError(utils.CodeForbidden, "only providers can list services")
	}
	if err := s.validateServiceInput(&in); err != nil {
		return nil, err
	}

	svc := &models.Service{
		ID:              uuid.New().String(),
		ProviderID:      actor.ID,
		CategoryID:      in.CategoryID,
		Name:            in.Name,
		Description:     strings.TrimSpace(in.Description),
		PriceType:       in.PriceType,
		PriceMin:        in.PriceMin,
		PriceMax:        in.PriceMax,
		DurationMinutes: in.DurationMinutes,
		IsActive:        true,
	}
	if err := s.Services.Create(svc); err != nil {
		utils.GetLogger().Error("CreateService: failed to save service", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not create service")
	}
	return svc, nil
}

func (s *DefaultProviderService) ownedService(actor models.SessionUser, serviceID string) (*models.Service, error) {
	svc, err := s.Services.GetByID(serviceID)
	if err != nil {
		utils.GetLogger().Error("failed to fetch service", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not load service")
	}
	if svc == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "service not found")
	}
	if svc.ProviderID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, utils.NewAppError(utils.CodeForbidden, "not your service")
	}
	return svc, nil
}

// UpdateService edits an existing listing owned by the actor.
func (s *DefaultProviderService) UpdateService(actor models.SessionUser, serviceID string, in ServiceInput) (*models.Service, error) {
	svc, err := s.ownedService(actor, serviceID)
	if err != nil {
		return nil, err
	}
	if err := s.validateServiceInput(&in); err != nil {
		return nil, err
	}

	svc.CategoryID = in.CategoryID
	svc.Name = in.Name
	svc.Description = strings.TrimSpace(in.Description)
	svc.PriceType = in.PriceType
	svc.PriceMin = in.PriceMin
	svc.PriceMax = in.PriceMax
	svc.DurationMinutes = in.DurationMinutes
	if err := s.Services.Update(svc); err != nil {
		utils.GetLogger().Error("UpdateService: failed to save service", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not update service")
	}
	return svc, nil
}

// DeactivateService hides a listing from search without deleting it, so past
// bookings keep a valid reference.
func (s *DefaultProviderService) DeactivateService(actor models.SessionUser, serviceID string) error {
	if _, err := s.ownedService(actor, serviceID); err != nil {
		return err
	}
	if err := s.Services.Deactivate(serviceID); err != nil {
		utils.GetLogger().Error("DeactivateService: failed to deactivate", zap.Error(err))
		return utils.NewAppError(utils.CodeInternal, "could not deactivate service")
	}
	return nil
}

// ListOwnServices returns all of the actor's listings, active or not.
func (s *DefaultProviderService) ListOwnServices(actor models.SessionUser) ([]models.Service, error) {
	if actor.Role != models.RoleProvider {
		return nil, utils.NewAppError(utils.CodeForbidden, "only providers have service listings")
	}
	services, err := s.Services.ListByProvider(actor.ID, false)
	if err != nil {
		utils.GetLogger().Error("ListOwnServices: failed to list services", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not list services")
	}
	return services, nil
}

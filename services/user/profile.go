package user

import (
	"strings"

	"karigar/models"
	"karigar/utils"

	"go.uber.org/zap"
)

// GetProfile returns one account by id.
func (s *DefaultUserService) GetProfile(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("GetProfile: failed to fetch user", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not load profile")
	}
	if u == nil {
		return nil, utils.NewAppError(utils.CodeNotFound, "user not found")
	}
	return u, nil
}

// UpdateProfile applies a partial edit to the actor's own account.
func (s *DefaultUserService) UpdateProfile(actor models.SessionUser, in UpdateProfileInput) (*models.User, error) {
	u, err := s.GetProfile(actor.ID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, utils.NewAppError(utils.CodeValidation, "name cannot be empty")
		}
		u.Name = name
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.City != nil {
		u.Profile.City = strings.TrimSpace(*in.City)
	}
	if in.Area != nil {
		u.Profile.Area = strings.TrimSpace(*in.Area)
	}
	if in.Address != nil {
		u.Profile.Address = strings.TrimSpace(*in.Address)
	}
	if in.Latitude != nil {
		if *in.Latitude < -90 || *in.Latitude > 90 {
			return nil, utils.NewAppError(utils.CodeValidation, "latitude out of range")
		}
		u.Profile.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		if *in.Longitude < -180 || *in.Longitude > 180 {
			return nil, utils.NewAppError(utils.CodeValidation, "longitude out of range")
		}
		u.Profile.Longitude = *in.Longitude
	}
	if in.Bio != nil {
		u.Profile.Bio = strings.TrimSpace(*in.Bio)
	}

	if err := s.Repo.Update(u); err != nil {
		utils.GetLogger().Error("UpdateProfile: failed to save user", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not save profile")
	}
	return u, nil
}

// SetProfilePicture stores the uploaded picture's URL on the actor's profile.
func (s *DefaultUserService) SetProfilePicture(actor models.SessionUser, url string) error {
	u, err := s.GetProfile(actor.ID)
	if err != nil {
		return err
	}
	u.Profile.ProfilePictureURL = url
	if err := s.Repo.Update(u); err != nil {
		utils.GetLogger().Error("SetProfilePicture: failed to save user", zap.Error(err))
		return utils.NewAppError(utils.CodeInternal, "could not save profile picture")
	}
	return nil
}

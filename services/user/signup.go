package user

import (
	"strings"
	"time"

	"karigar/models"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

// Signup registers a new customer or provider account. Providers get an
// unverified, active ProviderInfo record so they can start listing services
// while verification is pending.
func (s *DefaultUserService) Signup(in SignupInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role != models.RoleCustomer && in.Role != models.RoleProvider {
		return nil, utils.NewAppError(utils.CodeValidation, "role must be customer or provider")
	}
	if len(in.Password) < 8 {
		return nil, utils.NewAppError(utils.CodeValidation, "password must be at least 8 characters")
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Signup: failed to check email", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not create account")
	}
	if existing != nil {
		return nil, utils.NewAppError(utils.CodeValidation, "an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewAppError(utils.CodeInternal, "could not hash password")
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
	}
	if err := s.Repo.Create(u); err != nil {
		utils.GetLogger().Error("Signup: failed to create user", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not create account")
	}

	if in.Role == models.RoleProvider {
		info := &models.ProviderInfo{
			UserID:             u.ID,
			BusinessName:       strings.TrimSpace(in.BusinessName),
			IsActive:           true,
			VerificationStatus: models.VerificationPending,
		}
		if err := s.Providers.Create(info); err != nil {
			utils.GetLogger().Error("Signup: failed to create provider info",
				zap.String("userID", u.ID), zap.Error(err))
			return nil, utils.NewAppError(utils.CodeInternal, "could not create provider profile")
		}
	}

	utils.GetLogger().Info("account created",
		zap.String("userID", u.ID), zap.String("role", string(u.Role)))
	return s.issueToken(u)
}

func (s *DefaultUserService) issueToken(u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, tokenTTL)
	if err != nil {
		utils.GetLogger().Error("failed to sign token", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not issue token")
	}
	return &AuthResponse{
		ID:    u.ID,
		Token: token,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}, nil
}

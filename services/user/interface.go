package user

import (
	providerRepo "karigar/database/repository/provider"
	userRepo "karigar/database/repository/user"
	"karigar/models"
)

// SignupInput carries a new account registration.
type SignupInput struct {
	Email        string          `json:"email" binding:"required,email"`
	Password     string          `json:"password" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Phone        string          `json:"phone"`
	Role         models.UserRole `json:"role" binding:"required"`
	BusinessName string          `json:"businessName"`
}

// SigninInput carries a login attempt.
type SigninInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful signup or signin.
type AuthResponse struct {
	ID    string          `json:"id"`
	Token string          `json:"token"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  models.UserRole `json:"role"`
}

// UpdateProfileInput carries a partial profile edit. Nil fields stay untouched.
type UpdateProfileInput struct {
	Name      *string  `json:"name"`
	Phone     *string  `json:"phone"`
	City      *string  `json:"city"`
	Area      *string  `json:"area"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Bio       *string  `json:"bio"`
}

// UserService owns account registration, login and profile management.
type UserService interface {
	Signup(in SignupInput) (*AuthResponse, error)
	Signin(in SigninInput) (*AuthResponse, error)
	GetProfile(userID string) (*models.User, error)
	UpdateProfile(actor models.SessionUser, in UpdateProfileInput) (*models.User, error)
	SetProfilePicture(actor models.SessionUser, url string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Providers providerRepo.ProviderInfoRepository
}

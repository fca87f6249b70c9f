package userRepo

import (
	"time"

	"karigar/models"
)

// UserRepository persists platform accounts.
type UserRepository interface {
	Create(user *models.User) error
	// GetByID returns (nil, nil) when no user with the given id exists.
	GetByID(id string) (*models.User, error)
	// GetByEmail returns (nil, nil) when no user with the given email exists.
	GetByEmail(email string) (*models.User, error)
	GetByIDs(ids []string) ([]models.User, error)
	Update(user *models.User) error
	UpdateProfile(id string, profile models.Profile) error
	List(role models.UserRole, search string, limit, skip int) ([]models.User, error)
	Count() (int64, error)
	CountByRole(role models.UserRole) (int64, error)
	CountSince(t time.Time) (int64, error)
}

package models

import "time"

// UserRole distinguishes the three platform roles.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// Profile holds a user's location and contact details.
type Profile struct {
	City              string  `bson:"city,omitempty" json:"city,omitempty"`
	Area              string  `bson:"area,omitempty" json:"area,omitempty"`
	Address           string  `bson:"address,omitempty" json:"address,omitempty"`
	Latitude          float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude         float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Bio               string  `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfilePictureURL string  `bson:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
}

// User represents a platform account (customer, provider or admin).
type User struct {
	ID            string    `bson:"id" json:"id"`
	Email         string    `bson:"email" json:"email"`
	PasswordHash  string    `bson:"passwordHash" json:"-"`
	Role          UserRole  `bson:"role" json:"role"`
	Name          string    `bson:"name" json:"name"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty"`
	EmailVerified bool      `bson:"emailVerified" json:"emailVerified"`
	Profile       Profile   `bson:"profile" json:"profile"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SessionUser is the identity extracted from a verified auth token.
type SessionUser struct {
	ID   string   `json:"id"`
	Role UserRole `json:"role"`
}

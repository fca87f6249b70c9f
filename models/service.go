package models

import "time"

// PriceType describes how a service is priced.
type PriceType string

const (
	PriceFixed PriceType = "fixed"
	PriceRange PriceType = "range"
	PriceQuote PriceType = "quote"
)

// Valid reports whether p is a known price type.
func (p PriceType) Valid() bool {
	switch p {
	case PriceFixed, PriceRange, PriceQuote:
		return true
	}
	return false
}

// Service is one listing a provider offers for booking.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	ProviderID      string    `bson:"providerId" json:"providerId"`
	CategoryID      string    `bson:"categoryId" json:"categoryId"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	PriceType       PriceType `bson:"priceType" json:"priceType"`
	PriceMin        float64   `bson:"priceMin,omitempty" json:"priceMin,omitempty"`
	PriceMax        float64   `bson:"priceMax,omitempty" json:"priceMax,omitempty"`
	DurationMinutes int       `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	IsActive        bool      `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Category groups services (plumbing, tutoring, ...).
type Category struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Slug         string    `bson:"slug" json:"slug"`
	Icon         string    `bson:"icon,omitempty" json:"icon,omitempty"`
	ParentID     string    `bson:"parentId,omitempty" json:"parentId,omitempty"`
	DisplayOrder int       `bson:"displayOrder" json:"displayOrder"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

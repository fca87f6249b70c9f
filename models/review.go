package models

import "time"

// Review is one customer's rating of a completed booking. A booking carries at
// most one review; moderation hides reviews (IsVisible=false) instead of
// deleting them, and only visible reviews count toward provider aggregates.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	ReviewerID string    `bson:"reviewerId" json:"reviewerId"`
	RevieweeID string    `bson:"revieweeId" json:"revieweeId"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	IsVisible  bool      `bson:"isVisible" json:"isVisible"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

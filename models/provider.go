package models

import "time"

// VerificationStatus tracks admin review of a provider's credentials.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Valid reports whether v is a known verification status.
func (v VerificationStatus) Valid() bool {
	switch v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

// ProviderInfo carries a provider's denormalized stats and moderation flags.
// AverageRating and TotalReviews are always recomputed from the full set of
// visible reviews, never maintained incrementally; CompletedJobs increments
// exactly once per booking that reaches completed.
type ProviderInfo struct {
	UserID             string             `bson:"userId" json:"userId"`
	BusinessName       string             `bson:"businessName,omitempty" json:"businessName,omitempty"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	ExperienceYears    int                `bson:"experienceYears,omitempty" json:"experienceYears,omitempty"`
	AverageRating      float64            `bson:"averageRating" json:"averageRating"`
	TotalReviews       int                `bson:"totalReviews" json:"totalReviews"`
	CompletedJobs      int                `bson:"completedJobs" json:"completedJobs"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	VerificationStatus VerificationStatus `bson:"verificationStatus" json:"verificationStatus"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

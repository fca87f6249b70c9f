package providerRepo

import (
	"context"
	"fmt"
	"time"

	"karigar/database"
	"karigar/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderInfoRepo implements ProviderInfoRepository using MongoDB.
type MongoProviderInfoRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderInfoRepo creates a new instance of ProviderInfoRepository using MongoDB.
func NewMongoProviderInfoRepo() ProviderInfoRepository {
	coll := database.DB().Collection("provider_infos")
	repo := &MongoProviderInfoRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create provider_info indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoProviderInfoRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "averageRating", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new provider info document.
func (r *MongoProviderInfoRepo) Create(info *models.ProviderInfo) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	info.CreatedAt = now
	info.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, info); err != nil {
		return fmt.Errorf("failed to create provider info: %w", err)
	}
	return nil
}

// GetByUserID retrieves provider info by the owning user's ID.
func (r *MongoProviderInfoRepo) GetByUserID(userID string) (*models.ProviderInfo, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var info models.ProviderInfo
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&info); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch provider info for user %s: %w", userID, err)
	}
	return &info, nil
}

func (r *MongoProviderInfoRepo) list(filter bson.M, opts *options.FindOptions) ([]models.ProviderInfo, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve provider infos: %w", err)
	}
	defer cursor.Close(ctx)

	var infos []models.ProviderInfo
	for cursor.Next(ctx) {
		var info models.ProviderInfo
		if err := cursor.Decode(&info); err != nil {
			return nil, fmt.Errorf("failed to decode provider info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// GetByUserIDs retrieves provider infos for a set of users.
func (r *MongoProviderInfoRepo) GetByUserIDs(userIDs []string) ([]models.ProviderInfo, error) {
	return r.list(bson.M{"userId": bson.M{"$in": userIDs}}, nil)
}

// ListActive returns every provider currently accepting bookings.
func (r *MongoProviderInfoRepo) ListActive() ([]models.ProviderInfo, error) {
	return r.list(bson.M{"isActive": true}, nil)
}

// ListAllUserIDs returns the user IDs of every registered provider.
func (r *MongoProviderInfoRepo) ListAllUserIDs() ([]string, error) {
	infos, err := r.list(bson.M{}, options.Find().SetProjection(bson.M{"userId": 1}))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.UserID)
	}
	return ids, nil
}

// Update modifies an existing provider info document.
func (r *MongoProviderInfoRepo) Update(info *models.ProviderInfo) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	info.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"userId": info.UserID}, bson.M{"$set": info})
	if err != nil {
		return fmt.Errorf("failed to update provider info for user %s: %w", info.UserID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("provider info for user %s not found", info.UserID)
	}
	return nil
}

func (r *MongoProviderInfoRepo) setField(userID string, set bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update provider info for user %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("provider info for user %s not found", userID)
	}
	return nil
}

// SetActive flips the provider's suspension flag.
func (r *MongoProviderInfoRepo) SetActive(userID string, active bool) error {
	return r.setField(userID, bson.M{"isActive": active})
}

// SetVerificationStatus records the outcome of an admin verification review.
func (r *MongoProviderInfoRepo) SetVerificationStatus(userID string, status models.VerificationStatus) error {
	return r.setField(userID, bson.M{"verificationStatus": status})
}

// ListTopRated returns active reviewed providers ordered by rating.
func (r *MongoProviderInfoRepo) ListTopRated(limit int) ([]models.ProviderInfo, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "averageRating", Value: -1}, {Key: "totalReviews", Value: -1}}).
		SetLimit(int64(limit))
	return r.list(bson.M{"isActive": true, "totalReviews": bson.M{"$gt": 0}}, opts)
}

// CountPendingVerifications returns how many providers await verification.
func (r *MongoProviderInfoRepo) CountPendingVerifications() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{"verificationStatus": models.VerificationPending})
}

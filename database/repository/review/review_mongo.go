package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB. It holds the
// provider_infos collection as well so a review write and the aggregate
// refresh it triggers commit in one transaction.
type MongoReviewRepo struct {
	coll         *mongo.Collection
	providerColl *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	db := database.DB()
	repo := &MongoReviewRepo{
		coll:         db.Collection("reviews"),
		providerColl: db.Collection("provider_infos"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create review indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
// The unique bookingId index is the storage-level guarantee that a booking
// carries at most one review.
func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "revieweeId", Value: 1}, {Key: "isVisible", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a review by its unique ID.
func (r *MongoReviewRepo) GetByID(id string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rev models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rev); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id, err)
	}
	return &rev, nil
}

// GetByBookingID retrieves the review attached to a booking, if any.
func (r *MongoReviewRepo) GetByBookingID(bookingID string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rev models.Review
	if err := r.coll.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&rev); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review for booking %s: %w", bookingID, err)
	}
	return &rev, nil
}

func (r *MongoReviewRepo) listCtx(ctx context.Context, filter bson.M, limit int) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	for cursor.Next(ctx) {
		var rev models.Review
		if err := cursor.Decode(&rev); err != nil {
			return nil, fmt.Errorf("failed to decode review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, nil
}

// ListVisibleByReviewee returns the visible reviews written about a provider.
func (r *MongoReviewRepo) ListVisibleByReviewee(revieweeID string, limit int) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	return r.listCtx(ctx, bson.M{"revieweeId": revieweeID, "isVisible": true}, limit)
}

// ListByReviewee returns reviews about a provider, optionally including hidden ones.
func (r *MongoReviewRepo) ListByReviewee(revieweeID string, includeHidden bool, limit int) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"revieweeId": revieweeID}
	if !includeHidden {
		filter["isVisible"] = true
	}
	return r.listCtx(ctx, filter, limit)
}

// ListAll returns reviews platform-wide, optionally including hidden ones.
func (r *MongoReviewRepo) ListAll(includeHidden bool, limit int) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if !includeHidden {
		filter["isVisible"] = true
	}
	return r.listCtx(ctx, filter, limit)
}

// refreshAggregates recomputes and stores the reviewee's aggregates using the
// visible reviews as seen by sc.
func (r *MongoReviewRepo) refreshAggregates(sc mongo.SessionContext, revieweeID string, agg AggregateFn) error {
	visible, err := r.listCtx(sc, bson.M{"revieweeId": revieweeID, "isVisible": true}, 0)
	if err != nil {
		return err
	}
	avg, total := agg(visible)
	if _, err := r.providerColl.UpdateOne(sc,
		bson.M{"userId": revieweeID},
		bson.M{"$set": bson.M{"averageRating": avg, "totalReviews": total, "updatedAt": time.Now()}},
	); err != nil {
		return fmt.Errorf("failed to update provider aggregates: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) withTransaction(fn func(sc mongo.SessionContext) error) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// CreateWithAggregates inserts the review and refreshes the reviewee's
// aggregates in one transaction.
func (r *MongoReviewRepo) CreateWithAggregates(rev *models.Review, agg AggregateFn) error {
	now := time.Now()
	rev.CreatedAt = now
	rev.UpdatedAt = now

	return r.withTransaction(func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, rev); err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return r.refreshAggregates(sc, rev.RevieweeID, agg)
	})
}

// UpdateWithAggregates saves the review, refreshing aggregates when asked.
func (r *MongoReviewRepo) UpdateWithAggregates(rev *models.Review, recompute bool, agg AggregateFn) error {
	rev.UpdatedAt = time.Now()

	return r.withTransaction(func(sc mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sc, bson.M{"id": rev.ID}, bson.M{"$set": rev})
		if err != nil {
			return fmt.Errorf("failed to update review with id %s: %w", rev.ID, err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("review with id %s not found", rev.ID)
		}
		if !recompute {
			return nil
		}
		return r.refreshAggregates(sc, rev.RevieweeID, agg)
	})
}

// SetAggregates writes precomputed aggregates for a provider.
func (r *MongoReviewRepo) SetAggregates(revieweeID string, averageRating float64, totalReviews int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.providerColl.UpdateOne(ctx,
		bson.M{"userId": revieweeID},
		bson.M{"$set": bson.M{"averageRating": averageRating, "totalReviews": totalReviews, "updatedAt": time.Now()}},
	); err != nil {
		return fmt.Errorf("failed to set provider aggregates: %w", err)
	}
	return nil
}

// CountVisible returns the number of visible reviews platform-wide.
func (r *MongoReviewRepo) CountVisible() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{"isVisible": true})
}

// CountVisibleSince returns the number of visible reviews created at or after t.
func (r *MongoReviewRepo) CountVisibleSince(t time.Time) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{"isVisible": true, "createdAt": bson.M{"$gte": t}})
}

package serviceRepo

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

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a new instance of ServiceRepository using MongoDB.
func NewMongoServiceRepo() ServiceRepository {
	coll := database.DB().Collection("services")
	repo := &MongoServiceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create service indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoServiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "categoryId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new service document.
func (r *MongoServiceRepo) Create(s *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// Update modifies an existing service document.
func (r *MongoServiceRepo) Update(s *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	s.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": s.ID}, bson.M{"$set": s})
	if err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", s.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("service with id %s not found", s.ID)
	}
	return nil
}

// GetByID retrieves a service by its unique ID.
func (r *MongoServiceRepo) GetByID(id string) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var s models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return &s, nil
}

func (r *MongoServiceRepo) list(filter bson.M) ([]models.Service, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	for cursor.Next(ctx) {
		var s models.Service
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		services = append(services, s)
	}
	return services, nil
}

// ListByProvider returns a provider's service listings.
func (r *MongoServiceRepo) ListByProvider(providerID string, activeOnly bool) ([]models.Service, error) {
	filter := bson.M{"providerId": providerID}
	if activeOnly {
		filter["isActive"] = true
	}
	return r.list(filter)
}

// ListActiveByProviders returns active services for a set of providers,
// optionally restricted to one category.
func (r *MongoServiceRepo) ListActiveByProviders(providerIDs []string, categoryID string) ([]models.Service, error) {
	filter := bson.M{"providerId": bson.M{"$in": providerIDs}, "isActive": true}
	if categoryID != "" {
		filter["categoryId"] = categoryID
	}
	return r.list(filter)
}

// Deactivate soft-deletes a service listing.
func (r *MongoServiceRepo) Deactivate(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to deactivate service with id %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("service with id %s not found", id)
	}
	return nil
}

// CountByCategory returns service counts grouped by category, most popular first.
func (r *MongoServiceRepo) CountByCategory(limit int) ([]CategoryCount, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$categoryId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to group services by category: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []CategoryCount
	for cursor.Next(ctx) {
		var c CategoryCount
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode category count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, nil
}

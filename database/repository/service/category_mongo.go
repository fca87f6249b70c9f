package serviceRepo

import (
	"fmt"
	"time"

	"karigar/database"
	"karigar/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCategoryRepo implements CategoryRepository using MongoDB.
type MongoCategoryRepo struct {
	coll *mongo.Collection
}

// NewMongoCategoryRepo creates a new instance of CategoryRepository using MongoDB.
func NewMongoCategoryRepo() CategoryRepository {
	coll := database.DB().Collection("categories")
	repo := &MongoCategoryRepo{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		fmt.Printf("failed to create category indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new category document.
func (r *MongoCategoryRepo) Create(c *models.Category) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	c.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by its unique ID.
func (r *MongoCategoryRepo) GetByID(id string) (*models.Category, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var c models.Category
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch category with id %s: %w", id, err)
	}
	return &c, nil
}

// ListActive returns active categories in display order.
func (r *MongoCategoryRepo) ListActive() ([]models.Category, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "displayOrder", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	for cursor.Next(ctx) {
		var c models.Category
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, nil
}

// defaultCategories is the built-in category set seeded on first start.
var defaultCategories = []struct {
	Name string
	Slug string
	Icon string
}{
	{"Plumbing", "plumbing", "🔧"},
	{"Electrical", "electrical", "⚡"},
	{"Cleaning", "cleaning", "🧹"},
	{"Tutoring", "tutoring", "📚"},
	{"Car Mechanic", "car-mechanic", "🚗"},
	{"Carpentry", "carpentry", "🪚"},
	{"Painting", "painting", "🎨"},
	{"Gardening", "gardening", "🌱"},
	{"Appliance Repair", "appliance-repair", "🔌"},
	{"Moving & Packing", "moving-packing", "📦"},
	{"Beauty & Salon", "beauty-salon", "💇"},
	{"Photography", "photography", "📷"},
	{"Catering", "catering", "🍽️"},
	{"Fitness Training", "fitness-training", "💪"},
	{"Pet Care", "pet-care", "🐕"},
}

// EnsureDefaults seeds the built-in categories when the collection is empty.
func (r *MongoCategoryRepo) EnsureDefaults() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if n > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(defaultCategories))
	now := time.Now()
	for i, dc := range defaultCategories {
		docs = append(docs, models.Category{
			ID:           uuid.New().String(),
			Name:         dc.Name,
			Slug:         dc.Slug,
			Icon:         dc.Icon,
			DisplayOrder: i,
			IsActive:     true,
			CreatedAt:    now,
		})
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}

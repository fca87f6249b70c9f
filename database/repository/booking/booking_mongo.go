package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB. It also holds
// the provider_infos collection so that completing a booking and bumping the
// provider's job counter commit in one transaction.
type MongoBookingRepo struct {
	coll         *mongo.Collection
	providerColl *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	repo := &MongoBookingRepo{
		coll:         db.Collection("bookings"),
		providerColl: db.Collection("provider_infos"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "requestedDate", Value: -1}}},
		{Keys: bson.D{
			{Key: "providerId", Value: 1},
			{Key: "requestedDate", Value: 1},
			{Key: "requestedTime", Value: 1},
			{Key: "status", Value: 1},
		}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(b *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "requestedDate", Value: -1}, {Key: "requestedTime", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// ListByCustomer returns a customer's bookings, optionally filtered by status.
func (r *MongoBookingRepo) ListByCustomer(customerID string, status models.BookingStatus) ([]models.Booking, error) {
	filter := bson.M{"customerId": customerID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter)
}

// ListByProvider returns a provider's bookings, optionally filtered by status.
func (r *MongoBookingRepo) ListByProvider(providerID string, status models.BookingStatus) ([]models.Booking, error) {
	filter := bson.M{"providerId": providerID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter)
}

// ListAll returns every booking, optionally filtered by status.
func (r *MongoBookingRepo) ListAll(status models.BookingStatus) ([]models.Booking, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter)
}

// FindActiveBySlot returns the booking occupying the exact slot, if any.
func (r *MongoBookingRepo) FindActiveBySlot(providerID, date, timeOfDay, excludeID string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"providerId":    providerID,
		"requestedDate": date,
		"requestedTime": timeOfDay,
		"status":        bson.M{"$in": models.ActiveBookingStatuses},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	var b models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check slot for provider %s: %w", providerID, err)
	}
	return &b, nil
}

// updateIf applies set to the booking only while its status equals expected.
// The conditional filter is what makes concurrent transitions safe: the loser
// of a race matches zero documents.
func (r *MongoBookingRepo) updateIf(ctx context.Context, id string, expected models.BookingStatus, set bson.M) (bool, error) {
	set["updatedAt"] = time.Now()
	filter := bson.M{"id": id, "status": expected}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// TransitionIf performs a plain status change guarded by the expected status.
func (r *MongoBookingRepo) TransitionIf(id string, expected, to models.BookingStatus) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.updateIf(ctx, id, expected, bson.M{"status": to})
}

// ConfirmIf moves the booking to confirmed and snapshots the confirmed slot.
func (r *MongoBookingRepo) ConfirmIf(id string, expected models.BookingStatus, confirmedDate, confirmedTime string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.updateIf(ctx, id, expected, bson.M{
		"status":        models.BookingConfirmed,
		"confirmedDate": confirmedDate,
		"confirmedTime": confirmedTime,
	})
}

// CancelIf moves the booking to cancelled and records who cancelled and why.
func (r *MongoBookingRepo) CancelIf(id string, expected models.BookingStatus, reason, cancelledByID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.updateIf(ctx, id, expected, bson.M{
		"status":             models.BookingCancelled,
		"cancellationReason": reason,
		"cancelledById":      cancelledByID,
	})
}

// RescheduleIf overwrites the requested slot and resets the booking to
// requested so it re-enters the approval flow.
func (r *MongoBookingRepo) RescheduleIf(id string, expected models.BookingStatus, newDate, newTime, instructions string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.updateIf(ctx, id, expected, bson.M{
		"status":              models.BookingRequested,
		"requestedDate":       newDate,
		"requestedTime":       newTime,
		"specialInstructions": instructions,
	})
}

// CompleteAndCountJob marks the booking completed and increments the
// provider's completedJobs counter inside a single transaction, so a completed
// booking can never be observed with a stale job count.
func (r *MongoBookingRepo) CompleteAndCountJob(id string, expected models.BookingStatus) (bool, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	booking, err := r.GetByID(id)
	if err != nil {
		return false, err
	}
	if booking == nil {
		return false, nil
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return false, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	matched := false
	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sc,
			bson.M{"id": id, "status": expected},
			bson.M{"$set": bson.M{"status": models.BookingCompleted, "updatedAt": time.Now()}},
		)
		if err != nil {
			return fmt.Errorf("complete booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			// Lost the race; nothing to count.
			return nil
		}
		matched = true

		if _, err := r.providerColl.UpdateOne(sc,
			bson.M{"userId": booking.ProviderID},
			bson.M{"$inc": bson.M{"completedJobs": 1}},
		); err != nil {
			return fmt.Errorf("increment completedJobs failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return false, fmt.Errorf("completion transaction failed: %w", err)
	}

	return matched, nil
}

// Count returns the total number of bookings.
func (r *MongoBookingRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

// CountSince returns the number of bookings created at or after t.
func (r *MongoBookingRepo) CountSince(t time.Time) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": t}})
}

// CountByStatus returns booking counts grouped by status.
func (r *MongoBookingRepo) CountByStatus() (map[models.BookingStatus]int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to group bookings by status: %w", err)
	}
	defer cursor.Close(ctx)

	out := make(map[models.BookingStatus]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    models.BookingStatus `bson:"_id"`
			Count int64                `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode status count: %w", err)
		}
		out[row.ID] = row.Count
	}
	return out, nil
}

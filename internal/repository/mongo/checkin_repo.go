package mongo

import (
	"context"
	"errors"
	"time"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const checkInCollectionName = "check_ins"

// mongoCheckInRepository implements repository.CheckInRepository
type mongoCheckInRepository struct {
	collection *mongo.Collection
}

// NewMongoCheckInRepository creates a new CheckIn repository backed by MongoDB.
func NewMongoCheckInRepository(db *mongo.Database) repository.CheckInRepository {
	return &mongoCheckInRepository{
		collection: db.Collection(checkInCollectionName),
	}
}

// Upsert inserts or replaces the check-in for (userId, date). Date is
// truncated to midnight UTC so a second check-in on the same day overwrites
// the first.
func (r *mongoCheckInRepository) Upsert(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error) {
	if checkIn.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("user ID is required")
	}

	day := truncateToDayUTC(checkIn.Date)
	now := time.Now().UTC()

	filter := bson.M{"userId": checkIn.UserID, "date": day}
	update := bson.M{
		"$set": bson.M{
			"mood":      checkIn.Mood,
			"energy":    checkIn.Energy,
			"soreness":  checkIn.Soreness,
			"notes":     checkIn.Notes,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"userId":    checkIn.UserID,
			"date":      day,
			"createdAt": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if result.UpsertedID != nil {
		if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
			return id, nil
		}
	}

	// Updated an existing document; fetch its id.
	existing, err := r.GetByUserAndDate(ctx, checkIn.UserID, day)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return existing.ID, nil
}

// GetByUserAndDate retrieves the check-in for one calendar day.
func (r *mongoCheckInRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.CheckIn, error) {
	var checkIn domain.CheckIn
	filter := bson.M{"userId": userID, "date": truncateToDayUTC(date)}

	err := r.collection.FindOne(ctx, filter).Decode(&checkIn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &checkIn, nil
}

// GetRecentByUserID retrieves check-ins on or after `since`, oldest first.
func (r *mongoCheckInRepository) GetRecentByUserID(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.CheckIn, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": truncateToDayUTC(since)},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var checkIns []domain.CheckIn
	if err = cursor.All(ctx, &checkIns); err != nil {
		return nil, err
	}
	return checkIns, nil
}

func truncateToDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EnsureCheckInIndexes creates necessary indexes for the check_ins collection.
func EnsureCheckInIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

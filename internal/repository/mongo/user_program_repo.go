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

const userProgramCollectionName = "user_programs"

// mongoUserProgramRepository implements repository.UserProgramRepository
type mongoUserProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoUserProgramRepository creates a new UserProgram repository backed by MongoDB.
func NewMongoUserProgramRepository(db *mongo.Database) repository.UserProgramRepository {
	return &mongoUserProgramRepository{
		collection: db.Collection(userProgramCollectionName),
	}
}

// Create inserts a new enrollment.
func (r *mongoUserProgramRepository) Create(ctx context.Context, program *domain.UserProgram) (primitive.ObjectID, error) {
	if program.UserID == primitive.NilObjectID || program.TemplateID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("user ID and template ID are required")
	}

	program.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now
	if program.CompletedDays == nil {
		program.CompletedDays = map[string][]int{}
	}

	result, err := r.collection.InsertOne(ctx, program)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves an enrollment by its ID.
func (r *mongoUserProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserProgram, error) {
	var program domain.UserProgram
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// GetActiveByUserID retrieves the user's currently active enrollment.
func (r *mongoUserProgramRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgram, error) {
	var program domain.UserProgram
	filter := bson.M{"userId": userID, "status": domain.ProgramActive}

	err := r.collection.FindOne(ctx, filter).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// GetByUserID retrieves all of the user's enrollments, newest first.
func (r *mongoUserProgramRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.UserProgram, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var programs []domain.UserProgram
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// Update replaces the mutable enrollment fields.
func (r *mongoUserProgramRepository) Update(ctx context.Context, program *domain.UserProgram) error {
	if program.ID == primitive.NilObjectID {
		return errors.New("program ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"status":            program.Status,
			"endDate":           program.EndDate,
			"currentWeek":       program.CurrentWeek,
			"completedWorkouts": program.CompletedWorkouts,
			"completedDays":     program.CompletedDays,
			"updatedAt":         time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": program.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserProgramIndexes creates necessary indexes for the user_programs collection.
func EnsureUserProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

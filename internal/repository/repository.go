package repository

import (
	"context"
	"time"

	"fitstride/fitness-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository defines the interface for the shared exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// GetByName matches the catalog identity: exact name, ignoring case.
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	SetFavorite(ctx context.Context, id primitive.ObjectID, favorite bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TemplateRepository defines the interface for program template reference data.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.ProgramTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error)
	List(ctx context.Context) ([]domain.ProgramTemplate, error)
}

// UserProgramRepository defines the interface for enrollments.
type UserProgramRepository interface {
	Create(ctx context.Context, program *domain.UserProgram) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserProgram, error)
	// GetActiveByUserID returns the single active enrollment for the user,
	// or ErrNotFound.
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgram, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.UserProgram, error)
	Update(ctx context.Context, program *domain.UserProgram) error
}

// WorkoutRepository defines the interface for workout instances.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	CreateMany(ctx context.Context, workouts []domain.Workout) ([]primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	// ClearActive drops the isActive flag on every workout of the user.
	// Combined with a single SetActive it enforces the one-active-workout
	// invariant.
	ClearActive(ctx context.Context, userID primitive.ObjectID) error
	SetActive(ctx context.Context, id primitive.ObjectID) error
}

// SessionRepository defines the interface for workout session records.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	// GetInProgressByUserID returns the user's in-progress or paused
	// session, or ErrNotFound.
	GetInProgressByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, session *domain.WorkoutSession) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountCompletedByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error)
	// CompletionDates returns the completion timestamps of the user's
	// completed sessions, for streak derivation.
	CompletionDates(ctx context.Context, userID primitive.ObjectID) ([]time.Time, error)
}

// CheckInRepository defines the interface for daily wellness check-ins.
type CheckInRepository interface {
	// Upsert inserts or replaces the check-in for (userId, date).
	Upsert(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error)
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.CheckIn, error)
	GetRecentByUserID(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.CheckIn, error)
}

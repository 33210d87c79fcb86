package service

import (
	"context"
	"errors"
	"time"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutAccessDenied = errors.New("access denied to this workout")
	ErrWorkoutDeleted      = errors.New("workout has been deleted")
)

// WorkoutService manages workout instances and owns the single-active-workout
// invariant: it is the only writer of the isActive flag.
type WorkoutService interface {
	CreateCustomWorkout(ctx context.Context, userID primitive.ObjectID, name, description string, estimatedMinutes int, difficulty string, goal domain.Goal, specs []domain.ExerciseSpec) (*domain.Workout, error)
	GetWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	ListProgramWorkouts(ctx context.Context, programID primitive.ObjectID) ([]domain.Workout, error)

	// SetActiveWorkout atomically moves the active flag: it clears every
	// prior flag for the user before raising the new one.
	SetActiveWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
	// DeactivateAll clears the active flag without activating anything.
	DeactivateAll(ctx context.Context, userID primitive.ObjectID) error

	// DeleteWorkout is a soft delete: the record stays for session history.
	DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	factory     *workoutFactory
	logger      *zap.Logger
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository, logger *zap.Logger) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		factory:     newWorkoutFactory(exerciseRepo, logger),
		logger:      logger,
	}
}

// CreateCustomWorkout builds an ad-hoc standalone workout. Exercise specs go
// through the same catalog resolution (and auto-heal) as program generation.
func (s *workoutService) CreateCustomWorkout(
	ctx context.Context,
	userID primitive.ObjectID,
	name, description string,
	estimatedMinutes int,
	difficulty string,
	goal domain.Goal,
	specs []domain.ExerciseSpec,
) (*domain.Workout, error) {
	if userID == primitive.NilObjectID || name == "" {
		return nil, errors.New("user ID and workout name are required")
	}

	def := &domain.WorkoutDefinition{
		Name:             name,
		EstimatedMinutes: estimatedMinutes,
		Exercises:        specs,
	}
	pc := programContext{Difficulty: difficulty, Goal: goal}

	workout, err := s.factory.Build(ctx, def, pc, 0, 0, 0, time.Time{})
	if err != nil {
		return nil, err
	}
	workout.UserID = userID
	workout.Description = description
	workout.CreationType = domain.CreationCustom
	workout.WorkoutType = domain.WorkoutStandalone
	workout.ScheduledDate = nil
	workout.SourceProgramID = nil
	workout.SourceProgramName = ""
	workout.TotalWeeks, workout.TotalDays, workout.TotalSessions = 0, 0, 0

	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutAccessDenied
	}
	return workout, nil
}

func (s *workoutService) ListWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	return s.workoutRepo.GetByUserID(ctx, userID)
}

func (s *workoutService) ListProgramWorkouts(ctx context.Context, programID primitive.ObjectID) ([]domain.Workout, error) {
	return s.workoutRepo.GetByProgramID(ctx, programID)
}

// SetActiveWorkout enforces the invariant procedurally: clear, then set.
// Both writes go through this method and nowhere else.
func (s *workoutService) SetActiveWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.GetWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	if workout.Status == domain.WorkoutDeleted {
		return nil, ErrWorkoutDeleted
	}

	if err := s.workoutRepo.ClearActive(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.workoutRepo.SetActive(ctx, workoutID); err != nil {
		return nil, err
	}

	workout.IsActive = true
	workout.Status = domain.WorkoutActive
	return workout, nil
}

func (s *workoutService) DeactivateAll(ctx context.Context, userID primitive.ObjectID) error {
	return s.workoutRepo.ClearActive(ctx, userID)
}

// DeleteWorkout soft-deletes: status flips to deleted and the active flag
// drops, but session history keeps pointing at a real record.
func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	workout, err := s.GetWorkout(ctx, userID, workoutID)
	if err != nil {
		return err
	}

	workout.Status = domain.WorkoutDeleted
	workout.IsActive = false
	return s.workoutRepo.Update(ctx, workout)
}

package service

import (
	"context"
	"errors"
	"time"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/program"
	"fitstride/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Muscle group assigned to exercises synthesized on a catalog miss.
const defaultMuscleGroup = "Full Body"

// programContext carries the template-level stamps shared by every workout
// generated from one enrollment.
type programContext struct {
	ProgramID     primitive.ObjectID
	ProgramName   string
	Category      string
	Difficulty    string
	Goal          domain.Goal
	TotalWeeks    int
	TotalDays     int
	TotalSessions int
}

// workoutFactory builds concrete Workout records from workout definitions,
// resolving each exercise spec against the shared catalog.
type workoutFactory struct {
	exerciseRepo repository.ExerciseRepository
	logger       *zap.Logger
}

func newWorkoutFactory(exerciseRepo repository.ExerciseRepository, logger *zap.Logger) *workoutFactory {
	return &workoutFactory{exerciseRepo: exerciseRepo, logger: logger}
}

// Build creates one Workout stamped with all program-tracking fields.
// Exercises keep the definition's order (0-based). Generated workouts are
// never active: the user must explicitly begin a session.
func (f *workoutFactory) Build(
	ctx context.Context,
	def *domain.WorkoutDefinition,
	pc programContext,
	weekNumber, dayNumber, sessionNumber int,
	scheduledDate time.Time,
) (*domain.Workout, error) {
	exercises := make([]domain.WorkoutExercise, 0, len(def.Exercises))
	for i, spec := range def.Exercises {
		exercise, err := f.resolveExercise(ctx, spec.Name, pc)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, domain.WorkoutExercise{
			Order:        i,
			ExerciseID:   exercise.ID,
			ExerciseName: exercise.Name,
			TargetSets:   spec.TargetSets,
			TargetReps:   program.ParseTargetReps(spec.TargetReps),
			TargetWeight: program.ParseTargetWeight(spec.TargetWeight),
			RestSeconds:  spec.RestSeconds,
			Notes:        spec.Notes,
		})
	}

	date := scheduledDate
	return &domain.Workout{
		Name:             def.Name,
		EstimatedMinutes: def.EstimatedMinutes,
		Difficulty:       pc.Difficulty,
		Goal:             pc.Goal,
		CreationType:     domain.CreationPreset,
		WorkoutType:      domain.WorkoutProgramSession,
		Status:           domain.WorkoutScheduled,
		IsActive:         false,
		ScheduledDate:    &date,
		Exercises:        exercises,

		SourceProgramID:      &pc.ProgramID,
		SourceProgramName:    pc.ProgramName,
		ProgramWeekNumber:    weekNumber,
		ProgramDayNumber:     dayNumber,
		ProgramSessionNumber: sessionNumber,
		TotalWeeks:           pc.TotalWeeks,
		TotalDays:            pc.TotalDays,
		TotalSessions:        pc.TotalSessions,
	}, nil
}

// resolveExercise looks the name up case-insensitively and synthesizes a
// minimal catalog entry on a miss. The auto-heal is deliberate: a program
// naming an unknown exercise should enroll, not fail.
func (f *workoutFactory) resolveExercise(ctx context.Context, name string, pc programContext) (*domain.Exercise, error) {
	exercise, err := f.exerciseRepo.GetByName(ctx, name)
	if err == nil {
		return exercise, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	synthesized := &domain.Exercise{
		Name:        name,
		MuscleGroup: defaultMuscleGroup,
		Category:    pc.Category,
		Difficulty:  pc.Difficulty,
	}
	id, err := f.exerciseRepo.Create(ctx, synthesized)
	if err != nil {
		return nil, err
	}
	synthesized.ID = id

	f.logger.Info("synthesized missing catalog exercise",
		zap.String("name", name),
		zap.String("program", pc.ProgramName))
	return synthesized, nil
}

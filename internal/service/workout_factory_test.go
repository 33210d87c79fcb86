package service

import (
	"context"
	"testing"
	"time"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestFactorySynthesizesMissingExercise(t *testing.T) {
	exerciseRepo := new(mockExerciseRepo)
	factory := newWorkoutFactory(exerciseRepo, zap.NewNop())

	exerciseRepo.On("GetByName", mock.Anything, "Bulgarian Split Squat").Return(nil, repository.ErrNotFound)
	synthesizedID := primitive.NewObjectID()
	exerciseRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Exercise")).
		Run(func(args mock.Arguments) {
			created := args.Get(1).(*domain.Exercise)
			assert.Equal(t, "Bulgarian Split Squat", created.Name)
			assert.Equal(t, "Full Body", created.MuscleGroup)
			assert.Equal(t, "strength", created.Category)
		}).
		Return(synthesizedID, nil)

	def := &domain.WorkoutDefinition{
		Name: "Leg Day",
		Exercises: []domain.ExerciseSpec{
			{Name: "Bulgarian Split Squat", TargetSets: 3, TargetReps: "8-12", TargetWeight: "Bodyweight"},
		},
	}
	pc := programContext{
		ProgramID:   primitive.NewObjectID(),
		ProgramName: "Hypertrophy Block",
		Category:    "strength",
		Difficulty:  "intermediate",
		Goal:        domain.GoalStrength,
	}

	workout, err := factory.Build(context.Background(), def, pc, 1, 1, 1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, workout.Exercises, 1)
	we := workout.Exercises[0]
	assert.Equal(t, synthesizedID, we.ExerciseID)
	assert.Equal(t, 8, we.TargetReps, "range prescription yields its lower bound")
	assert.Nil(t, we.TargetWeight, "bodyweight means absent, not zero")
}

func TestFactoryStampsProgramTracking(t *testing.T) {
	exerciseRepo := new(mockExerciseRepo)
	factory := newWorkoutFactory(exerciseRepo, zap.NewNop())

	bench := catalogExercise("Bench Press")
	exerciseRepo.On("GetByName", mock.Anything, "Bench Press").Return(bench, nil)

	def := &domain.WorkoutDefinition{
		Name:             "Push",
		EstimatedMinutes: 50,
		Exercises: []domain.ExerciseSpec{
			{Name: "Bench Press", TargetSets: 4, TargetReps: "AMRAP", TargetWeight: "185 lbs", RestSeconds: 120},
		},
	}
	pc := programContext{
		ProgramID:     primitive.NewObjectID(),
		ProgramName:   "Push Pull Legs",
		Difficulty:    "advanced",
		Goal:          domain.GoalStrength,
		TotalWeeks:    8,
		TotalDays:     6,
		TotalSessions: 48,
	}
	date := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	workout, err := factory.Build(context.Background(), def, pc, 3, 2, 14, date)
	require.NoError(t, err)

	assert.Equal(t, domain.CreationPreset, workout.CreationType)
	assert.Equal(t, domain.WorkoutProgramSession, workout.WorkoutType)
	assert.Equal(t, domain.WorkoutScheduled, workout.Status)
	assert.False(t, workout.IsActive)
	require.NotNil(t, workout.ScheduledDate)
	assert.Equal(t, date, *workout.ScheduledDate)

	assert.Equal(t, 3, workout.ProgramWeekNumber)
	assert.Equal(t, 2, workout.ProgramDayNumber)
	assert.Equal(t, 14, workout.ProgramSessionNumber)
	assert.Equal(t, 48, workout.TotalSessions)
	assert.Equal(t, "Push Pull Legs", workout.SourceProgramName)

	we := workout.Exercises[0]
	assert.Equal(t, bench.ID, we.ExerciseID)
	assert.Equal(t, "Bench Press", we.ExerciseName)
	assert.Equal(t, 10, we.TargetReps, "unparseable prescription falls back to default")
	require.NotNil(t, we.TargetWeight)
	assert.Equal(t, 185.0, *we.TargetWeight)
	assert.Equal(t, 120, we.RestSeconds)
}

func TestFactoryPropagatesCatalogFailure(t *testing.T) {
	exerciseRepo := new(mockExerciseRepo)
	factory := newWorkoutFactory(exerciseRepo, zap.NewNop())

	exerciseRepo.On("GetByName", mock.Anything, "Squat").Return(nil, repository.ErrUpdateFailed)

	def := &domain.WorkoutDefinition{
		Name:      "Legs",
		Exercises: []domain.ExerciseSpec{{Name: "Squat", TargetSets: 5, TargetReps: "5"}},
	}

	_, err := factory.Build(context.Background(), def, programContext{}, 1, 1, 1, time.Time{})
	assert.ErrorIs(t, err, repository.ErrUpdateFailed)
	exerciseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

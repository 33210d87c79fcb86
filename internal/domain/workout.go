package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreationType distinguishes catalog-generated workouts from user-authored ones.
type CreationType string

const (
	CreationPreset CreationType = "preset"
	CreationCustom CreationType = "custom"
)

// WorkoutType distinguishes ad-hoc workouts from program-generated sessions.
type WorkoutType string

const (
	WorkoutStandalone     WorkoutType = "standalone"
	WorkoutProgramSession WorkoutType = "programSession"
)

// WorkoutStatus tracks the lifecycle of a workout instance.
type WorkoutStatus string

const (
	WorkoutScheduled WorkoutStatus = "scheduled"
	WorkoutActive    WorkoutStatus = "active"
	WorkoutCompleted WorkoutStatus = "completed"
	WorkoutDeleted   WorkoutStatus = "deleted"
)

// WorkoutExercise is one exercise slot inside a Workout, owned exclusively by
// it. Order is 0-based and unique within the workout. The Exercise itself is
// a shared catalog entity, referenced by ID.
type WorkoutExercise struct {
	Order        int                `bson:"order" json:"order"`
	ExerciseID   primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	ExerciseName string             `bson:"exerciseName" json:"exerciseName"` // denormalized for display
	TargetSets   int                `bson:"targetSets" json:"targetSets"`
	TargetReps   int                `bson:"targetReps" json:"targetReps"`
	TargetWeight *float64           `bson:"targetWeight,omitempty" json:"targetWeight,omitempty"` // nil means "no numeric target" (bodyweight etc.)
	RestSeconds  int                `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Workout is a concrete, schedulable unit of exercise: the plan, as opposed
// to a WorkoutSession, which is an attempt at executing it.
//
// Invariant: at most one Workout per user has IsActive == true. Starting a
// workout must first deactivate any currently active one (see
// WorkoutService.SetActiveWorkout).
type Workout struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	Name             string             `bson:"name" json:"name"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	EstimatedMinutes int                `bson:"estimatedMinutes,omitempty" json:"estimatedMinutes,omitempty"`
	Difficulty       string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Goal             Goal               `bson:"goal,omitempty" json:"goal,omitempty"`
	CreationType     CreationType       `bson:"creationType" json:"creationType"`
	WorkoutType      WorkoutType        `bson:"workoutType" json:"workoutType"`
	Status           WorkoutStatus      `bson:"status" json:"status"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	ScheduledDate    *time.Time         `bson:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`
	CompletedAt      *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	Exercises []WorkoutExercise `bson:"exercises" json:"exercises"`

	// Program tracking, set only when WorkoutType == WorkoutProgramSession.
	SourceProgramID      *primitive.ObjectID `bson:"sourceProgramId,omitempty" json:"sourceProgramId,omitempty"`
	SourceProgramName    string              `bson:"sourceProgramName,omitempty" json:"sourceProgramName,omitempty"`
	ProgramWeekNumber    int                 `bson:"programWeekNumber,omitempty" json:"programWeekNumber,omitempty"`
	ProgramDayNumber     int                 `bson:"programDayNumber,omitempty" json:"programDayNumber,omitempty"`
	ProgramSessionNumber int                 `bson:"programSessionNumber,omitempty" json:"programSessionNumber,omitempty"`
	TotalWeeks           int                 `bson:"totalWeeks,omitempty" json:"totalWeeks,omitempty"`
	TotalDays            int                 `bson:"totalDays,omitempty" json:"totalDays,omitempty"`
	TotalSessions        int                 `bson:"totalSessions,omitempty" json:"totalSessions,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

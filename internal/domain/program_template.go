package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal classifies what a workout or program is training for.
type Goal string

const (
	GoalStrength    Goal = "strength"
	GoalCardio      Goal = "cardio"
	GoalFlexibility Goal = "flexibility"
	GoalFatLoss     Goal = "fatLoss"
	GoalGeneral     Goal = "general"
)

// ScheduleEntry describes one day slot of a template's weekly schedule.
// DayOfWeek is 1..7 with Monday = 1.
type ScheduleEntry struct {
	DayOfWeek   int    `bson:"dayOfWeek" json:"dayOfWeek"`
	IsRest      bool   `bson:"isRest" json:"isRest"`
	WorkoutName string `bson:"workoutName,omitempty" json:"workoutName,omitempty"` // must resolve to a WorkoutDefinition when not a rest day
}

// ExerciseSpec is one prescribed exercise inside a workout definition.
// TargetReps and TargetWeight are free-text as authored ("8-12", "Bodyweight",
// "135 lbs"); parsing happens at instance-generation time.
type ExerciseSpec struct {
	Name         string `bson:"name" json:"name"`
	TargetSets   int    `bson:"targetSets" json:"targetSets"`
	TargetReps   string `bson:"targetReps" json:"targetReps"`
	TargetWeight string `bson:"targetWeight,omitempty" json:"targetWeight,omitempty"`
	RestSeconds  int    `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
	Notes        string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutDefinition is a named, reusable workout blueprint within a template.
type WorkoutDefinition struct {
	Name             string         `bson:"name" json:"name"`
	EstimatedMinutes int            `bson:"estimatedMinutes" json:"estimatedMinutes"`
	Exercises        []ExerciseSpec `bson:"exercises" json:"exercises"` // order defines execution sequence
}

// ProgramTemplate is long-lived reference data: a multi-week training program
// users can enroll into. Templates are immutable once published; enrollment
// never mutates them.
type ProgramTemplate struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name               string              `bson:"name" json:"name"`
	Description        string              `bson:"description,omitempty" json:"description,omitempty"`
	Category           string              `bson:"category" json:"category"` // e.g., "strength", "hiit", "yoga"
	Difficulty         string              `bson:"difficulty" json:"difficulty"`
	Goal               Goal                `bson:"goal" json:"goal"`
	DurationWeeks      int                 `bson:"durationWeeks" json:"durationWeeks"`
	WorkoutsPerWeek    int                 `bson:"workoutsPerWeek" json:"workoutsPerWeek"`
	Schedule           []ScheduleEntry     `bson:"schedule" json:"schedule"` // exactly 7 entries, day tags 1..7
	WorkoutDefinitions []WorkoutDefinition `bson:"workoutDefinitions" json:"workoutDefinitions"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Definition returns the workout definition with the given name, or nil.
func (t *ProgramTemplate) Definition(name string) *WorkoutDefinition {
	for i := range t.WorkoutDefinitions {
		if t.WorkoutDefinitions[i].Name == name {
			return &t.WorkoutDefinitions[i]
		}
	}
	return nil
}

// TrainedDaysPerWeek counts the non-rest entries in the weekly schedule.
func (t *ProgramTemplate) TrainedDaysPerWeek() int {
	n := 0
	for _, e := range t.Schedule {
		if !e.IsRest {
			n++
		}
	}
	return n
}

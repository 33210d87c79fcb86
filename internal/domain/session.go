package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStatus tracks the lifecycle of a workout attempt.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "inProgress"
	SessionPaused     SessionStatus = "paused"
	SessionCancelled  SessionStatus = "cancelled"
	SessionCompleted  SessionStatus = "completed"
)

// CompletedSet records one executed set within a session.
type CompletedSet struct {
	ExerciseName string    `bson:"exerciseName" json:"exerciseName"`
	SetNumber    int       `bson:"setNumber" json:"setNumber"` // 1-based within the exercise
	Reps         int       `bson:"reps" json:"reps"`
	Weight       *float64  `bson:"weight,omitempty" json:"weight,omitempty"`
	CompletedAt  time.Time `bson:"completedAt" json:"completedAt"`
}

// WorkoutSession is a record of one attempt at a Workout. The Workout is the
// plan; the session is the execution, and it can be paused, abandoned, or
// deleted and restarted ("start over").
type WorkoutSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`

	Status      SessionStatus `bson:"status" json:"status"`
	StartedAt   time.Time     `bson:"startedAt" json:"startedAt"`
	CompletedAt *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	TotalDurationSeconds int            `bson:"totalDurationSeconds" json:"totalDurationSeconds"`
	CompletedSets        []CompletedSet `bson:"completedSets" json:"completedSets"`
	CaloriesBurned       int            `bson:"caloriesBurned,omitempty" json:"caloriesBurned,omitempty"`
	Notes                string         `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

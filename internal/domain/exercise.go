package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a shared catalog entry referenced by many workout exercises.
// Identity is the name, matched case-insensitively.
type Exercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	MuscleGroup  string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g., "Chest", "Legs", "Full Body"
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`       // e.g., "strength", "cardio"
	Difficulty   string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Equipment    string             `bson:"equipment,omitempty" json:"equipment,omitempty"` // e.g., "Barbell", "None"
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`   // e.g., "Home", "Gym", "Home/Gym"
	IsFavorite   bool               `bson:"isFavorite" json:"isFavorite"`
	Instructions string             `bson:"instructions,omitempty" json:"instructions,omitempty"`

	// DemoObjectKey points at an optional demonstration video in object
	// storage. The key is internal; clients receive presigned URLs.
	DemoObjectKey string `bson:"demoObjectKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

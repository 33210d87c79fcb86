package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckIn is a daily wellness entry: mood, energy and soreness on a 1..5
// scale. One check-in per user per calendar day (UTC date identity).
type CheckIn struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	// Date is truncated to midnight UTC; it is the uniqueness key together
	// with UserID.
	Date     time.Time `bson:"date" json:"date"`
	Mood     int       `bson:"mood" json:"mood"`
	Energy   int       `bson:"energy" json:"energy"`
	Soreness int       `bson:"soreness" json:"soreness"`
	Notes    string    `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

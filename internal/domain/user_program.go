package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramStatus tracks the lifecycle of an enrollment.
type ProgramStatus string

const (
	ProgramQueued    ProgramStatus = "queued"
	ProgramActive    ProgramStatus = "active"
	ProgramCompleted ProgramStatus = "completed"
)

// UserProgram is a user's datestamped enrollment into a ProgramTemplate.
// At most one enrollment per user may be active at a time; the coordinator
// enforces this, not the storage layer. Once completed, progress is frozen.
type UserProgram struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	TemplateID primitive.ObjectID `bson:"templateId" json:"templateId"`
	// Denormalized from the template for list views.
	TemplateName string `bson:"templateName" json:"templateName"`

	Status    ProgramStatus `bson:"status" json:"status"`
	StartDate time.Time     `bson:"startDate" json:"startDate"`
	EndDate   *time.Time    `bson:"endDate,omitempty" json:"endDate,omitempty"` // stamped when the enrollment ends

	CurrentWeek       int `bson:"currentWeek" json:"currentWeek"` // 1-based
	CompletedWorkouts int `bson:"completedWorkouts" json:"completedWorkouts"`

	// CompletedDays maps "week<N>" to the day-of-week numbers marked done
	// in that week.
	CompletedDays map[string][]int `bson:"completedDays" json:"completedDays"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// WeekKey builds the completedDays key for a 1-based week number.
func WeekKey(week int) string {
	return fmt.Sprintf("week%d", week)
}

// DayCompleted reports whether the given day of the given week is marked done.
func (p *UserProgram) DayCompleted(week, day int) bool {
	for _, d := range p.CompletedDays[WeekKey(week)] {
		if d == day {
			return true
		}
	}
	return false
}

// Package program holds the pure program logic: schedule expansion,
// target parsing and progress derivation. Nothing in this package touches
// storage or does I/O; everything is deterministic for a given input.
package program

import (
	"fmt"
	"time"

	"fitstride/fitness-app/internal/domain"
)

// Entry is one expanded schedule slot: a concrete, dated training day of an
// enrollment. Rest days produce no Entry.
type Entry struct {
	WeekNumber  int       // 1-based
	DayOfWeek   int       // 1..7, Monday = 1
	WorkoutName string    // resolves to a WorkoutDefinition in the template
	Date        time.Time // startDate + (week-1) weeks + (day-1) days
}

// Expand materializes the full calendar of an enrollment: for each week of
// the template's duration, each non-rest schedule entry yields one dated
// Entry. Output is week-major, then day-of-week-minor.
//
// Entries naming a workout definition that does not exist are skipped so a
// bad stored template cannot break read paths; ValidateTemplate is the loud
// guard and runs at authoring and enrollment time.
func Expand(t *domain.ProgramTemplate, startDate time.Time) []Entry {
	entries := make([]Entry, 0, t.DurationWeeks*t.TrainedDaysPerWeek())
	for week := 1; week <= t.DurationWeeks; week++ {
		weekStart := startDate.AddDate(0, 0, (week-1)*7)
		for _, slot := range sortedSchedule(t.Schedule) {
			if slot.IsRest {
				continue
			}
			if t.Definition(slot.WorkoutName) == nil {
				continue
			}
			entries = append(entries, Entry{
				WeekNumber:  week,
				DayOfWeek:   slot.DayOfWeek,
				WorkoutName: slot.WorkoutName,
				Date:        weekStart.AddDate(0, 0, slot.DayOfWeek-1),
			})
		}
	}
	return entries
}

// sortedSchedule returns the schedule ordered by day-of-week without
// mutating the template.
func sortedSchedule(schedule []domain.ScheduleEntry) []domain.ScheduleEntry {
	out := make([]domain.ScheduleEntry, len(schedule))
	copy(out, schedule)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].DayOfWeek < out[j-1].DayOfWeek; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// ValidateTemplate checks the structural invariants of a template:
// a positive duration, exactly 7 schedule entries tagged 1..7 with no
// duplicates, and every non-rest entry resolving to a workout definition.
func ValidateTemplate(t *domain.ProgramTemplate) error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if t.DurationWeeks < 1 {
		return fmt.Errorf("template %q: duration must be at least one week, got %d", t.Name, t.DurationWeeks)
	}
	if len(t.Schedule) != 7 {
		return fmt.Errorf("template %q: schedule must cover exactly 7 days, got %d", t.Name, len(t.Schedule))
	}
	seen := [8]bool{}
	for _, slot := range t.Schedule {
		if slot.DayOfWeek < 1 || slot.DayOfWeek > 7 {
			return fmt.Errorf("template %q: day-of-week %d out of range 1..7", t.Name, slot.DayOfWeek)
		}
		if seen[slot.DayOfWeek] {
			return fmt.Errorf("template %q: duplicate schedule entry for day %d", t.Name, slot.DayOfWeek)
		}
		seen[slot.DayOfWeek] = true
		if slot.IsRest {
			continue
		}
		if slot.WorkoutName == "" {
			return fmt.Errorf("template %q: day %d is not a rest day but names no workout", t.Name, slot.DayOfWeek)
		}
		if t.Definition(slot.WorkoutName) == nil {
			return fmt.Errorf("template %q: day %d references unknown workout %q", t.Name, slot.DayOfWeek, slot.WorkoutName)
		}
	}
	return nil
}

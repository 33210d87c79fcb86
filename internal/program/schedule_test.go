package program

import (
	"testing"
	"time"

	"fitstride/fitness-app/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sixDayTemplate trains Monday through Saturday with Sunday rest.
func sixDayTemplate(weeks int) *domain.ProgramTemplate {
	return &domain.ProgramTemplate{
		Name:            "Push Pull Legs",
		Category:        "strength",
		Difficulty:      "intermediate",
		DurationWeeks:   weeks,
		WorkoutsPerWeek: 6,
		Schedule: []domain.ScheduleEntry{
			{DayOfWeek: 1, WorkoutName: "Push"},
			{DayOfWeek: 2, WorkoutName: "Pull"},
			{DayOfWeek: 3, WorkoutName: "Legs"},
			{DayOfWeek: 4, WorkoutName: "Push"},
			{DayOfWeek: 5, WorkoutName: "Pull"},
			{DayOfWeek: 6, WorkoutName: "Legs"},
			{DayOfWeek: 7, IsRest: true},
		},
		WorkoutDefinitions: []domain.WorkoutDefinition{
			{Name: "Push", EstimatedMinutes: 60},
			{Name: "Pull", EstimatedMinutes: 60},
			{Name: "Legs", EstimatedMinutes: 75},
		},
	}
}

func TestExpandTwelveWeekSixDayProgram(t *testing.T) {
	template := sixDayTemplate(12)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // a Monday

	entries := Expand(template, start)
	require.Len(t, entries, 72)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), entries[0].Date)
	assert.Equal(t, 1, entries[0].WeekNumber)
	assert.Equal(t, 1, entries[0].DayOfWeek)
	assert.Equal(t, "Push", entries[0].WorkoutName)

	last := entries[len(entries)-1]
	assert.Equal(t, time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC), last.Date)
	assert.Equal(t, 12, last.WeekNumber)
	assert.Equal(t, 6, last.DayOfWeek)
	assert.Equal(t, "Legs", last.WorkoutName)
}

func TestExpandIsWeekMajorDayMinor(t *testing.T) {
	template := sixDayTemplate(3)
	// Schedule deliberately out of order: expansion must sort by day.
	template.Schedule = []domain.ScheduleEntry{
		{DayOfWeek: 6, WorkoutName: "Legs"},
		{DayOfWeek: 3, WorkoutName: "Legs"},
		{DayOfWeek: 1, WorkoutName: "Push"},
		{DayOfWeek: 7, IsRest: true},
		{DayOfWeek: 2, WorkoutName: "Pull"},
		{DayOfWeek: 5, WorkoutName: "Pull"},
		{DayOfWeek: 4, WorkoutName: "Push"},
	}
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	entries := Expand(template, start)
	require.NotEmpty(t, entries)

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.WeekNumber == prev.WeekNumber {
			assert.Greater(t, cur.DayOfWeek, prev.DayOfWeek)
		} else {
			assert.Equal(t, prev.WeekNumber+1, cur.WeekNumber)
		}
		assert.False(t, cur.Date.Before(prev.Date), "dates must be non-decreasing")
	}
}

func TestExpandSkipsRestAndUnresolvedDays(t *testing.T) {
	template := sixDayTemplate(2)
	template.Schedule[1].WorkoutName = "Missing" // no such definition

	entries := Expand(template, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	// Six trained days minus the unresolved one, over two weeks.
	assert.Len(t, entries, 10)
	for _, e := range entries {
		assert.NotEqual(t, 2, e.DayOfWeek)
		assert.NotEqual(t, 7, e.DayOfWeek)
	}
}

func TestExpandEntryDates(t *testing.T) {
	template := sixDayTemplate(4)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, e := range Expand(template, start) {
		want := start.AddDate(0, 0, (e.WeekNumber-1)*7+(e.DayOfWeek-1))
		assert.Equal(t, want, e.Date, "week %d day %d", e.WeekNumber, e.DayOfWeek)
	}
}

func TestValidateTemplate(t *testing.T) {
	t.Run("accepts well-formed template", func(t *testing.T) {
		assert.NoError(t, ValidateTemplate(sixDayTemplate(8)))
	})

	t.Run("rejects missing name", func(t *testing.T) {
		template := sixDayTemplate(8)
		template.Name = ""
		assert.Error(t, ValidateTemplate(template))
	})

	t.Run("rejects zero duration", func(t *testing.T) {
		template := sixDayTemplate(0)
		assert.Error(t, ValidateTemplate(template))
	})

	t.Run("rejects short schedule", func(t *testing.T) {
		template := sixDayTemplate(8)
		template.Schedule = template.Schedule[:6]
		assert.Error(t, ValidateTemplate(template))
	})

	t.Run("rejects duplicate day tags", func(t *testing.T) {
		template := sixDayTemplate(8)
		template.Schedule[1].DayOfWeek = 1
		assert.Error(t, ValidateTemplate(template))
	})

	t.Run("rejects out-of-range day tag", func(t *testing.T) {
		template := sixDayTemplate(8)
		template.Schedule[0].DayOfWeek = 8
		assert.Error(t, ValidateTemplate(template))
	})

	t.Run("rejects unresolved workout reference", func(t *testing.T) {
		template := sixDayTemplate(8)
		template.Schedule[0].WorkoutName = "Nonexistent"
		assert.Error(t, ValidateTemplate(template))
	})

	t.Run("rejects trained day without workout name", func(t *testing.T) {
		template := sixDayTemplate(8)
		template.Schedule[0].WorkoutName = ""
		assert.Error(t, ValidateTemplate(template))
	})
}

func TestExpandProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("entry count is weeks times trained days", prop.ForAll(
		func(weeks int, restMask []bool) bool {
			template := sixDayTemplate(weeks)
			for i, rest := range restMask {
				if rest {
					template.Schedule[i].IsRest = true
					template.Schedule[i].WorkoutName = ""
				}
			}
			entries := Expand(template, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
			return len(entries) == weeks*template.TrainedDaysPerWeek()
		},
		gen.IntRange(1, 52),
		gen.SliceOfN(6, gen.Bool()),
	))

	properties.Property("expansion is deterministic", prop.ForAll(
		func(weeks, startOffset int) bool {
			template := sixDayTemplate(weeks)
			start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, startOffset)
			a := Expand(template, start)
			b := Expand(template, start)
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 24),
		gen.IntRange(0, 365),
	))

	properties.Property("week and day pairs are unique", prop.ForAll(
		func(weeks int) bool {
			template := sixDayTemplate(weeks)
			seen := map[[2]int]bool{}
			for _, e := range Expand(template, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
				key := [2]int{e.WeekNumber, e.DayOfWeek}
				if seen[key] {
					return false
				}
				seen[key] = true
			}
			return true
		},
		gen.IntRange(1, 52),
	))

	properties.TestingRun(t)
}

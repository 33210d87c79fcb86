package program

import (
	"sort"
	"time"

	"fitstride/fitness-app/internal/domain"
)

// Progress is the derived read-model for an enrollment. It is recomputed
// from current state on every read, never cached.
type Progress struct {
	Overall           float64          `json:"overall"` // clamped to [0,1]
	CurrentWeek       int              `json:"currentWeek"`
	WorkoutsThisWeek  int              `json:"workoutsThisWeek"`
	WeekProgress      float64          `json:"weekProgress"` // clamped to [0,1]
	CompletedWorkouts int              `json:"completedWorkouts"`
	TotalWorkouts     int              `json:"totalWorkouts"`
	CompletedDays     map[string][]int `json:"completedDays"`
}

// ComputeProgress derives completion statistics for an enrollment against
// its template. Ratios are clamped: redone sessions can push the completed
// counter past the theoretical total, and the raw counters stay visible for
// that.
func ComputeProgress(p *domain.UserProgram, t *domain.ProgramTemplate) Progress {
	total := t.DurationWeeks * t.WorkoutsPerWeek
	thisWeek := len(p.CompletedDays[domain.WeekKey(p.CurrentWeek)])

	return Progress{
		Overall:           clampRatio(p.CompletedWorkouts, total),
		CurrentWeek:       p.CurrentWeek,
		WorkoutsThisWeek:  thisWeek,
		WeekProgress:      clampRatio(thisWeek, t.WorkoutsPerWeek),
		CompletedWorkouts: p.CompletedWorkouts,
		TotalWorkouts:     total,
		CompletedDays:     p.CompletedDays,
	}
}

func clampRatio(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	r := float64(n) / float64(total)
	if r > 1 {
		return 1
	}
	return r
}

// StreakDays counts consecutive calendar days with at least one completion,
// ending today or yesterday (a streak survives until a full day is missed).
// Dates are compared by UTC calendar day.
func StreakDays(completions []time.Time, now time.Time) int {
	if len(completions) == 0 {
		return 0
	}
	days := make(map[time.Time]bool, len(completions))
	for _, c := range completions {
		days[midnightUTC(c)] = true
	}
	uniq := make([]time.Time, 0, len(days))
	for d := range days {
		uniq = append(uniq, d)
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i].After(uniq[j]) })

	today := midnightUTC(now)
	cursor := today
	if !days[cursor] {
		cursor = cursor.AddDate(0, 0, -1) // streak not broken until yesterday is missed
		if !days[cursor] {
			return 0
		}
	}

	streak := 0
	for days[cursor] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

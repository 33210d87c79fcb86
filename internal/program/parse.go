package program

import (
	"strconv"
	"strings"

	"fitstride/fitness-app/internal/domain"
)

// defaultTargetReps is used when a rep prescription has no parseable number
// (e.g. "AMRAP", "To failure").
const defaultTargetReps = 10

// ParseTargetReps turns a free-text rep prescription into a single target.
// A plain integer is used as-is; a range like "8-12" yields its lower bound;
// anything else falls back to the default.
func ParseTargetReps(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if low, _, found := strings.Cut(s, "-"); found {
		if n, err := strconv.Atoi(strings.TrimSpace(low)); err == nil {
			return n
		}
	}
	return defaultTargetReps
}

// ParseTargetWeight extracts a numeric weight from free text by stripping
// every character except digits and '.'. It returns nil when nothing numeric
// remains ("Bodyweight"), which means absent rather than zero. The digit
// strip is intentionally crude: "RPE 7" yields 7 — current behavior, not a
// semantic guarantee.
func ParseTargetWeight(s string) *float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	w, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return nil
	}
	return &w
}

// GoalForCategory maps a program category to the goal tag stamped onto
// generated workouts.
func GoalForCategory(category string) domain.Goal {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "strength", "calisthenics":
		return domain.GoalStrength
	case "cardio", "running", "cycling", "swimming":
		return domain.GoalCardio
	case "yoga", "pilates", "stretching":
		return domain.GoalFlexibility
	case "hiit":
		return domain.GoalFatLoss
	default:
		return domain.GoalGeneral
	}
}

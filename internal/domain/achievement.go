package domain

// Achievement is a derived badge. Achievements are never stored; they are
// recomputed from workout, program and check-in counts on every read.
type Achievement struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
	// Progress and Target let the UI render partially earned badges,
	// e.g. 7/10 workouts.
	Progress int `json:"progress"`
	Target   int `json:"target"`
}

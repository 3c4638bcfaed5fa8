package workoutlog

import "time"

// LoggedSet keeps weight and reps untyped. Older clients sent numbers
// as strings and some rows carry nulls, normalization happens at
// summarization time.
type LoggedSet struct {
	WeightKg  any  `json:"weight_kg"`
	Reps      any  `json:"reps"`
	Completed bool `json:"completed"`
}

type LoggedExercise struct {
	Name string      `json:"name"`
	Sets []LoggedSet `json:"sets"`
}

type Entry struct {
	ID               int              `json:"id"`
	UserID           string           `json:"-"`
	DayLabel         string           `json:"dayLabel"`
	Exercises        []LoggedExercise `json:"exercises"`
	DurationMinutes  any              `json:"durationMinutes,omitempty"`
	DifficultyRating any              `json:"difficultyRating,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
}

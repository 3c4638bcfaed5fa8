package goals

import "time"

type Type string

const (
	TypeLoseWeight     Type = "lose_weight"
	TypeBuildMuscle    Type = "build_muscle"
	TypeGetStronger    Type = "get_stronger"
	TypeGeneralFitness Type = "general_fitness"
)

func (t Type) Valid() bool {
	switch t {
	case TypeLoseWeight, TypeBuildMuscle, TypeGetStronger, TypeGeneralFitness:
		return true
	}
	return false
}

// goalDescriptions feeds the plan generation directive so the model
// knows what the training emphasis should be for each goal type.
var goalDescriptions = map[Type]string{
	TypeLoseWeight:     "fat loss with higher rep ranges, supersets, and metabolic conditioning",
	TypeBuildMuscle:    "hypertrophy with moderate-heavy weights, 8-12 rep ranges, and volume",
	TypeGetStronger:    "strength with heavy compounds, 3-6 rep ranges, and longer rest periods",
	TypeGeneralFitness: "balanced training with a mix of compound and isolation movements",
}

// Description returns the training emphasis text for the goal type,
// used in the plan generation directive.
func (t Type) Description() string {
	if desc, ok := goalDescriptions[t]; ok {
		return desc
	}
	return "general fitness"
}

type Goal struct {
	ID                     int       `json:"id"`
	UserID                 string    `json:"-"`
	Type                   Type      `json:"type"`
	TargetWeightKg         *float64  `json:"targetWeightKg,omitempty"`
	DaysPerWeek            int       `json:"daysPerWeek"`
	SessionDurationMinutes int       `json:"sessionDurationMinutes"`
	Equipment              []string  `json:"equipment"`
	FocusAreas             []string  `json:"focusAreas"`
	Active                 bool      `json:"active"`
	CreatedAt              time.Time `json:"createdAt"`
}

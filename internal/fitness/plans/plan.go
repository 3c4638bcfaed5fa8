package plans

import "time"

// Exercise shape is shared verbatim with the plan generation payload,
// downstream persistence expects exactly these field names.
type Exercise struct {
	Name         string   `json:"name"`
	Sets         int      `json:"sets"`
	Reps         string   `json:"reps"`
	RestSeconds  int      `json:"rest_sec"`
	Notes        string   `json:"notes,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

type Day struct {
	Name      string     `json:"name"`
	Focus     string     `json:"focus"`
	Warmup    string     `json:"warmup"`
	Cooldown  string     `json:"cooldown"`
	Exercises []Exercise `json:"exercises"`
}

type Plan struct {
	ID          int       `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	WeekNumber  int       `json:"weekNumber"`
	Days        []Day     `json:"days"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

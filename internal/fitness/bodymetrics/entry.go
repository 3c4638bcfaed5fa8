package bodymetrics

import "time"

// Entry is one body measurement snapshot. Measured fields stay untyped
// until summarization, stored rows mix numbers, numeric strings and
// nulls depending on which client wrote them.
type Entry struct {
	ID         int       `json:"id"`
	UserID     string    `json:"-"`
	WeightKg   any       `json:"weight_kg,omitempty"`
	BodyFatPct any       `json:"body_fat_pct,omitempty"`
	ChestCm    any       `json:"chest_cm,omitempty"`
	WaistCm    any       `json:"waist_cm,omitempty"`
	HipsCm     any       `json:"hips_cm,omitempty"`
	BicepCm    any       `json:"bicep_cm,omitempty"`
	ThighCm    any       `json:"thigh_cm,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

package bodymetrics

import (
	"time"

	"github.com/mkovacek/fitplan/internal/fitness/norm"
)

// Snapshot holds the normalized values of one measurement. A nil field
// means the dimension was not measured or not parsable.
type Snapshot struct {
	WeightKg   *float64 `json:"weightKg"`
	BodyFatPct *float64 `json:"bodyFatPct"`
	ChestCm    *float64 `json:"chestCm"`
	WaistCm    *float64 `json:"waistCm"`
	HipsCm     *float64 `json:"hipsCm"`
	BicepCm    *float64 `json:"bicepCm"`
	ThighCm    *float64 `json:"thighCm"`
}

// Changes holds latest-minus-first deltas per tracked dimension. A
// dimension needs a parsable value at both ends of the window,
// otherwise its delta stays nil.
type Changes struct {
	WeightKg   *float64 `json:"weightKg"`
	BodyFatPct *float64 `json:"bodyFatPct"`
	ChestCm    *float64 `json:"chestCm"`
	WaistCm    *float64 `json:"waistCm"`
	HipsCm     *float64 `json:"hipsCm"`
	BicepCm    *float64 `json:"bicepCm"`
	ThighCm    *float64 `json:"thighCm"`
}

// Summary distinguishes "no data" from "no change": with zero entries
// the count is 0 and every other field is an explicit null.
type Summary struct {
	EntryCount       int        `json:"entryCount"`
	FirstRecordedAt  *time.Time `json:"firstRecordedAt"`
	LatestRecordedAt *time.Time `json:"latestRecordedAt"`
	Latest           *Snapshot  `json:"latest"`
	Changes          *Changes   `json:"changes"`
}

// Summarize derives the body metric summary from entries ordered
// oldest-first.
func Summarize(entries []Entry) Summary {
	if len(entries) == 0 {
		return Summary{}
	}

	first := entries[0]
	latest := entries[len(entries)-1]

	firstSnapshot := normalize(first)
	latestSnapshot := normalize(latest)

	return Summary{
		EntryCount:       len(entries),
		FirstRecordedAt:  &first.CreatedAt,
		LatestRecordedAt: &latest.CreatedAt,
		Latest:           &latestSnapshot,
		Changes: &Changes{
			WeightKg:   delta(firstSnapshot.WeightKg, latestSnapshot.WeightKg),
			BodyFatPct: delta(firstSnapshot.BodyFatPct, latestSnapshot.BodyFatPct),
			ChestCm:    delta(firstSnapshot.ChestCm, latestSnapshot.ChestCm),
			WaistCm:    delta(firstSnapshot.WaistCm, latestSnapshot.WaistCm),
			HipsCm:     delta(firstSnapshot.HipsCm, latestSnapshot.HipsCm),
			BicepCm:    delta(firstSnapshot.BicepCm, latestSnapshot.BicepCm),
			ThighCm:    delta(firstSnapshot.ThighCm, latestSnapshot.ThighCm),
		},
	}
}

func normalize(entry Entry) Snapshot {
	return Snapshot{
		WeightKg:   norm.Float(entry.WeightKg),
		BodyFatPct: norm.Float(entry.BodyFatPct),
		ChestCm:    norm.Float(entry.ChestCm),
		WaistCm:    norm.Float(entry.WaistCm),
		HipsCm:     norm.Float(entry.HipsCm),
		BicepCm:    norm.Float(entry.BicepCm),
		ThighCm:    norm.Float(entry.ThighCm),
	}
}

func delta(first, latest *float64) *float64 {
	if first == nil || latest == nil {
		return nil
	}
	d := norm.Round2(*latest - *first)
	return &d
}

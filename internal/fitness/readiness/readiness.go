// Package readiness decides whether a user is ready to move to the
// next training phase, based on the lookback window summaries.
package readiness

import (
	"github.com/mkovacek/fitplan/internal/fitness/bodymetrics"
	"github.com/mkovacek/fitplan/internal/fitness/goals"
	"github.com/mkovacek/fitplan/internal/fitness/workoutlog"
)

// Fixed decision thresholds. These are design constants of the
// heuristic, not tunables.
const (
	minAdherenceRatio        = 0.70
	maxManageableDifficulty  = 3.2
	maxAdaptingDifficulty    = 2.8
	minWorkoutsFloor         = 6
	weeksForMinWorkouts      = 4
	loseWeightWeightCutoff   = -1.0
	loseWeightWaistCutoff    = -1.0
	loseWeightBodyFatCutoff  = -0.8
	buildMuscleWeightCutoff  = 0.8
	buildMuscleChestCutoff   = 0.8
	buildMuscleBicepCutoff   = 0.5
	buildMuscleThighCutoff   = 0.8
	generalBodyFatCutoff     = -0.5
	generalDifficultyCeiling = 3.0
)

// Reason sentences, appended in this exact order when the matching
// condition holds.
const (
	ReasonConsistentTraining   = "You have been training consistently over the last two months."
	ReasonManageableDifficulty = "Your reported workout difficulty is manageable."
	ReasonAdaptingWell         = "Your body is adapting well to the current training load."
	ReasonProgressTowardGoal   = "You are making measurable progress toward your goal."
)

type Verdict struct {
	ReadyForNextPhase bool     `json:"readyForNextPhase"`
	Reasons           []string `json:"reasons"`
	AdherenceRatio    *float64 `json:"adherenceRatio"`
	AverageDifficulty *float64 `json:"averageDifficulty"`
	DifficultyTrend   string   `json:"difficultyTrend"`
}

// Assess combines adherence, difficulty trend and goal specific
// progress signals into the phase readiness verdict. Absent metric
// changes count as 0, absent adherence counts as 0, so missing data
// never produces false praise.
func Assess(
	goalType goals.Type,
	workoutSummary workoutlog.Summary,
	changes *bodymetrics.Changes,
	targetDaysPerWeek int,
) Verdict {
	expectedMinWorkouts := targetDaysPerWeek * weeksForMinWorkouts
	if expectedMinWorkouts < minWorkoutsFloor {
		expectedMinWorkouts = minWorkoutsFloor
	}

	consistentTraining := workoutSummary.TotalWorkouts >= expectedMinWorkouts &&
		orZero(workoutSummary.AdherenceRatio) >= minAdherenceRatio

	manageableDifficulty := workoutSummary.AverageDifficulty != nil &&
		*workoutSummary.AverageDifficulty <= maxManageableDifficulty

	adaptingWell := workoutSummary.DifficultyTrend == workoutlog.TrendDown ||
		(workoutSummary.AverageDifficulty != nil && *workoutSummary.AverageDifficulty <= maxAdaptingDifficulty)

	progressTowardGoal := progressForGoal(goalType, workoutSummary, changes, consistentTraining, adaptingWell)

	reasons := []string{}
	if consistentTraining {
		reasons = append(reasons, ReasonConsistentTraining)
	}
	if manageableDifficulty {
		reasons = append(reasons, ReasonManageableDifficulty)
	}
	if adaptingWell {
		reasons = append(reasons, ReasonAdaptingWell)
	}
	if progressTowardGoal {
		reasons = append(reasons, ReasonProgressTowardGoal)
	}

	return Verdict{
		ReadyForNextPhase: consistentTraining && manageableDifficulty && (progressTowardGoal || adaptingWell),
		Reasons:           reasons,
		AdherenceRatio:    workoutSummary.AdherenceRatio,
		AverageDifficulty: workoutSummary.AverageDifficulty,
		DifficultyTrend:   workoutSummary.DifficultyTrend,
	}
}

func progressForGoal(
	goalType goals.Type,
	workoutSummary workoutlog.Summary,
	changes *bodymetrics.Changes,
	consistentTraining, adaptingWell bool,
) bool {
	var weight, bodyFat, chest, waist, bicep, thigh float64
	if changes != nil {
		weight = orZero(changes.WeightKg)
		bodyFat = orZero(changes.BodyFatPct)
		chest = orZero(changes.ChestCm)
		waist = orZero(changes.WaistCm)
		bicep = orZero(changes.BicepCm)
		thigh = orZero(changes.ThighCm)
	}

	switch goalType {
	case goals.TypeLoseWeight:
		return weight <= loseWeightWeightCutoff ||
			waist <= loseWeightWaistCutoff ||
			bodyFat <= loseWeightBodyFatCutoff
	case goals.TypeBuildMuscle:
		return weight >= buildMuscleWeightCutoff ||
			chest >= buildMuscleChestCutoff ||
			bicep >= buildMuscleBicepCutoff ||
			thigh >= buildMuscleThighCutoff
	case goals.TypeGetStronger:
		// strength progress shows up in training signals, not tape measures
		return consistentTraining && adaptingWell
	default:
		return consistentTraining &&
			(bodyFat <= generalBodyFatCutoff || orZero(workoutSummary.AverageDifficulty) <= generalDifficultyCeiling)
	}
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

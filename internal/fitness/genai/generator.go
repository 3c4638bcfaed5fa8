// Package genai turns a user's training history into a structured
// request for the Gemini model and parses the structured plan it
// returns.
package genai

import (
	"errors"
	"fmt"
	"time"

	"github.com/mkovacek/fitplan/internal/fitness/bodymetrics"
	"github.com/mkovacek/fitplan/internal/fitness/goals"
	"github.com/mkovacek/fitplan/internal/fitness/norm"
	"github.com/mkovacek/fitplan/internal/fitness/plans"
	"github.com/mkovacek/fitplan/internal/fitness/readiness"
	"github.com/mkovacek/fitplan/internal/fitness/workoutlog"
)

const (
	ActionUpdateCurrentPlan = "update_current_plan"
	ActionGenerateNewPlan   = "generate_new_plan"
)

var ErrInvalidPlanShape = errors.New("generated plan does not match the expected shape")

// PlanContent is the weekly plan structure the model must return. The
// field names match what plan persistence expects verbatim.
type PlanContent struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Days        []plans.Day `json:"days"`
}

// PlanUpdate is the model's full answer to an update request.
type PlanUpdate struct {
	Action    string      `json:"action"`
	Rationale string      `json:"rationale"`
	Plan      PlanContent `json:"plan"`
}

// GoalConstraints carries the clamped goal parameters fed to the
// model.
type GoalConstraints struct {
	GoalType               goals.Type `json:"goal_type"`
	TargetWeightKg         *float64   `json:"target_weight_kg"`
	DaysPerWeek            int        `json:"days_per_week"`
	SessionDurationMinutes int        `json:"session_duration_min"`
	Equipment              []string   `json:"equipment_access"`
	FocusAreas             []string   `json:"focus_areas"`
}

// UserMetrics describes the lifter the plan is for.
type UserMetrics struct {
	WeightKg        float64  `json:"weight_kg"`
	HeightCm        *float64 `json:"height_cm"`
	ExperienceLevel string   `json:"experience_level"`
}

// TimelinePlan is a compact view of one historical plan, enough for
// the model to see how the training structure evolved.
type TimelinePlan struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	WeekNum   int       `json:"week_number"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	DaysCount int       `json:"days_count"`
	DayNames  []string  `json:"day_names"`
}

// NormalizedLog is one raw workout log with its loose numeric fields
// normalized for the prompt.
type NormalizedLog struct {
	CompletedAt      time.Time `json:"completed_at"`
	WorkoutDay       string    `json:"workout_day"`
	DurationMin      *float64  `json:"duration_min"`
	DifficultyRating *float64  `json:"difficulty_rating"`
	Notes            string    `json:"notes"`
	ExerciseNames    []string  `json:"exercise_names"`
}

// NormalizedMetric is one raw body metric snapshot, normalized.
type NormalizedMetric struct {
	RecordedAt time.Time `json:"recorded_at"`
	bodymetrics.Snapshot
}

// UpdatePlanRequest bundles everything the model sees when deciding
// between adjusting and replacing the active plan.
type UpdatePlanRequest struct {
	Constraints       GoalConstraints     `json:"goal"`
	GoalDescription   string              `json:"goal_description"`
	Metrics           UserMetrics         `json:"user_metrics"`
	CurrentPlan       plans.Plan          `json:"current_plan"`
	PlanTimeline      []TimelinePlan      `json:"plan_timeline"`
	WorkoutSummary    workoutlog.Summary  `json:"workout_summary"`
	BodyMetricSummary bodymetrics.Summary `json:"body_metric_summary"`
	RawLogs           []NormalizedLog     `json:"raw_workout_logs"`
	RawMetrics        []NormalizedMetric  `json:"raw_body_metrics"`
	Feedback          string              `json:"feedback"`
	StrategyHint      string              `json:"strategy_hint"`
	Readiness         readiness.Verdict   `json:"phase_readiness"`
	LookbackMonths    int                 `json:"lookback_months"`
}

// GeneratePlanRequest is the initial, history-free plan request.
type GeneratePlanRequest struct {
	Constraints     GoalConstraints `json:"goal"`
	GoalDescription string          `json:"goal_description"`
	Metrics         UserMetrics     `json:"user_metrics"`
}

// NormalizeLogs prepares raw log entries for the prompt.
func NormalizeLogs(entries []workoutlog.Entry) []NormalizedLog {
	logs := make([]NormalizedLog, 0, len(entries))
	for _, entry := range entries {
		names := make([]string, 0, len(entry.Exercises))
		for _, exercise := range entry.Exercises {
			if exercise.Name != "" {
				names = append(names, exercise.Name)
			}
		}
		logs = append(logs, NormalizedLog{
			CompletedAt:      entry.CreatedAt,
			WorkoutDay:       entry.DayLabel,
			DurationMin:      norm.Float(entry.DurationMinutes),
			DifficultyRating: norm.Float(entry.DifficultyRating),
			Notes:            entry.Notes,
			ExerciseNames:    names,
		})
	}
	return logs
}

// NormalizeMetrics prepares raw body metric entries for the prompt.
func NormalizeMetrics(entries []bodymetrics.Entry) []NormalizedMetric {
	metrics := make([]NormalizedMetric, 0, len(entries))
	for _, entry := range entries {
		metrics = append(metrics, NormalizedMetric{
			RecordedAt: entry.CreatedAt,
			Snapshot: bodymetrics.Snapshot{
				WeightKg:   norm.Float(entry.WeightKg),
				BodyFatPct: norm.Float(entry.BodyFatPct),
				ChestCm:    norm.Float(entry.ChestCm),
				WaistCm:    norm.Float(entry.WaistCm),
				HipsCm:     norm.Float(entry.HipsCm),
				BicepCm:    norm.Float(entry.BicepCm),
				ThighCm:    norm.Float(entry.ThighCm),
			},
		})
	}
	return metrics
}

// TimelineOf compacts full plans into their timeline view.
func TimelineOf(timeline []plans.Plan) []TimelinePlan {
	compact := make([]TimelinePlan, 0, len(timeline))
	for _, plan := range timeline {
		names := make([]string, 0, len(plan.Days))
		for _, day := range plan.Days {
			if day.Name != "" {
				names = append(names, day.Name)
			}
		}
		compact = append(compact, TimelinePlan{
			ID:        plan.ID,
			Name:      plan.Name,
			WeekNum:   plan.WeekNumber,
			Active:    plan.Active,
			CreatedAt: plan.CreatedAt,
			DaysCount: len(plan.Days),
			DayNames:  names,
		})
	}
	return compact
}

// ValidatePlanContent rejects structurally unusable plans before they
// reach persistence.
func ValidatePlanContent(plan PlanContent) error {
	if plan.Name == "" {
		return fmt.Errorf("%w: empty plan name", ErrInvalidPlanShape)
	}
	if len(plan.Days) == 0 {
		return fmt.Errorf("%w: no days", ErrInvalidPlanShape)
	}
	for i, day := range plan.Days {
		if day.Name == "" {
			return fmt.Errorf("%w: day %d has no name", ErrInvalidPlanShape, i)
		}
		if len(day.Exercises) == 0 {
			return fmt.Errorf("%w: day %q has no exercises", ErrInvalidPlanShape, day.Name)
		}
		for _, exercise := range day.Exercises {
			if exercise.Name == "" {
				return fmt.Errorf("%w: day %q has an unnamed exercise", ErrInvalidPlanShape, day.Name)
			}
			if exercise.Sets <= 0 || exercise.Reps == "" {
				return fmt.Errorf("%w: exercise %q is missing sets or reps", ErrInvalidPlanShape, exercise.Name)
			}
		}
	}
	return nil
}

// ValidatePlanUpdate checks the full update answer.
func ValidatePlanUpdate(update PlanUpdate) error {
	if update.Action != ActionUpdateCurrentPlan && update.Action != ActionGenerateNewPlan {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidPlanShape, update.Action)
	}
	if update.Rationale == "" {
		return fmt.Errorf("%w: empty rationale", ErrInvalidPlanShape)
	}
	return ValidatePlanContent(update.Plan)
}

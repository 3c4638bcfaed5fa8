// Package adapt orchestrates the plan adaptation flow: it gathers the
// lookback window, summarizes it, assesses phase readiness, asks the
// generation model for a decision and reconciles the answer.
package adapt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/mkovacek/fitplan/internal/fitness/bodymetrics"
	"github.com/mkovacek/fitplan/internal/fitness/genai"
	"github.com/mkovacek/fitplan/internal/fitness/goals"
	"github.com/mkovacek/fitplan/internal/fitness/plans"
	"github.com/mkovacek/fitplan/internal/fitness/profiles"
	"github.com/mkovacek/fitplan/internal/fitness/readiness"
	"github.com/mkovacek/fitplan/internal/fitness/workoutlog"
	"github.com/mkovacek/fitplan/internal/telemetry/metrics"
	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=adapt_test

// LookbackMonths is the fixed trailing window every summary and
// decision is computed over.
const LookbackMonths = 2

const (
	// below this adherence the current structure clearly is not
	// sticking, hint at a restart
	lowAdherenceCutoff = 0.45

	minDaysPerWeek     = 2
	maxDaysPerWeek     = 6
	defaultDaysPerWeek = 3

	minSessionDurationMin     = 30
	maxSessionDurationMin     = 120
	defaultSessionDurationMin = 60
)

// overrideRationaleClause is appended to the model's rationale when
// the readiness verdict forces a new plan.
const overrideRationaleClause = "Additionally, the readiness assessment indicates you are ready for the next training phase, so a new plan is generated."

// ErrPreconditionNotMet is returned when the user has no active goal
// or no active plan, adaptation needs both.
var ErrPreconditionNotMet = errors.New("an active goal and active plan are required")

type goalsRepo interface {
	GetActive(ctx context.Context, userID string) (*goals.Goal, error)
}

type plansRepo interface {
	GetActive(ctx context.Context, userID string) (*plans.Plan, error)
	Timeline(ctx context.Context, userID string) ([]plans.Plan, error)
}

type profilesRepo interface {
	GetByUserID(ctx context.Context, userID string) (*profiles.Profile, error)
}

type workoutLogRepo interface {
	ListInWindow(ctx context.Context, userID string, from, to time.Time) ([]workoutlog.Entry, error)
}

type bodyMetricsRepo interface {
	ListInWindow(ctx context.Context, userID string, from, to time.Time) ([]bodymetrics.Entry, error)
	LatestWeight(ctx context.Context, userID string) (*float64, error)
}

type planGenerator interface {
	UpdatePlan(ctx context.Context, req genai.UpdatePlanRequest) (*genai.PlanUpdate, error)
	GeneratePlan(ctx context.Context, req genai.GeneratePlanRequest) (*genai.PlanContent, error)
}

// Defaults covers users with incomplete profiles. The values are
// product guesses, configurable rather than hardcoded on purpose.
type Defaults struct {
	CurrentWeightKg float64
	ExperienceLevel string
}

type Result struct {
	Action         string            `json:"action"`
	Rationale      string            `json:"rationale"`
	Plan           genai.PlanContent `json:"plan"`
	LookbackMonths int               `json:"lookback_months"`
	PhaseReadiness readiness.Verdict `json:"phase_readiness"`
}

type Service struct {
	goals          goalsRepo
	plans          plansRepo
	profiles       profilesRepo
	workoutLogs    workoutLogRepo
	bodyMetrics    bodyMetricsRepo
	generator      planGenerator
	analyzer       *workoutlog.Analyzer
	defaults       Defaults
	metricsManager *metrics.Manager
}

type NewServiceParams struct {
	Goals          goalsRepo
	Plans          plansRepo
	Profiles       profilesRepo
	WorkoutLogs    workoutLogRepo
	BodyMetrics    bodyMetricsRepo
	Generator      planGenerator
	Defaults       Defaults
	MetricsManager *metrics.Manager
}

func NewService(params NewServiceParams) *Service {
	return &Service{
		goals:          params.Goals,
		plans:          params.Plans,
		profiles:       params.Profiles,
		workoutLogs:    params.WorkoutLogs,
		bodyMetrics:    params.BodyMetrics,
		generator:      params.Generator,
		analyzer:       workoutlog.NewAnalyzer(LookbackMonths),
		defaults:       params.Defaults,
		metricsManager: params.MetricsManager,
	}
}

// history is the fan-in of all per-user reads for one request.
type history struct {
	goal         *goals.Goal
	plan         *plans.Plan
	profile      *profiles.Profile
	logs         []workoutlog.Entry
	metrics      []bodymetrics.Entry
	timeline     []plans.Plan
	latestWeight *float64
}

// AssessAndUpdatePlan is the single entry point of the adaptation
// flow. It returns the proposed action, rationale and plan, it never
// persists anything itself.
func (s *Service) AssessAndUpdatePlan(ctx context.Context, userID, feedback string) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.adapt.assessAndUpdatePlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	hist, err := s.fetchHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	if hist.goal == nil || hist.plan == nil {
		return nil, ErrPreconditionNotMet
	}

	daysPerWeek := clampWithDefault(hist.goal.DaysPerWeek, minDaysPerWeek, maxDaysPerWeek, defaultDaysPerWeek)
	sessionDuration := clampWithDefault(
		hist.goal.SessionDurationMinutes, minSessionDurationMin, maxSessionDurationMin, defaultSessionDurationMin)

	workoutSummary := s.analyzer.Summarize(hist.logs, daysPerWeek)
	bodyMetricSummary := bodymetrics.Summarize(hist.metrics)

	verdict := readiness.Assess(hist.goal.Type, workoutSummary, bodyMetricSummary.Changes, daysPerWeek)
	strategyHint := strategyHintFor(verdict, workoutSummary.AdherenceRatio)

	update, err := s.generator.UpdatePlan(ctx, genai.UpdatePlanRequest{
		Constraints: genai.GoalConstraints{
			GoalType:               hist.goal.Type,
			TargetWeightKg:         hist.goal.TargetWeightKg,
			DaysPerWeek:            daysPerWeek,
			SessionDurationMinutes: sessionDuration,
			Equipment:              hist.goal.Equipment,
			FocusAreas:             hist.goal.FocusAreas,
		},
		GoalDescription:   hist.goal.Type.Description(),
		Metrics:           s.userMetrics(hist, bodyMetricSummary),
		CurrentPlan:       *hist.plan,
		PlanTimeline:      genai.TimelineOf(hist.timeline),
		WorkoutSummary:    workoutSummary,
		BodyMetricSummary: bodyMetricSummary,
		RawLogs:           genai.NormalizeLogs(hist.logs),
		RawMetrics:        genai.NormalizeMetrics(hist.metrics),
		Feedback:          feedback,
		StrategyHint:      strategyHint,
		Readiness:         verdict,
		LookbackMonths:    LookbackMonths,
	})
	if err != nil {
		return nil, fmt.Errorf("generate plan update: %w", err)
	}

	action, rationale := reconcile(verdict, update)

	s.metricsManager.CounterPlanAdaptations.With(prometheus.Labels{"action": action}).Inc()

	return &Result{
		Action:         action,
		Rationale:      rationale,
		Plan:           update.Plan,
		LookbackMonths: LookbackMonths,
		PhaseReadiness: verdict,
	}, nil
}

// GenerateInitialPlan produces the user's first weekly plan from goal
// and profile alone, no history is consulted.
func (s *Service) GenerateInitialPlan(ctx context.Context, userID string) (_ *genai.PlanContent, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.adapt.generateInitialPlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		goal         *goals.Goal
		profile      *profiles.Profile
		latestWeight *float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		activeGoal, err := s.goals.GetActive(gctx, userID)
		if errors.Is(err, goals.ErrNoActiveGoal) {
			return nil
		}
		goal = activeGoal
		return err
	})
	g.Go(func() error {
		userProfile, err := s.profiles.GetByUserID(gctx, userID)
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return nil
		}
		profile = userProfile
		return err
	})
	g.Go(func() error {
		weight, err := s.bodyMetrics.LatestWeight(gctx, userID)
		latestWeight = weight
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch user data: %w", err)
	}

	if goal == nil {
		return nil, ErrPreconditionNotMet
	}

	hist := &history{goal: goal, profile: profile, latestWeight: latestWeight}
	plan, err := s.generator.GeneratePlan(ctx, genai.GeneratePlanRequest{
		Constraints: genai.GoalConstraints{
			GoalType:               goal.Type,
			TargetWeightKg:         goal.TargetWeightKg,
			DaysPerWeek:            clampWithDefault(goal.DaysPerWeek, minDaysPerWeek, maxDaysPerWeek, defaultDaysPerWeek),
			SessionDurationMinutes: clampWithDefault(goal.SessionDurationMinutes, minSessionDurationMin, maxSessionDurationMin, defaultSessionDurationMin),
			Equipment:              goal.Equipment,
			FocusAreas:             goal.FocusAreas,
		},
		GoalDescription: goal.Type.Description(),
		Metrics:         s.userMetrics(hist, bodymetrics.Summary{}),
	})
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	return plan, nil
}

// fetchHistory issues all independent reads concurrently and waits
// for every one of them, no summary is computed over partial data.
func (s *Service) fetchHistory(ctx context.Context, userID string) (*history, error) {
	now := time.Now()
	from := now.AddDate(0, -LookbackMonths, 0)

	var hist history
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		goal, err := s.goals.GetActive(gctx, userID)
		if errors.Is(err, goals.ErrNoActiveGoal) {
			return nil
		}
		hist.goal = goal
		return err
	})
	g.Go(func() error {
		plan, err := s.plans.GetActive(gctx, userID)
		if errors.Is(err, plans.ErrNoActivePlan) {
			return nil
		}
		hist.plan = plan
		return err
	})
	g.Go(func() error {
		profile, err := s.profiles.GetByUserID(gctx, userID)
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return nil
		}
		hist.profile = profile
		return err
	})
	g.Go(func() error {
		logs, err := s.workoutLogs.ListInWindow(gctx, userID, from, now)
		hist.logs = logs
		return err
	})
	g.Go(func() error {
		entries, err := s.bodyMetrics.ListInWindow(gctx, userID, from, now)
		hist.metrics = entries
		return err
	})
	g.Go(func() error {
		timeline, err := s.plans.Timeline(gctx, userID)
		hist.timeline = timeline
		return err
	})
	g.Go(func() error {
		weight, err := s.bodyMetrics.LatestWeight(gctx, userID)
		hist.latestWeight = weight
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch user history: %w", err)
	}
	return &hist, nil
}

// userMetrics resolves the lifter description for the prompt: weight
// from the lookback window, then the latest stored weight, then the
// configured default, experience level from the profile or default.
func (s *Service) userMetrics(hist *history, bodyMetricSummary bodymetrics.Summary) genai.UserMetrics {
	weight := s.defaults.CurrentWeightKg
	if hist.latestWeight != nil {
		weight = *hist.latestWeight
	}
	if bodyMetricSummary.Latest != nil && bodyMetricSummary.Latest.WeightKg != nil {
		weight = *bodyMetricSummary.Latest.WeightKg
	}

	experience := s.defaults.ExperienceLevel
	var height *float64
	if hist.profile != nil {
		if profiles.ValidExperienceLevel(hist.profile.ExperienceLevel) {
			experience = hist.profile.ExperienceLevel
		}
		height = hist.profile.HeightCm
	}

	return genai.UserMetrics{
		WeightKg:        weight,
		HeightCm:        height,
		ExperienceLevel: experience,
	}
}

// strategyHintFor derives the advisory hint sent to the model. It is
// context for generation, not the final decision.
func strategyHintFor(verdict readiness.Verdict, adherenceRatio *float64) string {
	if verdict.ReadyForNextPhase {
		return genai.ActionGenerateNewPlan
	}
	if adherenceRatio != nil && *adherenceRatio < lowAdherenceCutoff {
		return genai.ActionGenerateNewPlan
	}
	return genai.ActionUpdateCurrentPlan
}

// reconcile applies the readiness override: a true verdict forces a
// new plan no matter what the model answered. Only the action label
// and rationale change, the plan content is passed through untouched.
func reconcile(verdict readiness.Verdict, update *genai.PlanUpdate) (action, rationale string) {
	action = update.Action
	rationale = update.Rationale
	if verdict.ReadyForNextPhase && action != genai.ActionGenerateNewPlan {
		action = genai.ActionGenerateNewPlan
		rationale = rationale + " " + overrideRationaleClause
	}
	return action, rationale
}

func clampWithDefault(v, min, max, def int) int {
	if v == 0 {
		v = def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

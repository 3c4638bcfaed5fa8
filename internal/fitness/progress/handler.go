// Package progress serves the derived progress view: both lookback
// summaries, recomputed on demand and cached briefly per user.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mkovacek/fitplan/internal/auth"
	"github.com/mkovacek/fitplan/internal/fitness/adapt"
	"github.com/mkovacek/fitplan/internal/fitness/bodymetrics"
	"github.com/mkovacek/fitplan/internal/fitness/goals"
	"github.com/mkovacek/fitplan/internal/fitness/workoutlog"
	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
	"github.com/mkovacek/fitplan/pkg"
)

const cacheSizeBytes = 10 * 1024 * 1024

type goalsRepo interface {
	GetActive(ctx context.Context, userID string) (*goals.Goal, error)
}

type workoutLogRepo interface {
	ListInWindow(ctx context.Context, userID string, from, to time.Time) ([]workoutlog.Entry, error)
}

type bodyMetricsRepo interface {
	ListInWindow(ctx context.Context, userID string, from, to time.Time) ([]bodymetrics.Entry, error)
}

type Summary struct {
	WorkoutSummary    workoutlog.Summary  `json:"workoutSummary"`
	BodyMetricSummary bodymetrics.Summary `json:"bodyMetricSummary"`
	LookbackMonths    int                 `json:"lookbackMonths"`
}

type Handler struct {
	goals       goalsRepo
	workoutLogs workoutLogRepo
	bodyMetrics bodyMetricsRepo
	analyzer    *workoutlog.Analyzer
	cache       *freecache.Cache
	cacheTTL    time.Duration
}

func NewHandler(
	goals goalsRepo,
	workoutLogs workoutLogRepo,
	bodyMetrics bodyMetricsRepo,
	cacheTTL time.Duration,
) *Handler {
	return &Handler{
		goals:       goals,
		workoutLogs: workoutLogs,
		bodyMetrics: bodyMetrics,
		analyzer:    workoutlog.NewAnalyzer(adapt.LookbackMonths),
		cache:       freecache.NewCache(cacheSizeBytes),
		cacheTTL:    cacheTTL,
	}
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.summary")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	cacheKey := []byte("progress-summary||" + userID)
	if cached, err := handler.cache.Get(cacheKey); err == nil {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	summary, err := handler.computeSummary(ctx, userID)
	if err != nil {
		log.Errorf("progress summary for user %s: %s", userID, err)
		http.Error(w, "failed to get progress summary", http.StatusInternalServerError)
		return
	}

	summaryJson, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("marshal progress summary: %s", err)
		http.Error(w, "failed to get progress summary", http.StatusInternalServerError)
		return
	}

	if err := handler.cache.Set(cacheKey, summaryJson, int(handler.cacheTTL.Seconds())); err != nil {
		// serve uncached, caching is best effort
		log.Warnf("cache progress summary for user %s: %s", userID, err)
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, summaryJson)
}

func (handler *Handler) computeSummary(ctx context.Context, userID string) (*Summary, error) {
	now := time.Now()
	from := now.AddDate(0, -adapt.LookbackMonths, 0)

	var (
		goal    *goals.Goal
		logs    []workoutlog.Entry
		entries []bodymetrics.Entry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		activeGoal, err := handler.goals.GetActive(gctx, userID)
		if errors.Is(err, goals.ErrNoActiveGoal) {
			return nil
		}
		goal = activeGoal
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = handler.workoutLogs.ListInWindow(gctx, userID, from, now)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = handler.bodyMetrics.ListInWindow(gctx, userID, from, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	daysPerWeek := 0
	if goal != nil {
		daysPerWeek = goal.DaysPerWeek
	}

	return &Summary{
		WorkoutSummary:    handler.analyzer.Summarize(logs, daysPerWeek),
		BodyMetricSummary: bodymetrics.Summarize(entries),
		LookbackMonths:    adapt.LookbackMonths,
	}, nil
}

package plans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/mkovacek/fitplan/internal/auth"
	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
	"github.com/mkovacek/fitplan/pkg"
)

type plansRepo interface {
	GetActive(ctx context.Context, userID string) (*Plan, error)
	Timeline(ctx context.Context, userID string) ([]Plan, error)
	Create(ctx context.Context, plan Plan) (*Plan, error)
}

type TimelineResponse struct {
	Plans []Plan `json:"plans"`
	Total int    `json:"total"`
}

type Handler struct {
	repo plansRepo
}

func NewHandler(repo plansRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.getActive")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	plan, err := handler.repo.GetActive(ctx, userID)
	if errors.Is(err, ErrNoActivePlan) {
		http.Error(w, "no active plan", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get active plan for user %s: %s", userID, err)
		http.Error(w, "failed to get plan", http.StatusInternalServerError)
		return
	}

	planJson, err := json.Marshal(plan)
	if err != nil {
		log.Errorf("marshal plan: %s", err)
		http.Error(w, "failed to get plan", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(planJson))
}

func (handler *Handler) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.timeline")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	timeline, err := handler.repo.Timeline(ctx, userID)
	if err != nil {
		log.Errorf("get plan timeline for user %s: %s", userID, err)
		http.Error(w, "failed to get plan timeline", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(TimelineResponse{
		Plans: timeline,
		Total: len(timeline),
	})
	if err != nil {
		log.Errorf("marshal plan timeline: %s", err)
		http.Error(w, "failed to get plan timeline", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(respJson))
}

// HandleApply persists a plan structure previously returned by the
// adaptation or generation flow. Persistence is deliberately a separate
// request, the client confirms the proposed plan first.
func (handler *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.apply")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var plan Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		log.Tracef("apply plan, unmarshal json params: %s", err)
		http.Error(w, "apply plan failed", http.StatusBadRequest)
		return
	}

	if plan.Name == "" || len(plan.Days) == 0 {
		http.Error(w, "error, plan name or days empty", http.StatusBadRequest)
		return
	}
	for _, day := range plan.Days {
		if day.Name == "" || len(day.Exercises) == 0 {
			http.Error(w, "error, plan day incomplete", http.StatusBadRequest)
			return
		}
	}
	if plan.WeekNumber < 1 {
		plan.WeekNumber = 1
	}

	plan.UserID = userID
	createdPlan, err := handler.repo.Create(ctx, plan)
	if errors.Is(err, ErrPlanConflict) {
		http.Error(w, "plan changed concurrently, try again", http.StatusConflict)
		return
	}
	if err != nil {
		log.Errorf("apply plan for user %s: %s", userID, err)
		http.Error(w, "apply plan failed", http.StatusInternalServerError)
		return
	}

	planJson, err := json.Marshal(createdPlan)
	if err != nil {
		log.Errorf("marshal applied plan: %s", err)
		http.Error(w, "apply plan failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, planJson, http.StatusCreated)
}

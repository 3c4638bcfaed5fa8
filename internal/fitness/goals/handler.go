package goals

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

type goalsRepo interface {
	GetActive(ctx context.Context, userID string) (*Goal, error)
	Create(ctx context.Context, goal Goal) (*Goal, error)
}

type Handler struct {
	repo goalsRepo
}

func NewHandler(repo goalsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.getActive")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	goal, err := handler.repo.GetActive(ctx, userID)
	if errors.Is(err, ErrNoActiveGoal) {
		http.Error(w, "no active goal", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get active goal for user %s: %s", userID, err)
		http.Error(w, "failed to get goal", http.StatusInternalServerError)
		return
	}

	goalJson, err := json.Marshal(goal)
	if err != nil {
		log.Errorf("marshal goal: %s", err)
		http.Error(w, "failed to get goal", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(goalJson))
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.create")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var goal Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Tracef("create goal, unmarshal json params: %s", err)
		http.Error(w, "create goal failed", http.StatusBadRequest)
		return
	}

	if !goal.Type.Valid() {
		http.Error(w, "error, invalid goal type", http.StatusBadRequest)
		return
	}
	if goal.DaysPerWeek < 1 || goal.DaysPerWeek > 7 {
		http.Error(w, "error, invalid days per week", http.StatusBadRequest)
		return
	}
	if goal.SessionDurationMinutes < 10 || goal.SessionDurationMinutes > 240 {
		http.Error(w, "error, invalid session duration", http.StatusBadRequest)
		return
	}

	goal.UserID = userID
	createdGoal, err := handler.repo.Create(ctx, goal)
	if errors.Is(err, ErrGoalConflict) {
		http.Error(w, "goal changed concurrently, try again", http.StatusConflict)
		return
	}
	if err != nil {
		log.Errorf("create goal for user %s: %s", userID, err)
		http.Error(w, "create goal failed", http.StatusInternalServerError)
		return
	}

	goalJson, err := json.Marshal(createdGoal)
	if err != nil {
		log.Errorf("marshal created goal: %s", err)
		http.Error(w, "create goal failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, goalJson, http.StatusCreated)
}

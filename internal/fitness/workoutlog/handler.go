package workoutlog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mkovacek/fitplan/internal/auth"
	"github.com/mkovacek/fitplan/internal/telemetry/metrics"
	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
	"github.com/mkovacek/fitplan/pkg"
)

type workoutLogRepo interface {
	Add(ctx context.Context, entry Entry) (*Entry, error)
	ListInWindow(ctx context.Context, userID string, from, to time.Time) ([]Entry, error)
}

type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

type Handler struct {
	repo           workoutLogRepo
	lookbackMonths int
	metricsManager *metrics.Manager
}

func NewHandler(repo workoutLogRepo, lookbackMonths int, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		lookbackMonths: lookbackMonths,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("add workout log, unmarshal json params: %s", err)
		http.Error(w, "add workout log failed", http.StatusBadRequest)
		return
	}

	if len(entry.Exercises) == 0 {
		http.Error(w, "error, no exercises logged", http.StatusBadRequest)
		return
	}
	if d := entry.DifficultyRating; d != nil {
		if rating, ok := d.(float64); ok && (rating < 1 || rating > 5) {
			http.Error(w, "error, difficulty rating out of range", http.StatusBadRequest)
			return
		}
	}

	entry.UserID = userID
	addedEntry, err := handler.repo.Add(ctx, entry)
	if errors.Is(err, ErrUnknownUser) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("add workout log for user %s: %s", userID, err)
		http.Error(w, "add workout log failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterWorkoutLogs.Inc()

	entryJson, err := json.Marshal(addedEntry)
	if err != nil {
		log.Errorf("marshal workout log entry: %s", err)
		http.Error(w, "add workout log failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	entries, err := handler.repo.ListInWindow(ctx, userID, now.AddDate(0, -handler.lookbackMonths, 0), now)
	if err != nil {
		log.Errorf("list workout logs for user %s: %s", userID, err)
		http.Error(w, "failed to list workout logs", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{
		Entries: entries,
		Total:   len(entries),
	})
	if err != nil {
		log.Errorf("marshal workout logs: %s", err)
		http.Error(w, "failed to list workout logs", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(respJson))
}

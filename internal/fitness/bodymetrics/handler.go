package bodymetrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mkovacek/fitplan/internal/auth"
	"github.com/mkovacek/fitplan/internal/fitness/norm"
	"github.com/mkovacek/fitplan/internal/telemetry/metrics"
	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
	"github.com/mkovacek/fitplan/pkg"
)

type bodyMetricsRepo interface {
	Add(ctx context.Context, entry Entry) (*Entry, error)
	ListInWindow(ctx context.Context, userID string, from, to time.Time) ([]Entry, error)
}

type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

type Handler struct {
	repo           bodyMetricsRepo
	lookbackMonths int
	metricsManager *metrics.Manager
}

func NewHandler(repo bodyMetricsRepo, lookbackMonths int, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		lookbackMonths: lookbackMonths,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodymetrics.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("add body metric, unmarshal json params: %s", err)
		http.Error(w, "add body metric failed", http.StatusBadRequest)
		return
	}

	// at least one dimension must carry a usable value
	if norm.Float(entry.WeightKg) == nil && norm.Float(entry.BodyFatPct) == nil &&
		norm.Float(entry.ChestCm) == nil && norm.Float(entry.WaistCm) == nil &&
		norm.Float(entry.HipsCm) == nil && norm.Float(entry.BicepCm) == nil &&
		norm.Float(entry.ThighCm) == nil {
		http.Error(w, "error, no measurable values", http.StatusBadRequest)
		return
	}

	entry.UserID = userID
	addedEntry, err := handler.repo.Add(ctx, entry)
	if errors.Is(err, ErrUnknownUser) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("add body metric for user %s: %s", userID, err)
		http.Error(w, "add body metric failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterBodyMetricEntries.Inc()

	entryJson, err := json.Marshal(addedEntry)
	if err != nil {
		log.Errorf("marshal body metric entry: %s", err)
		http.Error(w, "add body metric failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodymetrics.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	entries, err := handler.repo.ListInWindow(ctx, userID, now.AddDate(0, -handler.lookbackMonths, 0), now)
	if err != nil {
		log.Errorf("list body metrics for user %s: %s", userID, err)
		http.Error(w, "failed to list body metrics", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{
		Entries: entries,
		Total:   len(entries),
	})
	if err != nil {
		log.Errorf("marshal body metrics: %s", err)
		http.Error(w, "failed to list body metrics", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(respJson))
}

package adapt

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/mkovacek/fitplan/internal/auth"
	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
	"github.com/mkovacek/fitplan/pkg"
)

const maxFeedbackChars = 1000

type UpdatePlanRequest struct {
	Feedback string `json:"feedback"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.adapt.updatePlan")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req UpdatePlanRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Tracef("update plan, unmarshal json params: %s", err)
			http.Error(w, "invalid request payload", http.StatusBadRequest)
			return
		}
	}

	feedback := strings.TrimSpace(req.Feedback)
	if utf8.RuneCountInString(feedback) > maxFeedbackChars {
		http.Error(w, "error, feedback too long", http.StatusBadRequest)
		return
	}

	result, err := handler.service.AssessAndUpdatePlan(ctx, userID, feedback)
	if errors.Is(err, ErrPreconditionNotMet) {
		http.Error(w, "an active goal and active plan are required", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("update plan for user %s: %s", userID, err)
		http.Error(w, "failed to update plan", http.StatusInternalServerError)
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("marshal plan update result: %s", err)
		http.Error(w, "failed to update plan", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(resultJson))
}

func (handler *Handler) HandleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.adapt.generatePlan")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	plan, err := handler.service.GenerateInitialPlan(ctx, userID)
	if errors.Is(err, ErrPreconditionNotMet) {
		http.Error(w, "an active goal is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("generate plan for user %s: %s", userID, err)
		http.Error(w, "failed to generate plan", http.StatusInternalServerError)
		return
	}

	planJson, err := json.Marshal(plan)
	if err != nil {
		log.Errorf("marshal generated plan: %s", err)
		http.Error(w, "failed to generate plan", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(planJson))
}

package profiles

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

type profilesRepo interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, profile Profile) error
}

type Handler struct {
	repo                   profilesRepo
	defaultExperienceLevel string
}

func NewHandler(repo profilesRepo, defaultExperienceLevel string) *Handler {
	return &Handler{
		repo:                   repo,
		defaultExperienceLevel: defaultExperienceLevel,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	profile, err := handler.repo.GetByUserID(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		// a user without a saved profile gets the defaults
		profile = &Profile{
			UserID:          userID,
			ExperienceLevel: handler.defaultExperienceLevel,
		}
	} else if err != nil {
		log.Errorf("get profile for user %s: %s", userID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("marshal profile: %s", err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(profileJson))
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.update")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var profile Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Tracef("update profile, unmarshal json params: %s", err)
		http.Error(w, "update profile failed", http.StatusBadRequest)
		return
	}

	if profile.ExperienceLevel == "" {
		profile.ExperienceLevel = handler.defaultExperienceLevel
	}
	if !ValidExperienceLevel(profile.ExperienceLevel) {
		http.Error(w, "error, invalid experience level", http.StatusBadRequest)
		return
	}
	if profile.HeightCm != nil && (*profile.HeightCm < 50 || *profile.HeightCm > 280) {
		http.Error(w, "error, invalid height", http.StatusBadRequest)
		return
	}

	profile.UserID = userID
	if err := handler.repo.Upsert(ctx, profile); err != nil {
		log.Errorf("update profile for user %s: %s", userID, err)
		http.Error(w, "update profile failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "updated")
}

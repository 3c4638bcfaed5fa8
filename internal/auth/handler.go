package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
	"github.com/mkovacek/fitplan/pkg"
)

type Handler struct {
	authService *Service
}

func NewHandler(authService *Service) *Handler {
	return &Handler{
		authService: authService,
	}
}

// SetupRoutes registers the login and logout endpoints on the given
// router. Rate limiting on these routes is wired by the caller.
func (handler *Handler) SetupRoutes(authRouter *mux.Router) {
	authRouter.HandleFunc("/login", handler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/logout", handler.HandleLogout).Methods("GET", "OPTIONS").Name("logout")
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var loginReq loginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Errorf("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	if loginReq.Username == "" || loginReq.Password == "" {
		http.Error(w, "error, username or password empty", http.StatusBadRequest)
		return
	}

	token, err := handler.authService.Login(ctx, loginReq.Username, loginReq.Password, time.Now())
	if errors.Is(err, ErrInvalidCredentials) {
		reqIp, _ := pkg.ReadUserIP(r)
		log.Warnf("failed login attempt for user [%s] from %s", loginReq.Username, reqIp)
		http.Error(w, "login failed", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("login failed for user [%s]: %s", loginReq.Username, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	loginRespJson, err := json.Marshal(LoginResponse{Token: token})
	if err != nil {
		log.Errorf("failed to marshal login response: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, loginRespJson)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := r.Header.Get("X-FITPLAN-TOKEN")
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.authService.Logout(ctx, token)
	if err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/mkovacek/fitplan/internal/auth"
	"github.com/mkovacek/fitplan/internal/config"
	"github.com/mkovacek/fitplan/internal/db"
	"github.com/mkovacek/fitplan/internal/fitness/adapt"
	"github.com/mkovacek/fitplan/internal/fitness/bodymetrics"
	"github.com/mkovacek/fitplan/internal/fitness/genai"
	"github.com/mkovacek/fitplan/internal/fitness/goals"
	"github.com/mkovacek/fitplan/internal/fitness/plans"
	"github.com/mkovacek/fitplan/internal/fitness/profiles"
	"github.com/mkovacek/fitplan/internal/fitness/progress"
	"github.com/mkovacek/fitplan/internal/fitness/workoutlog"
	"github.com/mkovacek/fitplan/internal/middleware"
	"github.com/mkovacek/fitplan/internal/telemetry/metrics"
	"github.com/mkovacek/fitplan/internal/telemetry/tracing"
	"github.com/mkovacek/fitplan/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient    *redis.Client
	authService    *auth.Service
	sessionChecker *auth.SessionChecker

	planGenerator *genai.GeminiGenerator
	adaptService  *adapt.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config         *config.Config
	GeminiAPIKey   string
	RedisPassword  string
	VersionInfo    string
	TracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fitplan", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewService(auth.NewUsersRepo(dbPool), auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	otelShutdown, err := tracing.Setup(params.TracingEnabled, "fitplan-backend")
	if err != nil {
		return nil, err
	}

	planGenerator, err := genai.NewGeminiGenerator(
		ctx,
		params.GeminiAPIKey,
		params.Config.GeminiModel,
		metricsManager,
	)
	if err != nil {
		return nil, fmt.Errorf("new plan generator: %w", err)
	}

	adaptService := adapt.NewService(adapt.NewServiceParams{
		Goals:       goals.NewRepo(dbPool),
		Plans:       plans.NewRepo(dbPool),
		Profiles:    profiles.NewRepo(dbPool),
		WorkoutLogs: workoutlog.NewRepo(dbPool),
		BodyMetrics: bodymetrics.NewRepo(dbPool),
		Generator:   planGenerator,
		Defaults: adapt.Defaults{
			CurrentWeightKg: params.Config.DefaultCurrentWeightKg,
			ExperienceLevel: params.Config.DefaultExperienceLevel,
		},
		MetricsManager: metricsManager,
	})

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:    rdb,
		authService:    authService,
		sessionChecker: auth.NewSessionChecker(auth.DefaultTTL, rdb),

		planGenerator: planGenerator,
		adaptService:  adaptService,

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	authHandler := auth.NewHandler(s.authService)
	authRouter := r.PathPrefix("/a").Subrouter()
	authHandler.SetupRoutes(authRouter)
	// rate limit the /login and /logout endpoints to prevent abuse
	authRouter.Use(middleware.RateLimit(reqRateLimiter, "login", s.config.LoginRateLimitAllowedPerMin, s.metricsManager))

	profilesHandler := profiles.NewHandler(
		profiles.NewRepo(s.dbPool),
		s.config.DefaultExperienceLevel,
	)
	r.HandleFunc("/profile", profilesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile", profilesHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-profile")

	goalsHandler := goals.NewHandler(goals.NewRepo(s.dbPool))
	r.HandleFunc("/goal", goalsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-goal")
	r.HandleFunc("/goal/active", goalsHandler.HandleGetActive).Methods("GET", "OPTIONS").Name("get-active-goal")

	plansHandler := plans.NewHandler(plans.NewRepo(s.dbPool))
	r.HandleFunc("/plan/active", plansHandler.HandleGetActive).Methods("GET", "OPTIONS").Name("get-active-plan")
	r.HandleFunc("/plan/timeline", plansHandler.HandleTimeline).Methods("GET", "OPTIONS").Name("plan-timeline")
	r.HandleFunc("/plan/apply", plansHandler.HandleApply).Methods("POST", "OPTIONS").Name("apply-plan")

	workoutLogHandler := workoutlog.NewHandler(
		workoutlog.NewRepo(s.dbPool),
		adapt.LookbackMonths,
		s.metricsManager,
	)
	r.HandleFunc("/workoutlog", workoutLogHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-workout-log")
	r.HandleFunc("/workoutlog", workoutLogHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workout-logs")

	bodyMetricsHandler := bodymetrics.NewHandler(
		bodymetrics.NewRepo(s.dbPool),
		adapt.LookbackMonths,
		s.metricsManager,
	)
	r.HandleFunc("/bodymetrics", bodyMetricsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-body-metric")
	r.HandleFunc("/bodymetrics", bodyMetricsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-body-metrics")

	progressHandler := progress.NewHandler(
		goals.NewRepo(s.dbPool),
		workoutlog.NewRepo(s.dbPool),
		bodymetrics.NewRepo(s.dbPool),
		time.Duration(s.config.ProgressCacheTTLSeconds)*time.Second,
	)
	r.HandleFunc("/progress/summary", progressHandler.HandleSummary).Methods("GET", "OPTIONS").Name("progress-summary")

	adaptHandler := adapt.NewHandler(s.adaptService)
	adaptRouter := r.PathPrefix("/plan").Subrouter()
	adaptRouter.HandleFunc("/adapt", adaptHandler.HandleUpdatePlan).Methods("POST", "OPTIONS").Name("adapt-plan")
	adaptRouter.HandleFunc("/generate", adaptHandler.HandleGeneratePlan).Methods("POST", "OPTIONS").Name("generate-plan")
	adaptRouter.Use(middleware.RateLimit(reqRateLimiter, "plan-adapt", s.config.PlanAdaptRateLimitAllowedPerMin, s.metricsManager))

	r.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "pong")
	}).Methods("GET", "OPTIONS").Name("ping")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET", "OPTIONS").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.sessionChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.planGenerator != nil {
		if err := s.planGenerator.Close(); err != nil {
			log.Errorf("failed to close plan generator client: %s", err)
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}

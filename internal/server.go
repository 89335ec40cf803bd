package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/pachgroup/pachsite/internal/admin"
	"github.com/pachgroup/pachsite/internal/auth"
	"github.com/pachgroup/pachsite/internal/config"
	"github.com/pachgroup/pachsite/internal/contact"
	"github.com/pachgroup/pachsite/internal/db"
	"github.com/pachgroup/pachsite/internal/deals"
	"github.com/pachgroup/pachsite/internal/middleware"
	"github.com/pachgroup/pachsite/internal/misc"
	"github.com/pachgroup/pachsite/internal/properties"
	"github.com/pachgroup/pachsite/internal/rating"
	"github.com/pachgroup/pachsite/internal/resource"
	"github.com/pachgroup/pachsite/internal/store"
	"github.com/pachgroup/pachsite/internal/telemetry/metrics"
	"github.com/pachgroup/pachsite/internal/telemetry/tracing"
	"github.com/pachgroup/pachsite/internal/testimonials"
	"github.com/pachgroup/pachsite/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// tables the handlers read; their columns are introspected once at startup
var storeTables = []string{"properties", "deals", "testimonials"}

const contactAllowedPerMin = 5

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config       *config.Config
	dbPool       *pgxpool.Pool
	capabilities *store.Capabilities
	redisClient  *redis.Client

	admin        *auth.Admin
	tokenManager *auth.TokenManager

	listCache   *resource.ListCache
	ratingApi   *rating.Client
	ratingCache *rating.Cache
	notifier    *contact.TelegramNotifier

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	AdminUsername           string
	AdminPassword           string
	AdminPasswordHash       string
	JWTSecret               string
	PostgresPassword        string
	RedisPassword           string
	DGISApiKey              string
	TelegramBotToken        string
	TelegramChatIDs         string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	tokenManager, err := auth.NewTokenManager(params.JWTSecret, auth.SessionTTL, nil)
	if err != nil {
		return nil, fmt.Errorf("session tokens: %w", err)
	}

	adminUsername, adminPassword := params.AdminUsername, params.AdminPassword
	if adminUsername == "" {
		log.Warnf("admin username not set, using default [%s]", auth.DefaultAdminUsername)
		adminUsername = auth.DefaultAdminUsername
	}
	if adminPassword == "" && params.AdminPasswordHash == "" {
		if params.Config.IsProduction() {
			return nil, errors.New("admin password not set in production, use ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
		}
		log.Warnln("admin password not set, using the development default")
		adminPassword = auth.DefaultAdminPassword
	}

	var (
		dbPool       *pgxpool.Pool
		capabilities = store.UnknownCapabilities()
		collectors   []prometheus.Collector
	)
	if params.Config.StoreConfigured() {
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         params.Config.PostgresHost,
			DBPort:         params.Config.PostgresPort,
			DBName:         params.Config.PostgresDBName,
			DBUser:         params.Config.PostgresUser,
			DBPassword:     params.PostgresPassword,
			SSLMode:        params.Config.PostgresSSLMode,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}

		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		if caps, err := store.Introspect(ctx, dbPool, storeTables...); err != nil {
			log.Warnf("store capabilities unknown, relying on undefined column errors: %s", err)
		} else {
			capabilities = caps
			for _, table := range storeTables {
				log.Debugf("store table [%s] columns: %v", table, caps.Columns(table))
			}
		}

		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": params.Config.PostgresDBName},
		))
	} else {
		log.Warnln("postgres host not set, running without a store: lists are empty and writes answer 503")
	}

	promRegistry, err := metrics.SetupPrometheus(collectors...)
	if err != nil {
		return nil, fmt.Errorf("setup prometheus: %w", err)
	}
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	var rdb *redis.Client
	if params.Config.RedisConfigured() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		if params.HoneycombTracingEnabled {
			rdb.AddHook(redisotel.NewTracingHook())
		}

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	} else {
		log.Warnln("redis host not set, login is not rate limited")
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   15 * time.Second,
	}

	chatIDs := contact.ParseChatIDs(params.TelegramChatIDs)
	if params.TelegramBotToken == "" || len(chatIDs) == 0 {
		log.Errorf("telegram not configured, contact form is unavailable. use TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
	}
	if params.DGISApiKey == "" {
		log.Errorf("2gis api key not set, rating is unavailable. use DGIS_API_KEY")
	}

	return &Server{
		config:       params.Config,
		versionInfo:  params.VersionInfo,
		dbPool:       dbPool,
		capabilities: capabilities,
		redisClient:  rdb,

		admin:        auth.NewAdmin(adminUsername, adminPassword, params.AdminPasswordHash),
		tokenManager: tokenManager,

		listCache: resource.NewListCache(params.Config.ListCacheSizeMB, params.Config.ListCacheTTLSeconds),
		ratingApi: rating.NewClient(
			tracedHttpClient,
			params.Config.RatingApiURL,
			params.DGISApiKey,
			params.Config.RatingBranchID,
			params.Config.RatingReviewsURL,
		),
		ratingCache: rating.NewCache(time.Duration(params.Config.RatingCacheTTLMinutes)*time.Minute, nil),
		notifier: contact.NewTelegramNotifier(
			tracedHttpClient,
			params.Config.TelegramApiURL,
			params.TelegramBotToken,
			chatIDs,
			metricsManager,
		),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	requireSession := middleware.RequireSession(s.tokenManager)

	properties.NewHandler(
		properties.NewRepo(s.dbPool, s.capabilities),
		s.listCache,
		s.metricsManager,
	).SetupRoutes(r, requireSession)

	deals.NewHandler(
		deals.NewRepo(s.dbPool, s.capabilities),
		s.listCache,
		s.metricsManager,
	).SetupRoutes(r, requireSession)

	testimonials.NewHandler(
		testimonials.NewRepo(s.dbPool),
		s.listCache,
		s.metricsManager,
	).SetupRoutes(r, requireSession)

	// nil limiter disables rate limiting; keep the interface nil, not a typed nil
	var reqRateLimiter middleware.RequestRateLimiter
	if s.redisClient != nil {
		reqRateLimiter = redis_rate.NewLimiter(s.redisClient)
	}

	admin.NewHandler(
		s.admin,
		s.tokenManager,
		s.config.AdminPagesDir,
		s.config.SecureCookies,
		s.metricsManager,
	).SetupRoutes(r, reqRateLimiter, s.config.LoginRateLimitAllowedPerMin, s.config.TrustProxyHeaders)

	rating.NewHandler(s.ratingApi, s.ratingCache, s.metricsManager).SetupRoutes(r)

	contact.NewHandler(s.notifier, nil).SetupRoutes(r, reqRateLimiter, contactAllowedPerMin, s.config.TrustProxyHeaders, s.metricsManager)

	// interface values stay nil when the dependency is not configured
	var dbPinger interface {
		Ping(ctx context.Context) error
	}
	if s.dbPool != nil {
		dbPinger = s.dbPool
	}
	misc.NewHandler(s.versionInfo, dbPinger, s.redisClient).SetupRoutes(r)

	// all the rest - unhandled paths
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, http.StatusNotFound, "not found")
	}).Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
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
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
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

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the dependencies go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

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

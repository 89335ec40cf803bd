package misc

import (
	"context"
	"net/http"
	"time"

	"github.com/pachgroup/pachsite/internal/telemetry/tracing"
	"github.com/pachgroup/pachsite/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=misc_test

const healthCheckTimeout = 2 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	versionInfo string
	db          dbPinger
	redisClient *redis.Client
}

// NewHandler builds the service endpoints. db and redisClient are optional;
// a missing dependency is reported as "disabled" by the health check.
func NewHandler(versionInfo string, db dbPinger, redisClient *redis.Client) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		db:          db,
		redisClient: redisClient,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")
	mainRouter.HandleFunc("/api/health", handler.handleHealth).Methods("GET").Name("api-health")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteResponse(w, pkg.ContentTypeText, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteResponse(w, pkg.ContentTypeText, handler.versionInfo)
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	Version  string `json:"version"`
}

// handleHealth pings the configured dependencies. The service is degraded,
// not down, when one of them fails: the public lists still answer.
func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.Start(r.Context(), "miscHandler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	resp := healthResponse{
		Status:   "ok",
		Database: "disabled",
		Redis:    "disabled",
		Version:  handler.versionInfo,
	}

	if handler.db != nil {
		resp.Database = "ok"
		if err := handler.db.Ping(ctx); err != nil {
			log.Errorf("health: db ping: %s", err)
			resp.Database = "error"
			resp.Status = "degraded"
		}
	}

	if handler.redisClient != nil {
		resp.Redis = "ok"
		if err := handler.redisClient.Ping(ctx).Err(); err != nil {
			log.Errorf("health: redis ping: %s", err)
			resp.Redis = "error"
			resp.Status = "degraded"
		}
	}

	span.SetAttributes(attribute.String("health.status", resp.Status))
	pkg.WriteJSON(w, http.StatusOK, resp)
}

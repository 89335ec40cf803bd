package contact

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/pachgroup/pachsite/internal/middleware"
	"github.com/pachgroup/pachsite/internal/telemetry/metrics"
	"github.com/pachgroup/pachsite/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=contact_test

type notifier interface {
	Configured() bool
	Notify(ctx context.Context, text string) error
}

type Handler struct {
	notifier notifier
	now      func() time.Time
}

func NewHandler(notifier notifier, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		notifier: notifier,
		now:      now,
	}
}

// SetupRoutes registers the contact form endpoint. A nil rateLimiter leaves it unthrottled.
func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	trustProxyHeaders bool,
	metricsManager *metrics.Manager,
) {
	var h http.Handler = http.HandlerFunc(handler.handleContact)
	if rateLimiter != nil {
		h = middleware.RateLimit(rateLimiter, "contact", allowedPerMin, trustProxyHeaders, metricsManager)(h)
	}
	router.Handle("/api/contact", h).Methods("POST", "OPTIONS").Name("contact")
}

func (handler *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := pkg.DecodeJSON(w, r, &req); err != nil {
		log.Debugf("contact form: decode: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "Имя и телефон обязательны")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Comment = strings.TrimSpace(req.Comment)
	if req.Name == "" || req.Phone == "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "Имя и телефон обязательны")
		return
	}

	if !handler.notifier.Configured() {
		log.Error("contact form: telegram credentials not configured")
		pkg.WriteJSONError(w, http.StatusInternalServerError, "Сервис временно недоступен")
		return
	}

	if err := handler.notifier.Notify(r.Context(), FormatMessage(req, handler.now())); err != nil {
		if errors.Is(err, ErrNotConfigured) {
			pkg.WriteJSONError(w, http.StatusInternalServerError, "Сервис временно недоступен")
			return
		}
		log.Errorf("contact form: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "Ошибка отправки сообщения")
		return
	}

	log.Printf("contact request delivered for %s", req.Name)
	pkg.WriteJSONSuccess(w)
}

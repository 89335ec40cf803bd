package rating

import (
	"context"
	"errors"
	"net/http"

	"github.com/pachgroup/pachsite/internal/telemetry/metrics"
	"github.com/pachgroup/pachsite/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=rating_test

const (
	cacheControlFresh = "public, s-maxage=3600, stale-while-revalidate=600"
	cacheControlStale = "public, s-maxage=3600"
	apiKeyHint        = "Set DGIS_API_KEY in the environment. Keys are issued at https://platform.2gis.ru/"
)

type ratingFetcher interface {
	Configured() bool
	Fetch(ctx context.Context) (*Rating, error)
}

type Handler struct {
	client         ratingFetcher
	cache          *Cache
	metricsManager *metrics.Manager
}

func NewHandler(client ratingFetcher, cache *Cache, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		client:         client,
		cache:          cache,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/rating", handler.handleGetRating).Methods("GET", "OPTIONS").Name("rating")
	router.HandleFunc("/api/2gis-rating", handler.handleGetRating).Methods("GET", "OPTIONS").Name("rating-2gis")
}

type ratingResponse struct {
	Rating
	Warning string `json:"warning,omitempty"`
}

type ratingError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func (handler *Handler) handleGetRating(w http.ResponseWriter, r *http.Request) {
	if !handler.client.Configured() {
		pkg.WriteJSON(w, http.StatusInternalServerError, ratingError{
			Error: ErrMissingApiKey.Error(),
			Hint:  apiKeyHint,
		})
		return
	}

	if cached, fresh, ok := handler.cache.Get(); ok && fresh {
		handler.countCache("hit")
		handler.write(w, "HIT", cacheControlFresh, ratingResponse{Rating: cached})
		return
	}

	fetched, err := handler.client.Fetch(r.Context())
	if err == nil {
		handler.cache.Set(*fetched)
		handler.countCache("miss")
		handler.write(w, "MISS", cacheControlFresh, ratingResponse{Rating: *fetched})
		return
	}

	log.Errorf("get 2gis rating: %s", err)

	if cached, _, ok := handler.cache.Get(); ok {
		handler.countCache("stale")
		handler.write(w, "STALE", cacheControlStale, ratingResponse{
			Rating:  cached,
			Warning: staleWarning(err),
		})
		return
	}

	handler.countCache("error")
	var upstreamErr *UpstreamError
	switch {
	case errors.As(err, &upstreamErr):
		pkg.WriteJSON(w, upstreamErr.StatusCode, ratingError{
			Error:   "Failed to fetch data from 2GIS API",
			Details: upstreamErr.Error(),
			Hint:    "Check the API key and the branch id",
		})
	case errors.Is(err, ErrInvalidPayload):
		pkg.WriteJSON(w, http.StatusInternalServerError, ratingError{
			Error:   ErrInvalidPayload.Error(),
			Details: "No items found in response",
			Hint:    "Check if the branch id is correct",
		})
	default:
		pkg.WriteJSON(w, http.StatusInternalServerError, ratingError{
			Error:   "Internal server error",
			Details: err.Error(),
		})
	}
}

func staleWarning(err error) string {
	var upstreamErr *UpstreamError
	switch {
	case errors.As(err, &upstreamErr):
		return "Using cached data due to API error"
	case errors.Is(err, ErrInvalidPayload):
		return "Using cached data due to invalid API response"
	default:
		return "Using cached data due to error"
	}
}

func (handler *Handler) write(w http.ResponseWriter, cacheState, cacheControl string, resp ratingResponse) {
	w.Header().Set("X-Cache", cacheState)
	w.Header().Set("Cache-Control", cacheControl)
	pkg.WriteJSON(w, http.StatusOK, resp)
}

func (handler *Handler) countCache(result string) {
	if handler.metricsManager == nil {
		return
	}
	handler.metricsManager.CounterRatingCache.WithLabelValues(result).Inc()
}

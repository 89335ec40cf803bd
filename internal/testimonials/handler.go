package testimonials

import (
	"context"
	"errors"
	"net/http"

	"github.com/pachgroup/pachsite/internal/resource"
	"github.com/pachgroup/pachsite/internal/telemetry/metrics"
	"github.com/pachgroup/pachsite/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=testimonials_test

const kind = "testimonials"

type testimonialsRepo interface {
	List(ctx context.Context) ([]Testimonial, error)
	Add(ctx context.Context, t *Testimonial) (*Testimonial, error)
	Update(ctx context.Context, t *Testimonial) (*Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type Handler struct {
	repo    testimonialsRepo
	cache   *resource.ListCache
	metrics *metrics.Manager
}

func NewHandler(repo testimonialsRepo, cache *resource.ListCache, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		cache:   cache,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router, requireSession func(http.Handler) http.Handler) {
	router.HandleFunc("/api/testimonials", handler.HandleList).Methods("GET", "OPTIONS").Name("list-testimonials")
	router.Handle("/api/testimonials", requireSession(http.HandlerFunc(handler.HandleCreate))).Methods("POST", "OPTIONS").Name("new-testimonial")
	router.Handle("/api/testimonials", requireSession(http.HandlerFunc(handler.HandleUpdate))).Methods("PUT", "OPTIONS").Name("update-testimonial")
	router.Handle("/api/testimonials", requireSession(http.HandlerFunc(handler.HandleDelete))).Methods("DELETE", "OPTIONS").Name("delete-testimonial")
	router.Handle("/api/testimonials/{id}", requireSession(http.HandlerFunc(handler.HandleUpdate))).Methods("PUT", "OPTIONS").Name("update-testimonial-by-id")
	router.Handle("/api/testimonials/{id}", requireSession(http.HandlerFunc(handler.HandleDelete))).Methods("DELETE", "OPTIONS").Name("delete-testimonial-by-id")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	resource.ServeList(w, r, handler.cache, kind, handler.repo.List)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := resource.DecodeRequest(w, r, &req); err != nil {
		resource.WriteError(w, "testimonial", "create", err)
		return
	}
	t, err := req.Validate()
	if err != nil {
		resource.WriteError(w, "testimonial", "create", err)
		return
	}

	created, err := handler.repo.Add(r.Context(), t)
	handler.metrics.RecordWrite(kind, "create", err)
	if err != nil {
		resource.WriteError(w, "testimonial", "create", err)
		return
	}

	handler.cache.Invalidate(kind)
	log.Printf("new testimonial added: [%s] from %s", created.ID, created.Initials)
	pkg.WriteJSON(w, http.StatusCreated, created)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := resource.ParseID(resource.IDFromRequest(r))
	if err != nil {
		resource.WriteError(w, "testimonial", "update", err)
		return
	}

	var req Request
	if err := resource.DecodeRequest(w, r, &req); err != nil {
		resource.WriteError(w, "testimonial", "update", err)
		return
	}
	t, err := req.Validate()
	if err != nil {
		resource.WriteError(w, "testimonial", "update", err)
		return
	}
	t.ID = id

	updated, err := handler.repo.Update(r.Context(), t)
	handler.metrics.RecordWrite(kind, "update", err)
	if errors.Is(err, ErrTestimonialNotFound) {
		pkg.WriteJSONError(w, http.StatusNotFound, "testimonial not found")
		return
	}
	if err != nil {
		resource.WriteError(w, "testimonial", "update", err)
		return
	}

	handler.cache.Invalidate(kind)
	pkg.WriteJSON(w, http.StatusOK, updated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := resource.ParseID(resource.IDFromRequest(r))
	if err != nil {
		resource.WriteError(w, "testimonial", "delete", err)
		return
	}

	if _, err := handler.repo.Delete(r.Context(), id); err != nil {
		handler.metrics.RecordWrite(kind, "delete", err)
		resource.WriteError(w, "testimonial", "delete", err)
		return
	}
	handler.metrics.RecordWrite(kind, "delete", nil)

	handler.cache.Invalidate(kind)
	pkg.WriteJSONSuccess(w)
}

package properties

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/pachgroup/pachsite/internal/resource"
	"github.com/pachgroup/pachsite/internal/store"
	"github.com/pachgroup/pachsite/internal/telemetry/metrics"
	"github.com/pachgroup/pachsite/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=properties_test

const kind = "properties"

type propertiesRepo interface {
	List(ctx context.Context) ([]Property, error)
	Add(ctx context.Context, p *Property, withImages bool) (*Property, error)
	Update(ctx context.Context, p *Property, withImages bool) (*Property, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type Handler struct {
	repo    propertiesRepo
	cache   *resource.ListCache
	metrics *metrics.Manager
}

func NewHandler(repo propertiesRepo, cache *resource.ListCache, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		cache:   cache,
		metrics: metricsManager,
	}
}

// SetupRoutes registers the public list and the admin write routes;
// requireSession guards the latter.
func (handler *Handler) SetupRoutes(router *mux.Router, requireSession func(http.Handler) http.Handler) {
	router.HandleFunc("/api/properties", handler.HandleList).Methods("GET", "OPTIONS").Name("list-properties")
	router.Handle("/api/properties", requireSession(http.HandlerFunc(handler.HandleCreate))).Methods("POST", "OPTIONS").Name("new-property")
	router.Handle("/api/properties", requireSession(http.HandlerFunc(handler.HandleUpdate))).Methods("PUT", "OPTIONS").Name("update-property")
	router.Handle("/api/properties", requireSession(http.HandlerFunc(handler.HandleDelete))).Methods("DELETE", "OPTIONS").Name("delete-property")
	router.Handle("/api/properties/{id}", requireSession(http.HandlerFunc(handler.HandleUpdate))).Methods("PUT", "OPTIONS").Name("update-property-by-id")
	router.Handle("/api/properties/{id}", requireSession(http.HandlerFunc(handler.HandleDelete))).Methods("DELETE", "OPTIONS").Name("delete-property-by-id")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	resource.ServeList(w, r, handler.cache, kind, handler.repo.List)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := resource.DecodeRequest(w, r, &req); err != nil {
		resource.WriteError(w, "property", "create", err)
		return
	}

	p, err := req.Validate()
	if err != nil {
		resource.WriteError(w, "property", "create", err)
		return
	}
	if p.Status == "" {
		p.Status = StatusSale
	}
	if p.ImageURL == "" {
		p.ImageURL, p.ImageURLs = resource.NormalizeImages(resource.DefaultPropertyImage, nil)
	}

	created, err := handler.save(r.Context(), p, handler.repo.Add)
	handler.metrics.RecordWrite(kind, "create", err)
	if err != nil {
		resource.WriteError(w, "property", "create", err)
		return
	}

	handler.cache.Invalidate(kind)
	log.Printf("new property added: [%s] %s", created.ID, created.Title)
	pkg.WriteJSON(w, http.StatusCreated, created)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := resource.ParseID(resource.IDFromRequest(r))
	if err != nil {
		resource.WriteError(w, "property", "update", err)
		return
	}

	var req Request
	if err := resource.DecodeRequest(w, r, &req); err != nil {
		resource.WriteError(w, "property", "update", err)
		return
	}

	p, err := req.Validate()
	if err != nil {
		resource.WriteError(w, "property", "update", err)
		return
	}
	p.ID = id

	updated, err := handler.save(r.Context(), p, handler.repo.Update)
	handler.metrics.RecordWrite(kind, "update", err)
	if errors.Is(err, ErrPropertyNotFound) {
		pkg.WriteJSONError(w, http.StatusNotFound, "property not found")
		return
	}
	if err != nil {
		resource.WriteError(w, "property", "update", err)
		return
	}

	handler.cache.Invalidate(kind)
	log.Printf("property updated: [%s]", updated.ID)
	pkg.WriteJSON(w, http.StatusOK, updated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := resource.ParseID(resource.IDFromRequest(r))
	if err != nil {
		resource.WriteError(w, "property", "delete", err)
		return
	}

	deleted, err := handler.repo.Delete(r.Context(), id)
	handler.metrics.RecordWrite(kind, "delete", err)
	if err != nil {
		resource.WriteError(w, "property", "delete", err)
		return
	}

	if deleted {
		log.Printf("property deleted: [%s]", id)
	} else {
		log.Debugf("delete property: [%s] not found, nothing to do", id)
	}

	handler.cache.Invalidate(kind)
	pkg.WriteJSONSuccess(w)
}

// save writes p with its image collection, retrying without it when the
// schema lacks the column. The response then carries the requested images.
func (handler *Handler) save(
	ctx context.Context,
	p *Property,
	write func(ctx context.Context, p *Property, withImages bool) (*Property, error),
) (*Property, error) {
	saved, imagesStored, err := store.WriteWithFallback(ctx, true, func(ctx context.Context, withImages bool) (*Property, error) {
		return write(ctx, p, withImages)
	}, imageURLsColumn)
	if err != nil {
		return nil, err
	}

	if !imagesStored && len(p.ImageURLs) > 0 {
		saved.ImageURLs = slices.Clone(p.ImageURLs)
		saved.ImageURL = p.ImageURLs[0]
	}

	return saved, nil
}

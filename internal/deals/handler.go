package deals

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=deals_test

const kind = "deals"

type dealsRepo interface {
	List(ctx context.Context) ([]Deal, error)
	Add(ctx context.Context, d *Deal, withImages bool) (*Deal, error)
	Update(ctx context.Context, d *Deal, withImages bool) (*Deal, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type Handler struct {
	repo    dealsRepo
	cache   *resource.ListCache
	metrics *metrics.Manager
}

func NewHandler(repo dealsRepo, cache *resource.ListCache, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		cache:   cache,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router, requireSession func(http.Handler) http.Handler) {
	router.HandleFunc("/api/deals", handler.HandleList).Methods("GET", "OPTIONS").Name("list-deals")
	router.Handle("/api/deals", requireSession(http.HandlerFunc(handler.HandleCreate))).Methods("POST", "OPTIONS").Name("new-deal")
	router.Handle("/api/deals", requireSession(http.HandlerFunc(handler.HandleUpdate))).Methods("PUT", "OPTIONS").Name("update-deal")
	router.Handle("/api/deals", requireSession(http.HandlerFunc(handler.HandleDelete))).Methods("DELETE", "OPTIONS").Name("delete-deal")
	router.Handle("/api/deals/{id}", requireSession(http.HandlerFunc(handler.HandleUpdate))).Methods("PUT", "OPTIONS").Name("update-deal-by-id")
	router.Handle("/api/deals/{id}", requireSession(http.HandlerFunc(handler.HandleDelete))).Methods("DELETE", "OPTIONS").Name("delete-deal-by-id")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	resource.ServeList(w, r, handler.cache, kind, handler.repo.List)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	d, err := decodeDeal(w, r)
	if err != nil {
		resource.WriteError(w, "deal", "create", err)
		return
	}

	created, err := handler.save(r.Context(), d, handler.repo.Add)
	handler.metrics.RecordWrite(kind, "create", err)
	if err != nil {
		resource.WriteError(w, "deal", "create", err)
		return
	}

	handler.cache.Invalidate(kind)
	log.Printf("new deal added: [%s] %s", created.ID, created.District)
	pkg.WriteJSON(w, http.StatusCreated, created)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := resource.ParseID(resource.IDFromRequest(r))
	if err != nil {
		resource.WriteError(w, "deal", "update", err)
		return
	}

	d, err := decodeDeal(w, r)
	if err != nil {
		resource.WriteError(w, "deal", "update", err)
		return
	}
	d.ID = id

	updated, err := handler.save(r.Context(), d, handler.repo.Update)
	handler.metrics.RecordWrite(kind, "update", err)
	switch {
	case errors.Is(err, ErrDealNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, "deal not found")
		return
	case err != nil:
		resource.WriteError(w, "deal", "update", err)
		return
	}

	handler.cache.Invalidate(kind)
	pkg.WriteJSON(w, http.StatusOK, updated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := resource.ParseID(resource.IDFromRequest(r))
	if err != nil {
		resource.WriteError(w, "deal", "delete", err)
		return
	}

	deleted, err := handler.repo.Delete(r.Context(), id)
	handler.metrics.RecordWrite(kind, "delete", err)
	if err != nil {
		resource.WriteError(w, "deal", "delete", err)
		return
	}
	if !deleted {
		log.Debugf("delete deal: [%s] not found", id)
	}

	handler.cache.Invalidate(kind)
	pkg.WriteJSONSuccess(w)
}

func decodeDeal(w http.ResponseWriter, r *http.Request) (*Deal, error) {
	var req Request
	if err := resource.DecodeRequest(w, r, &req); err != nil {
		return nil, err
	}
	return req.Validate()
}

func (handler *Handler) save(
	ctx context.Context,
	d *Deal,
	write func(ctx context.Context, d *Deal, withImages bool) (*Deal, error),
) (*Deal, error) {
	// deals without photos never touch the image collection column
	withImages := len(d.ImageURLs) > 0
	saved, imagesStored, err := store.WriteWithFallback(ctx, withImages, func(ctx context.Context, withImages bool) (*Deal, error) {
		return write(ctx, d, withImages)
	}, imageURLsColumn)
	if err != nil {
		return nil, err
	}

	if !imagesStored && len(d.ImageURLs) > 0 {
		saved.ImageURLs = slices.Clone(d.ImageURLs)
		saved.ImageURL = d.ImageURLs[0]
	}

	return saved, nil
}

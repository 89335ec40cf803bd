package resource

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pachgroup/pachsite/internal/store"
	"github.com/pachgroup/pachsite/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// IDFromRequest takes the record id from the path (/api/x/{id}) or the id query parameter.
func IDFromRequest(r *http.Request) string {
	if id, ok := mux.Vars(r)["id"]; ok {
		return id
	}
	return r.URL.Query().Get("id")
}

// ServeList writes the public list of kind, from cache when possible.
// A failing or missing store degrades to an empty list.
func ServeList[T any](w http.ResponseWriter, r *http.Request, cache *ListCache, kind string, list func(ctx context.Context) ([]T, error)) {
	if body, ok := cache.Get(kind); ok {
		w.Header().Set("Content-Type", pkg.ContentTypeJSON)
		pkg.WriteResponseBytes(w, "", body)
		return
	}

	recs, err := list(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotConfigured) {
			log.Debugf("list %s: store not configured, serving empty list", kind)
		} else {
			log.Errorf("list %s: %s", kind, err)
		}
		pkg.WriteJSON(w, http.StatusOK, []T{})
		return
	}
	if recs == nil {
		recs = []T{}
	}

	body, err := json.Marshal(recs)
	if err != nil {
		log.Errorf("marshal %s list: %s", kind, err)
		pkg.WriteJSON(w, http.StatusOK, []T{})
		return
	}

	cache.Set(kind, body)
	w.Header().Set("Content-Type", pkg.ContentTypeJSON)
	pkg.WriteResponseBytes(w, "", body)
}

// WriteError answers a failed admin operation on kind.
func WriteError(w http.ResponseWriter, kind, op string, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		pkg.WriteJSONError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, store.ErrNotConfigured):
		pkg.WriteJSONError(w, http.StatusServiceUnavailable, "database not configured")
	case errors.Is(err, pkg.ErrEmptyBody):
		pkg.WriteJSONError(w, http.StatusBadRequest, "request body is empty")
	default:
		log.Errorf("%s %s: %s", op, kind, err)
		pkg.WriteJSONErrorDetails(w, http.StatusInternalServerError, "failed to "+op+" "+kind, err.Error())
	}
}

// DecodeRequest decodes a JSON request body, reporting malformed JSON as a ValidationError.
func DecodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := pkg.DecodeJSON(w, r, dst); err != nil {
		if errors.Is(err, pkg.ErrEmptyBody) {
			return err
		}
		return Invalid("Invalid JSON body")
	}
	return nil
}

package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxJSONBodyBytes bounds request bodies. Admin forms may carry inline images.
const MaxJSONBodyBytes = 10 << 20

var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON reads a single JSON value from the request body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	body := http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode json body: %w", err)
	}

	return nil
}

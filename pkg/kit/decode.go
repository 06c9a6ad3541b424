package kit

import (
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"BookStore/internal/apperr"
)

const MaxBodyBytes = 1 << 20

var strictJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

// DecodeJSON reads exactly one JSON value from the request body into dst.
// Truncated documents, unknown fields and trailing data are invalid input.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return apperr.InvalidInputWithDetails("bad json", map[string]any{"cause": err.Error()})
	}
	if !strictJSON.Valid(data) {
		return apperr.InvalidInput("bad json")
	}
	if err := strictJSON.Unmarshal(data, dst); err != nil {
		return apperr.InvalidInputWithDetails("bad json", map[string]any{"cause": err.Error()})
	}
	return nil
}

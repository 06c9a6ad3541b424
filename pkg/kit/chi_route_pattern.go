package kit

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

func ChiRoutePatternOrPath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if rp := rctx.RoutePattern(); rp != "" {
			return rp
		}
	}
	return r.URL.Path
}

// PathParam returns the decoded URL parameter. chi matches against RawPath
// when the request has one, so escapes are still present in that case.
func PathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}

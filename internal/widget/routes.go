package widget

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/toldyou-button/internal/observability"
)

const (
	cacheVersioned   = "public, max-age=31536000, immutable"
	cacheUnversioned = "public, max-age=300"
)

// RegisterRoutes mounts the loader script.
func RegisterRoutes(r chi.Router, gen *Generator) {
	r.Get(LoaderPath, handleLoader(gen))
}

func handleLoader(gen *Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, etag, err := gen.Loader()
		if err != nil {
			observability.FromContext(r.Context()).Error("loader unavailable", zap.Error(err))
			http.Error(w, "// widget unavailable", http.StatusInternalServerError)
			return
		}

		h := w.Header()
		h.Set("Content-Type", "application/javascript; charset=utf-8")
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("ETag", etag)
		if r.URL.Query().Get("v") != "" {
			h.Set("Cache-Control", cacheVersioned)
		} else {
			h.Set("Cache-Control", cacheUnversioned)
		}

		if etagMatches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Write(body)
	}
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

package legal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/toldyou-button/internal/i18n"
)

// RegisterRoutes mounts the legal pages.
func RegisterRoutes(r chi.Router, renderer *Renderer) {
	r.Get("/legal/{doc}", handlePage(renderer))
}

func handlePage(renderer *Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := ParseDoc(chi.URLParam(r, "doc"))
		if !ok {
			http.NotFound(w, r)
			return
		}

		lang, ok := i18n.Parse(r.URL.Query().Get("lang"))
		if !ok {
			lang = i18n.Negotiate(r)
		}

		page, err := renderer.Page(doc, lang)
		if err != nil {
			http.Error(w, "failed to render page", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Language", string(lang))
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(page)
	}
}

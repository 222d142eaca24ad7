package i18n

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type localeResponse struct {
	Lang      Language   `json:"lang"`
	Supported []Language `json:"supported"`
}

// RegisterRoutes mounts the visitor language endpoints.
func RegisterRoutes(r chi.Router) {
	r.Route("/api/locale", func(r chi.Router) {
		r.Get("/", handleGet())
		r.Put("/", handlePut())
	})
}

func handleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, localeResponse{Lang: Negotiate(r), Supported: Supported})
	}
}

func handlePut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Lang string `json:"lang"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid request body"})
			return
		}
		l, ok := Parse(body.Lang)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "unsupported language"})
			return
		}
		SetCookie(w, l, isTLS(r))
		writeJSON(w, http.StatusOK, localeResponse{Lang: l, Supported: Supported})
	}
}

func isTLS(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package configs

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/toldyou-button/internal/button"
	"github.com/ziadkadry99/toldyou-button/internal/i18n"
	"github.com/ziadkadry99/toldyou-button/internal/observability"
)

const maxBodyBytes = 64 << 10

// RegisterRoutes mounts the configuration API. publicURL is used in
// generated embed codes; when empty it is derived from each request.
func RegisterRoutes(r chi.Router, svc *Service, validator *Validator, publicURL string) {
	r.Route("/api/configs", func(r chi.Router) {
		r.Post("/", handleCreate(svc, validator, publicURL))
		r.Get("/{id}", handleGet(svc))
	})
	r.Get("/api/widget/{id}", handleLegacyScript(svc))
}

type createResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Code    string `json:"code"`
}

type getResponse struct {
	Success bool          `json:"success"`
	Config  button.Config `json:"config"`
	Lang    i18n.Language `json:"lang"`
}

func handleCreate(svc *Service, validator *Validator, publicURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "request body too large or unreadable")
			return
		}

		sub, err := validator.Decode(body)
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				writeError(w, http.StatusBadRequest, ve.Error())
				return
			}
			observability.FromContext(r.Context()).Error("validating submission", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if sub.Lang == "" {
			sub.Lang = i18n.Negotiate(r)
		}

		baseURL := publicURL
		if baseURL == "" {
			baseURL = requestBaseURL(r)
		}
		res, err := svc.Submit(r.Context(), sub, baseURL)
		if err != nil {
			observability.FromContext(r.Context()).Error("creating config", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, createResponse{Success: true, ID: res.Config.ID, Code: res.Code})
	}
}

func handleGet(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		c, err := svc.Store().GetByID(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		if err != nil {
			observability.FromContext(r.Context()).Error("loading config", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, getResponse{Success: true, Config: c.Config, Lang: c.Lang})
	}
}

func handleLegacyScript(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		code, err := svc.Legacy(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		if err != nil {
			observability.FromContext(r.Context()).Error("rendering legacy widget", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Write([]byte(code))
	}
}

// requestBaseURL rebuilds the public origin of r, honouring reverse proxy
// headers.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + host
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

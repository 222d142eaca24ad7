package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ziadkadry99/toldyou-button/internal/configs"
	"github.com/ziadkadry99/toldyou-button/internal/db"
	"github.com/ziadkadry99/toldyou-button/internal/mail"
	"github.com/ziadkadry99/toldyou-button/internal/shopify"
	"github.com/ziadkadry99/toldyou-button/internal/widget"
)

func setupServer(t *testing.T, cfg Config) (*Server, *db.DB) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	svc := configs.NewService(configs.NewStore(database), widget.NewGenerator("test"), mail.NewLogSender(nil), nil)
	srv, err := New(cfg, database, svc, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, database
}

func TestHealthCheck(t *testing.T) {
	srv, _ := setupServer(t, Config{})

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
	if body["version"] != "test" {
		t.Errorf("expected version 'test', got %q", body["version"])
	}
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	srv, database := setupServer(t, Config{})
	database.Close()

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	srv, _ := setupServer(t, Config{CORSOrigins: []string{"*"}})

	req := httptest.NewRequest("OPTIONS", "/api/configs", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	srv, _ := setupServer(t, Config{CORSOrigins: []string{"https://shop.example"}})

	req := httptest.NewRequest("OPTIONS", "/api/configs", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected Allow-Origin %q for a foreign origin", got)
	}
}

func TestCORSOptions(t *testing.T) {
	if corsOptions(nil).AllowedOrigins[0] != "*" {
		t.Error("empty origin list should allow any origin")
	}
	if corsOptions([]string{"*"}).AllowCredentials {
		t.Error("wildcard origins must not allow credentials")
	}
	if !corsOptions([]string{"https://a.example"}).AllowCredentials {
		t.Error("explicit origins should allow credentials")
	}
}

func TestEndToEnd(t *testing.T) {
	srv, _ := setupServer(t, Config{PublicURL: "https://button.example"})
	router := srv.Router()

	body := `{"email":"owner@example.com","lang":"ja","configJson":{"platforms":{"line":"@shop","phone":"+81 3 1234 5678"},"position":"bottom-left","color":"#ff0000"}}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/configs", strings.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("create: status %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !created.Success || created.ID == "" {
		t.Fatalf("unexpected create response: %s", w.Body.String())
	}
	if created.Code != widget.PointerCode("https://button.example", created.ID) {
		t.Errorf("code = %q", created.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/configs/"+created.ID, nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"lang":"ja"`) {
		t.Fatalf("get: status %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", widget.LoaderPath, nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Content-Type"), "javascript") {
		t.Fatalf("loader: status %d, content-type %q", w.Code, w.Header().Get("Content-Type"))
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/widget/"+created.ID, nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "line.me/R/ti/p/%40shop") {
		t.Fatalf("legacy: status %d", w.Code)
	}
}

func TestFeatureRoutesMounted(t *testing.T) {
	srv, _ := setupServer(t, Config{ShopifySecret: "secret"})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		header map[string]string
		want   int
	}{
		{"locale", "GET", "/api/locale", "", nil, http.StatusOK},
		{"legal", "GET", "/legal/terms?lang=en", "", nil, http.StatusOK},
		{"legal unknown", "GET", "/legal/refunds", "", nil, http.StatusNotFound},
		{"missing config", "GET", "/api/configs/nope", "", nil, http.StatusNotFound},
		{"unsigned webhook", "POST", "/webhooks/shop/redact", `{}`, nil, http.StatusUnauthorized},
		{"signed webhook", "POST", "/webhooks/shop/redact", `{}`,
			map[string]string{shopify.HMACHeader: shopify.Sign("secret", []byte(`{}`))}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("%s %s: status %d, want %d", tt.method, tt.path, w.Code, tt.want)
			}
		})
	}
}

// Package shopify answers the mandatory Shopify app compliance webhooks.
package shopify

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/toldyou-button/internal/audit"
	"github.com/ziadkadry99/toldyou-button/internal/observability"
)

// HMACHeader carries base64(HMAC-SHA256(secret, raw body)).
const HMACHeader = "X-Shopify-Hmac-Sha256"

const (
	TopicHeader  = "X-Shopify-Topic"
	DomainHeader = "X-Shopify-Shop-Domain"
)

const maxWebhookBytes = 1 << 20

// Topics answered by this service.
const (
	TopicCustomersDataRequest = "customers/data_request"
	TopicCustomersRedact      = "customers/redact"
	TopicShopRedact           = "shop/redact"
)

// RegisterRoutes mounts the compliance webhooks. Requests are rejected with
// 401 unless signed with secret; an empty secret rejects everything.
// Accepted requests are recorded in trail, which may be nil.
func RegisterRoutes(r chi.Router, secret string, trail *audit.Store) {
	r.Route("/webhooks", func(r chi.Router) {
		r.Use(Verify(secret))
		r.Post("/customers/data_request", handleCompliance(TopicCustomersDataRequest, trail))
		r.Post("/customers/redact", handleCompliance(TopicCustomersRedact, trail))
		r.Post("/shop/redact", handleCompliance(TopicShopRedact, trail))
	})
}

// Verify checks the webhook signature over the raw request body and
// restores the body for the next handler.
func Verify(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
			r.Body.Close()
			if err != nil || !ValidSignature(secret, body, r.Header.Get(HMACHeader)) {
				observability.FromContext(r.Context()).Warn("rejected shopify webhook",
					zap.String("path", r.URL.Path),
					zap.String("shop", r.Header.Get(DomainHeader)),
				)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

// ValidSignature reports whether signature matches body under secret.
func ValidSignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(secret, body)), []byte(signature))
}

// Sign computes the signature Shopify sends for body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// No customer data is stored beyond the merchant's own email, so every
// compliance request is acknowledged without further action.
func handleCompliance(topic string, trail *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := observability.FromContext(r.Context())
		shop := r.Header.Get(DomainHeader)
		logger.Info("shopify compliance webhook",
			zap.String("topic", topic),
			zap.String("shop", shop),
		)
		err := trail.Log(r.Context(), audit.Entry{
			ActorType: audit.ActorShopify,
			ActorID:   shop,
			Action:    audit.ActionComplianceRequest,
			Subject:   topic,
		})
		if err != nil {
			logger.Warn("writing audit entry failed", zap.Error(err))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}
}

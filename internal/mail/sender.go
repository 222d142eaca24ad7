// Package mail renders and delivers the email that carries a merchant's
// embed code.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Sender delivers a code email.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// ResendEndpoint is the Resend transactional email API.
const ResendEndpoint = "https://api.resend.com/emails"

// ResendSender delivers email through the Resend HTTP API.
type ResendSender struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
}

// NewResendSender creates a sender for the given API key and From address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		apiKey:   apiKey,
		from:     from,
		endpoint: ResendEndpoint,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithEndpoint points the sender at another API URL.
func (s *ResendSender) WithEndpoint(endpoint string) *ResendSender {
	s.endpoint = endpoint
	return s
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send renders m and posts it to Resend.
func (s *ResendSender) Send(ctx context.Context, m Message) error {
	subject, body, err := Render(m)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(resendRequest{
		From:    s.from,
		To:      []string{m.To},
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		return fmt.Errorf("encoding email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("resend returned status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("resend returned status %d", resp.StatusCode)
	}
	return nil
}

// LogSender only logs what would have been sent. Used in development.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send renders m and logs a summary of it.
func (s *LogSender) Send(_ context.Context, m Message) error {
	subject, body, err := Render(m)
	if err != nil {
		return err
	}
	s.logger.Info("email not sent (log provider)",
		zap.String("to", m.To),
		zap.String("subject", subject),
		zap.String("config_id", m.ConfigID),
		zap.Int("code_length", len(m.Code)),
		zap.Int("html_length", len(body)),
	)
	return nil
}

// Provider names accepted by New.
const (
	ProviderResend = "resend"
	ProviderLog    = "log"
)

// New builds the sender for provider. An unknown provider is an error.
func New(provider, apiKey, from string, logger *zap.Logger) (Sender, error) {
	switch provider {
	case ProviderResend:
		if apiKey == "" {
			return nil, fmt.Errorf("mail provider %q requires an API key", provider)
		}
		if from == "" {
			return nil, fmt.Errorf("mail provider %q requires a from address", provider)
		}
		return NewResendSender(apiKey, from), nil
	case ProviderLog, "":
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", provider)
	}
}

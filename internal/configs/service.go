package configs

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/toldyou-button/internal/audit"
	"github.com/ziadkadry99/toldyou-button/internal/i18n"
	"github.com/ziadkadry99/toldyou-button/internal/mail"
	"github.com/ziadkadry99/toldyou-button/internal/widget"
)

// Service runs the submission flow: persist, build the embed code, email it.
type Service struct {
	store  *Store
	gen    *widget.Generator
	mailer mail.Sender
	trail  *audit.Store
	logger *zap.Logger
}

// NewService wires the submission flow. mailer may be nil to skip email.
func NewService(store *Store, gen *widget.Generator, mailer mail.Sender, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, gen: gen, mailer: mailer, logger: logger}
}

// WithAudit records submissions and email outcomes in trail.
func (s *Service) WithAudit(trail *audit.Store) *Service {
	s.trail = trail
	return s
}

// Store returns the underlying store.
func (s *Service) Store() *Store { return s.store }

// Generator returns the widget generator.
func (s *Service) Generator() *widget.Generator { return s.gen }

// Result is what a successful submission returns to the caller.
type Result struct {
	Config     *StoredConfig
	Code       string
	LegacyCode string
}

// Submit stores a validated submission and emails the embed code. A failed
// email is logged and does not fail the submission.
func (s *Service) Submit(ctx context.Context, sub Submission, baseURL string) (*Result, error) {
	lang := i18n.Normalize(string(sub.Lang), i18n.DefaultLanguage)

	legacy, err := s.gen.Legacy(sub.Config, lang)
	if err != nil {
		return nil, fmt.Errorf("generating legacy code: %w", err)
	}

	stored, err := s.store.Create(ctx, sub.Email, sub.Config, lang)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Config:     stored,
		Code:       widget.PointerCode(baseURL, stored.ID),
		LegacyCode: legacy,
	}

	s.record(ctx, audit.Entry{
		ActorType: audit.ActorMerchant,
		ActorID:   stored.Email,
		Action:    audit.ActionConfigCreated,
		Subject:   stored.ID,
		Detail:    "lang=" + string(lang),
	})

	if s.mailer != nil {
		err := s.mailer.Send(ctx, mail.Message{
			To:         stored.Email,
			Lang:       lang,
			ConfigID:   stored.ID,
			Code:       res.Code,
			LegacyCode: legacy,
		})
		entry := audit.Entry{
			ActorType: audit.ActorSystem,
			ActorID:   stored.Email,
			Action:    audit.ActionEmailSent,
			Subject:   stored.ID,
		}
		if err != nil {
			s.logger.Warn("sending code email failed",
				zap.String("config_id", stored.ID),
				zap.Error(err),
			)
			entry.Action = audit.ActionEmailFailed
			entry.Detail = err.Error()
		}
		s.record(ctx, entry)
	}
	return res, nil
}

func (s *Service) record(ctx context.Context, e audit.Entry) {
	if err := s.trail.Log(ctx, e); err != nil {
		s.logger.Warn("writing audit entry failed", zap.String("action", string(e.Action)), zap.Error(err))
	}
}

// Legacy renders the self-contained script body for a stored config.
func (s *Service) Legacy(ctx context.Context, id string) (string, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.gen.LegacyScript(c.Config, c.Lang)
}

package configs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/toldyou-button/internal/button"
	"github.com/ziadkadry99/toldyou-button/internal/db"
	"github.com/ziadkadry99/toldyou-button/internal/i18n"
)

// Store persists widget configurations.
type Store struct {
	db *db.DB
}

// NewStore creates a new configuration store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create stores cfg exactly as submitted and returns the new record.
func (s *Store) Create(ctx context.Context, email string, cfg button.Config, lang i18n.Language) (*StoredConfig, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	c := StoredConfig{
		ID:        uuid.New().String(),
		Email:     strings.TrimSpace(email),
		Config:    cfg,
		Lang:      lang,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO configs (id, email, config_json, lang, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Email, string(raw), string(c.Lang), c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting config: %w", err)
	}
	return &c, nil
}

const selectColumns = `SELECT id, email, config_json, lang, created_at FROM configs`

// GetByID returns the configuration with the given id, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id string) (*StoredConfig, error) {
	c, err := scanConfig(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting config: %w", err)
	}
	return c, nil
}

// LatestByEmail returns the most recent configuration submitted by email.
func (s *Store) LatestByEmail(ctx context.Context, email string) (*StoredConfig, error) {
	c, err := scanConfig(s.db.QueryRowContext(ctx,
		selectColumns+` WHERE lower(email) = lower(?) ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting latest config: %w", err)
	}
	return c, nil
}

// List returns configurations oldest first.
func (s *Store) List(ctx context.Context, limit, offset int) ([]StoredConfig, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` ORDER BY created_at, rowid LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing configs: %w", err)
	}
	defer rows.Close()

	var out []StoredConfig
	for rows.Next() {
		c, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning config: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Count returns the number of stored configurations.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM configs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting configs: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConfig(row scanner) (*StoredConfig, error) {
	var c StoredConfig
	var raw, lang string
	if err := row.Scan(&c.ID, &c.Email, &raw, &lang, &c.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(raw), &c.Config); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", c.ID, err)
	}
	c.Lang = i18n.Normalize(lang, i18n.WidgetFallback)
	return &c, nil
}

package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/toldyou-button/internal/audit"
	"github.com/ziadkadry99/toldyou-button/internal/config"
	"github.com/ziadkadry99/toldyou-button/internal/configs"
	"github.com/ziadkadry99/toldyou-button/internal/db"
	"github.com/ziadkadry99/toldyou-button/internal/mail"
	"github.com/ziadkadry99/toldyou-button/internal/observability"
	"github.com/ziadkadry99/toldyou-button/internal/widget"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `toldyou init` to create a config file", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

// openService opens the database and builds the configuration service.
// The caller closes the returned database.
func openService(cfg *config.Config, logger *zap.Logger) (*configs.Service, *db.DB, error) {
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	mailer, err := mail.New(cfg.Mail.Provider, cfg.Mail.APIKey, cfg.Mail.From, logger)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("creating mailer: %w", err)
	}

	gen := widget.NewGenerator(cfg.Widget.Version)
	svc := configs.NewService(configs.NewStore(database), gen, mailer, logger).
		WithAudit(audit.NewStore(database))
	return svc, database, nil
}

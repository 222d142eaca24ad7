package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/toldyou-button/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the HTTP API and widget server",
	Long:    `Starts the server that stores button configurations, emails embed codes and serves /widget.js.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serverPort != 0 {
			cfg.Server.Port = serverPort
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		svc, database, err := openService(cfg, logger)
		if err != nil {
			return err
		}
		defer database.Close()

		srv, err := server.New(server.Config{
			Addr:          cfg.Addr(),
			PublicURL:     cfg.Server.PublicURL,
			CORSOrigins:   cfg.Server.CORSOrigins,
			ShopifySecret: cfg.Shopify.APISecret,
		}, database, svc, logger)
		if err != nil {
			return err
		}

		if cfg.Shopify.APISecret == "" {
			logger.Warn("shopify api secret not set; compliance webhooks will be rejected")
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		logger.Info("starting toldyou server",
			zap.String("version", Version),
			zap.String("widget_version", cfg.Widget.Version),
			zap.String("database", cfg.Database.Path),
			zap.String("mail_provider", cfg.Mail.Provider),
		)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}

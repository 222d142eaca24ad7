package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/toldyou-button/internal/config"
	"github.com/ziadkadry99/toldyou-button/internal/widget"
)

var loaderCmd = &cobra.Command{
	Use:   "loader",
	Short: "Write the widget loader script for static hosting",
	Long: `Renders the same script the server returns from /widget.js, so it can be
published on a CDN. The script still fetches configurations from the API
base given by its data-api-base attribute or its own origin.`,
	RunE: runLoader,
}

func init() {
	loaderCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(loaderCmd)
}

func runLoader(cmd *cobra.Command, args []string) error {
	// The loader does not depend on stored data, so a missing or partial
	// config file is fine here.
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	script, etag, err := widget.NewGenerator(cfg.Widget.Version).Loader()
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err := cmd.OutOrStdout().Write(script)
		return err
	}
	if err := os.WriteFile(output, script, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes, etag %s, version %s)\n", output, len(script), etag, cfg.Widget.Version)
	return nil
}

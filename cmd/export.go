package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/toldyou-button/internal/configs"
	"github.com/ziadkadry99/toldyou-button/internal/progress"
)

const exportPageSize = 100

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the self-contained script for every stored configuration",
	Long: `Writes one <config-id>.html file per stored configuration, each holding the
self-contained script. Useful when moving merchants off the hosted loader.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "export", "output directory")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
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

	outDir, _ := cmd.Flags().GetString("output")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	n, err := exportAll(cmd.Context(), svc, outDir, progress.NewReporter("Exporting"))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d configurations to %s\n", n, outDir)
	return nil
}

// exportAll pages through every stored configuration and writes its
// self-contained script to outDir.
func exportAll(ctx context.Context, svc *configs.Service, outDir string, reporter progress.Reporter) (int, error) {
	total, err := svc.Store().Count(ctx)
	if err != nil {
		return 0, err
	}

	reporter.Start(total)
	defer reporter.Finish()

	written := 0
	for offset := 0; offset < total; offset += exportPageSize {
		page, err := svc.Store().List(ctx, exportPageSize, offset)
		if err != nil {
			return written, err
		}
		if len(page) == 0 {
			break
		}
		for _, c := range page {
			code, err := svc.Generator().Legacy(c.Config, c.Lang)
			if err != nil {
				return written, fmt.Errorf("config %s: %w", c.ID, err)
			}
			path := filepath.Join(outDir, c.ID+".html")
			if err := os.WriteFile(path, []byte(code+"\n"), 0644); err != nil {
				return written, fmt.Errorf("writing %s: %w", path, err)
			}
			written++
			reporter.Update(written, c.ID)
		}
	}
	return written, nil
}

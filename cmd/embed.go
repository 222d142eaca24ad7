package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/toldyou-button/internal/configs"
	"github.com/ziadkadry99/toldyou-button/internal/widget"
)

var embedCmd = &cobra.Command{
	Use:   "embed [config-id]",
	Short: "Print the embed code for a stored configuration",
	Long: `Prints the one-line embed code for a stored configuration. With --legacy
the self-contained script is printed instead, which works without loading
anything from this server.

Instead of an id, --email selects the newest configuration submitted from
that address.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().String("email", "", "use the newest configuration submitted by this address")
	embedCmd.Flags().String("base-url", "", "public base URL (defaults to server.public_url)")
	embedCmd.Flags().Bool("legacy", false, "print the self-contained script")
	embedCmd.Flags().Bool("versioned", false, "pin the loader URL to the current widget version")
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	if (len(args) == 1) == (email != "") {
		return errors.New("pass either a config id or --email")
	}

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

	var id string
	if len(args) == 1 {
		id = args[0]
	}
	stored, err := findConfig(cmd.Context(), svc.Store(), id, email)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if legacy, _ := cmd.Flags().GetBool("legacy"); legacy {
		code, err := svc.Generator().Legacy(stored.Config, stored.Lang)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, code)
		return nil
	}

	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = cfg.Server.PublicURL
	}
	if baseURL == "" {
		return fmt.Errorf("no base URL: pass --base-url or set server.public_url")
	}

	code := widget.PointerCode(baseURL, stored.ID)
	if versioned, _ := cmd.Flags().GetBool("versioned"); versioned {
		code = svc.Generator().VersionedPointerCode(baseURL, stored.ID)
	}
	fmt.Fprintln(out, code)
	return nil
}

// findConfig looks a configuration up by id, or by submitter email when id
// is empty.
func findConfig(ctx context.Context, store *configs.Store, id, email string) (*configs.StoredConfig, error) {
	if id != "" {
		stored, err := store.GetByID(ctx, id)
		if errors.Is(err, configs.ErrNotFound) {
			return nil, fmt.Errorf("no configuration with id %q", id)
		}
		return stored, err
	}
	stored, err := store.LatestByEmail(ctx, email)
	if errors.Is(err, configs.ErrNotFound) {
		return nil, fmt.Errorf("no configuration submitted by %s", email)
	}
	return stored, err
}

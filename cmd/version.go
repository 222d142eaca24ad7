package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/toldyou-button/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of toldyou",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("toldyou %s (widget %s)\n", Version, config.ResolveWidgetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

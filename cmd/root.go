package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/toldyou-button/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "toldyou",
	Short: "Floating contact button service for merchant websites",
	Long: `ToldYou Button stores chat button configurations and serves the
script that renders them on merchant sites. Merchants paste a one-line
embed code; the button links visitors to LINE, Messenger, WhatsApp,
Instagram, phone or email.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

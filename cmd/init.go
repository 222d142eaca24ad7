package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/toldyou-button/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize toldyou configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the server and writes a .toldyou.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

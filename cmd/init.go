package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cloudeye/orient/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize orient configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to register repositories and services and writes a .orient.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

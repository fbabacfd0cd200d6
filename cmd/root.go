package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "orient",
	Short: "Reality-first orientation briefings for multi-service systems",
	Long: `Orient scans what is actually true right now (git state, service
health, metadata stores, key files), mines the knowledge base for
checkable claims, and reports where the record has drifted from
reality. What was recorded is not what is real.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".orient.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

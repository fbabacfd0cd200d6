package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "2.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of orient",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("orient %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudeye/orient/internal/briefing"
	"github.com/cloudeye/orient/internal/config"
	"github.com/cloudeye/orient/internal/progress"
)

var (
	scanJSON    bool
	scanRefresh bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a full reality scan and print the briefing",
	Long:  `Probes every registered repository, service, store, and key file, verifies knowledge-base claims against the result, and prints the orientation briefing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err := buildLogger()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync()

		engine := briefing.NewEngine(cfg, logger)
		if !scanJSON {
			engine.SetProgress(progress.NewReporter())
		}

		b := engine.Briefing(cmd.Context(), scanRefresh)

		if scanJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(b.JSON())
		}
		fmt.Println(b.TextReport)
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "emit the briefing as JSON")
	scanCmd.Flags().BoolVar(&scanRefresh, "refresh", true, "force a fresh scan instead of a cached briefing")
	rootCmd.AddCommand(scanCmd)
}

package cmd

import (
	"fmt"

	"github.com/mira-markets/mira-engine/internal/app"
	"github.com/mira-markets/mira-engine/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the trading-cycle engine",
	Long: `Starts the Mira engine, which will:
1. Fetch active markets and news each cycle
2. Reprice every agent's portfolio against current prices
3. Generate paper trades for eligible markets
4. Serve cycle results and agent state over HTTP

Use --force-refresh to bypass the market-data cache on every cycle.`,
	RunE: runEngine,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolP("force-refresh", "f", false, "Bypass the market-data cache on every cycle")
}

func runEngine(cmd *cobra.Command, args []string) error {
	// Load config
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Create logger
	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Get flags
	forceRefresh, _ := cmd.Flags().GetBool("force-refresh")

	// Create app with options
	opts := &app.Options{
		ForceRefresh: forceRefresh,
	}

	application, err := app.New(cfg, logger, opts)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	// Run app
	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}

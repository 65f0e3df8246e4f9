package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "mira-engine",
	Short: "Mira trading-agent engine",
	Long: `Mira trading-agent engine runs a fixed roster of simulated AI trading
agents against live prediction-market data. Each cycle it refreshes markets
and news, reprices every agent's portfolio, generates paper trades, and
persists the results for the dashboard.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	cobra.OnInitialize(func() {
		// Best effort; env vars win over .env values.
		_ = godotenv.Load()
	})
}

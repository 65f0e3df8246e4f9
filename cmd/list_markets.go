package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mira-markets/mira-engine/internal/marketdata"
	"github.com/mira-markets/mira-engine/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listMarketsCmd = &cobra.Command{
	Use:   "list-markets",
	Short: "List active markets from the markets API",
	Long:  `Fetches and displays active markets from the markets API for debugging purposes.`,
	RunE:  runListMarkets,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(listMarketsCmd)
	listMarketsCmd.Flags().IntP("limit", "l", 20, "Maximum number of markets to fetch")
}

func runListMarkets(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	limit, _ := cmd.Flags().GetInt("limit")

	client := marketdata.NewClient(&marketdata.ClientConfig{
		MarketsURL: cfg.MarketsAPIURL,
		NewsURL:    cfg.NewsAPIURL,
		Limit:      limit,
		Logger:     logger,
	})

	fmt.Printf("Fetching up to %d active markets...\n\n", limit)

	markets, err := client.FetchAllMarkets(ctx)
	if err != nil {
		return fmt.Errorf("fetch markets: %w", err)
	}

	if len(markets) == 0 {
		fmt.Println("No active markets found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tQUESTION\tYES\tVOLUME\tLIQUIDITY")
	for i := range markets {
		m := &markets[i]
		question := m.Question
		if len(question) > 60 {
			question = question[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t$%.0f\t$%.0f\n",
			m.ID, question, m.YesPrice, m.VolumeUSD, m.LiquidityUSD)
	}
	return w.Flush()
}

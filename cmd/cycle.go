package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mira-markets/mira-engine/internal/engine"
	"github.com/mira-markets/mira-engine/internal/generator"
	"github.com/mira-markets/mira-engine/internal/marketdata"
	"github.com/mira-markets/mira-engine/internal/store"
	"github.com/mira-markets/mira-engine/pkg/config"
	"github.com/mira-markets/mira-engine/pkg/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Run a single trading cycle and print the results",
	Long: `Runs one trading cycle for the full agent roster against live market
data and prints each agent's result. Useful for debugging cycle behavior
without starting the full engine.`,
	RunE: runSingleCycle,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(cycleCmd)
	cycleCmd.Flags().BoolP("force-refresh", "f", false, "Bypass the market-data cache")
}

func runSingleCycle(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
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

	forceRefresh, _ := cmd.Flags().GetBool("force-refresh")

	st, err := newStoreFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer func() {
		_ = st.Close()
	}()

	client := marketdata.NewClient(&marketdata.ClientConfig{
		MarketsURL: cfg.MarketsAPIURL,
		NewsURL:    cfg.NewsAPIURL,
		Limit:      cfg.MarketFetchLimit,
		Logger:     logger,
	})

	policy := store.DuplicateCheckFailOpen
	if cfg.DuplicatePolicy == "fail-closed" {
		policy = store.DuplicateCheckFailClosed
	}

	tradeGen := generator.New(generator.Config{
		Store:             st,
		Policy:            policy,
		MaxTradesPerCycle: cfg.MaxTradesPerCycle,
		Logger:            logger,
	})

	// One-shot run hits the API directly; no cache layer needed.
	runner := engine.NewRunner(engine.RunnerConfig{
		Store:     st,
		Source:    &directSource{client: client},
		Generator: tradeGen,
		Logger:    logger,
	})

	fmt.Println("Running one trading cycle...")

	results, err := runner.RunTradingCycle(ctx, engine.CycleConfig{
		Enabled:      true,
		ForceRefresh: forceRefresh,
	})
	if err != nil {
		return fmt.Errorf("run cycle: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "AGENT\tOK\tCANDIDATES\tNEW\tCLOSED\tOPEN POS\tTIME\tERROR")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%t\t%d\t%d\t%d\t%d\t%s\t%s\n",
			res.AgentID, res.Success, res.CandidateMarkets, res.NewTrades,
			res.ClosedTrades, res.OpenPositions, res.CycleTime.Round(time.Millisecond), res.Error)
	}
	return w.Flush()
}

func newStoreFromConfig(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	if cfg.StorageMode == "postgres" {
		return store.NewPostgresStore(&store.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
	}
	return store.NewNoopStore(logger), nil
}

// directSource adapts the plain client to the runner's fetch signature.
type directSource struct {
	client *marketdata.Client
}

func (d *directSource) FetchAllMarkets(ctx context.Context, forceRefresh bool) ([]types.Market, error) {
	return d.client.FetchAllMarkets(ctx)
}

func (d *directSource) FetchLatestNews(ctx context.Context, forceRefresh bool) ([]types.NewsItem, error) {
	return d.client.FetchLatestNews(ctx)
}

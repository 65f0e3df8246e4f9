package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mira-markets/mira-engine/internal/agents"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the agent roster",
	Long:  `Displays every agent in the fixed roster with its model and trading thresholds.`,
	RunE:  runListAgents,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(agentsCmd)
}

func runListAgents(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMODEL\tMIN VOLUME\tMIN LIQUIDITY\tSTARTING CAPITAL")
	for _, p := range agents.Profiles() {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.0f\t$%.0f\t$%.0f\n",
			p.ID, p.DisplayName, p.Model, p.MinVolumeUSD, p.MinLiquidityUSD, p.StartingCapitalUSD)
	}
	return w.Flush()
}

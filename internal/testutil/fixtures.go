package testutil

import (
	"fmt"

	"github.com/mira-markets/mira-engine/pkg/types"
)

// NewTestMarket builds a market that passes every roster agent's thresholds.
func NewTestMarket(id string, yesPrice float64) types.Market {
	return types.Market{
		ID:           id,
		Question:     fmt.Sprintf("Test market %s?", id),
		Slug:         "test-" + id,
		Category:     "test",
		VolumeUSD:    500000,
		LiquidityUSD: 100000,
		YesPrice:     yesPrice,
		Active:       true,
	}
}

// NewThinMarket builds a market below every roster agent's thresholds.
func NewThinMarket(id string) types.Market {
	return types.Market{
		ID:           id,
		Question:     fmt.Sprintf("Thin market %s?", id),
		Slug:         "thin-" + id,
		Category:     "test",
		VolumeUSD:    10,
		LiquidityUSD: 5,
		YesPrice:     0.5,
		Active:       true,
	}
}

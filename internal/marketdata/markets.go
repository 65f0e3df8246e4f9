package marketdata

import "github.com/mira-markets/mira-engine/pkg/types"

// BuildMarketsMap builds a market-id-keyed lookup over one cycle's market
// snapshot. The map is built fresh each cycle and is read-only for the
// duration of that cycle, so concurrent agent tasks share it without
// synchronization.
func BuildMarketsMap(markets []types.Market) map[string]*types.Market {
	m := make(map[string]*types.Market, len(markets))
	for i := range markets {
		m[markets[i].ID] = &markets[i]
	}
	return m
}

// OverlayPrices patches streamed YES prices into a market snapshot. Markets
// without a streamed price keep their REST-fetched price.
func OverlayPrices(markets []types.Market, prices map[string]float64) {
	if len(prices) == 0 {
		return
	}
	for i := range markets {
		if price, ok := prices[markets[i].ID]; ok {
			markets[i].YesPrice = price
		}
	}
}

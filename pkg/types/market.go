package types

import "time"

// Market represents one tradable prediction market as returned by the
// market-data API. Markets are read-only from the engine's perspective and
// refreshed once per trading cycle.
type Market struct {
	ID           string    `json:"id"`
	Question     string    `json:"question"`
	Slug         string    `json:"slug"`
	Category     string    `json:"category"`
	VolumeUSD    float64   `json:"volumeUsd"`
	LiquidityUSD float64   `json:"liquidityUsd"`
	YesPrice     float64   `json:"yesPrice"`
	Active       bool      `json:"active"`
	Closed       bool      `json:"closed"`
	EndDate      time.Time `json:"endDate"`
}

// NoPrice returns the implied price of the NO side.
func (m *Market) NoPrice() float64 {
	return 1.0 - m.YesPrice
}

// NewsItem represents one news headline from the news API. News items are
// fetched once per cycle alongside markets and passed to the trade generator.
type NewsItem struct {
	ID          string    `json:"id"`
	Headline    string    `json:"headline"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	MarketIDs   []string  `json:"marketIds"`
}

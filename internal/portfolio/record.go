package portfolio

import (
	"errors"
	"time"

	"github.com/mira-markets/mira-engine/pkg/types"
)

// SchemaVersion is the current persisted portfolio schema version.
const SchemaVersion = 2

// ErrMalformedRecord indicates a persisted portfolio record that cannot be
// normalized into a usable portfolio. Callers substitute a freshly
// initialized portfolio for the agent.
var ErrMalformedRecord = errors.New("malformed portfolio record")

// Record is the persistence-facing portfolio schema. Legacy field names from
// schema v1 are tolerated during decode and resolved exactly once by
// Normalize at the persistence boundary; business logic never sees them.
type Record struct {
	SchemaVersion      int                 `json:"schemaVersion"`
	AgentID            string              `json:"agentId"`
	StartingCapitalUSD float64             `json:"startingCapitalUsd"`
	CurrentCapitalUSD  float64             `json:"currentCapitalUsd"`
	RealizedPnlUSD     float64             `json:"realizedPnlUsd"`
	UnrealizedPnlUSD   float64             `json:"unrealizedPnlUsd"`
	MaxEquityUSD       float64             `json:"maxEquityUsd"`
	MaxDrawdownPct     float64             `json:"maxDrawdownPct"`
	OpenPositions      map[string]Position `json:"openPositions"`
	LastUpdated        string              `json:"lastUpdated"`

	// Schema v1 field names. Consulted only by Normalize.
	LegacyStartingCapital *float64 `json:"startingCapital,omitempty"`
	LegacyCapital         *float64 `json:"capital,omitempty"`
}

// NewRecord builds the current-schema record for a portfolio.
func NewRecord(p *Portfolio) *Record {
	positions := make(map[string]Position, len(p.OpenPositions))
	for id, pos := range p.OpenPositions {
		positions[id] = *pos
	}

	return &Record{
		SchemaVersion:      SchemaVersion,
		AgentID:            string(p.AgentID),
		StartingCapitalUSD: p.StartingCapitalUSD,
		CurrentCapitalUSD:  p.CurrentCapitalUSD,
		RealizedPnlUSD:     p.RealizedPnlUSD,
		UnrealizedPnlUSD:   p.UnrealizedPnlUSD,
		MaxEquityUSD:       p.MaxEquityUSD,
		MaxDrawdownPct:     p.MaxDrawdownPct,
		OpenPositions:      positions,
		LastUpdated:        p.LastUpdated.UTC().Format(time.RFC3339),
	}
}

// Normalize migrates a decoded record into a portfolio, resolving legacy
// field fallbacks. Returns ErrMalformedRecord when the record is missing its
// agent id or is otherwise unusable.
func (r *Record) Normalize() (*Portfolio, error) {
	if r == nil || r.AgentID == "" {
		return nil, ErrMalformedRecord
	}

	starting := r.StartingCapitalUSD
	if starting == 0 && r.LegacyStartingCapital != nil {
		starting = *r.LegacyStartingCapital
	}
	if starting == 0 && r.LegacyCapital != nil {
		starting = *r.LegacyCapital
	}

	positions := make(map[string]*Position, len(r.OpenPositions))
	for id, pos := range r.OpenPositions {
		p := pos
		if p.MarketID == "" {
			p.MarketID = id
		}
		positions[id] = &p
	}

	maxEquity := r.MaxEquityUSD
	if maxEquity == 0 {
		maxEquity = starting
	}

	lastUpdated, err := time.Parse(time.RFC3339, r.LastUpdated)
	if err != nil {
		// Old records carried free-form timestamps; a fresh LastUpdated is
		// written on the next save either way.
		lastUpdated = time.Time{}
	}

	return &Portfolio{
		AgentID:            types.AgentID(r.AgentID),
		StartingCapitalUSD: starting,
		CurrentCapitalUSD:  r.CurrentCapitalUSD,
		RealizedPnlUSD:     r.RealizedPnlUSD,
		UnrealizedPnlUSD:   r.UnrealizedPnlUSD,
		MaxEquityUSD:       maxEquity,
		MaxDrawdownPct:     r.MaxDrawdownPct,
		OpenPositions:      positions,
		LastUpdated:        lastUpdated,
	}, nil
}

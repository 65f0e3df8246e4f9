package portfolio

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mira-markets/mira-engine/internal/agents"
	"github.com/mira-markets/mira-engine/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_RoundTrip(t *testing.T) {
	p := New(testProfile())
	p.RealizedPnlUSD = 120.5
	p.UnrealizedPnlUSD = -30.25
	p.CurrentCapitalUSD = p.StartingCapitalUSD + p.RealizedPnlUSD + p.UnrealizedPnlUSD
	p.MaxDrawdownPct = -4.2
	p.OpenPositions["m1"] = &Position{
		MarketID:   "m1",
		Side:       types.SideNo,
		Quantity:   50,
		EntryPrice: 0.35,
		OpenedAt:   time.Now().UTC().Truncate(time.Second),
	}

	rec := NewRecord(p)
	require.Equal(t, SchemaVersion, rec.SchemaVersion)

	got, err := rec.Normalize()
	require.NoError(t, err)

	assert.Equal(t, p.AgentID, got.AgentID)
	assert.Equal(t, p.RealizedPnlUSD, got.RealizedPnlUSD)
	assert.Equal(t, p.MaxDrawdownPct, got.MaxDrawdownPct)

	pos, ok := got.OpenPositions["m1"]
	require.True(t, ok, "position m1 must survive the round trip")
	assert.Equal(t, types.SideNo, pos.Side)
	assert.Equal(t, 50.0, pos.Quantity)
}

func TestRecord_LegacyFieldFallback(t *testing.T) {
	raw := []byte(`{
		"agentId": "atlas",
		"startingCapital": 5000,
		"realizedPnlUsd": 100,
		"lastUpdated": "not-a-timestamp"
	}`)

	var rec Record
	require.NoError(t, json.Unmarshal(raw, &rec))

	p, err := rec.Normalize()
	require.NoError(t, err)

	assert.Equal(t, 5000.0, p.StartingCapitalUSD, "legacy startingCapital field")
	assert.Equal(t, 5000.0, p.MaxEquityUSD, "max equity seeded from starting capital")
	assert.NotNil(t, p.OpenPositions)
	assert.True(t, p.LastUpdated.IsZero(), "unparseable timestamp normalizes to zero time")
}

func TestRecord_Malformed(t *testing.T) {
	tests := []struct {
		name string
		rec  *Record
	}{
		{name: "nil-record", rec: nil},
		{name: "missing-agent-id", rec: &Record{StartingCapitalUSD: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rec.Normalize()
			require.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestRecord_PositionKeyBackfill(t *testing.T) {
	rec := &Record{
		AgentID:            string(agents.AgentNova),
		StartingCapitalUSD: 10000,
		OpenPositions: map[string]Position{
			"m7": {Side: types.SideYes, Quantity: 5, EntryPrice: 0.2},
		},
	}

	p, err := rec.Normalize()
	require.NoError(t, err)

	assert.Equal(t, "m7", p.OpenPositions["m7"].MarketID, "market id backfilled from the map key")
}

package agents

import "github.com/mira-markets/mira-engine/pkg/types"

// Profile is the static, read-only configuration for one trading agent.
// Profiles are built once at process start from a constant table and never
// mutated.
type Profile struct {
	ID                 types.AgentID `json:"id"`
	DisplayName        string        `json:"displayName"`
	Model              string        `json:"model"`
	MinVolumeUSD       float64       `json:"minVolumeUsd"`
	MinLiquidityUSD    float64       `json:"minLiquidityUsd"`
	StartingCapitalUSD float64       `json:"startingCapitalUsd"`
}

// The fixed agent roster. Each agent trades with independent capital and
// its own market eligibility thresholds.
const (
	AgentAtlas types.AgentID = "atlas"
	AgentNova  types.AgentID = "nova"
	AgentOrion types.AgentID = "orion"
	AgentVega  types.AgentID = "vega"
	AgentLyra  types.AgentID = "lyra"
	AgentSage  types.AgentID = "sage"
)

//nolint:gochecknoglobals // Static registry, built once and read-only.
var profiles = map[types.AgentID]Profile{
	AgentAtlas: {
		ID:                 AgentAtlas,
		DisplayName:        "Atlas",
		Model:              "gpt-4o",
		MinVolumeUSD:       50000,
		MinLiquidityUSD:    10000,
		StartingCapitalUSD: 10000,
	},
	AgentNova: {
		ID:                 AgentNova,
		DisplayName:        "Nova",
		Model:              "claude-3.5-sonnet",
		MinVolumeUSD:       25000,
		MinLiquidityUSD:    5000,
		StartingCapitalUSD: 10000,
	},
	AgentOrion: {
		ID:                 AgentOrion,
		DisplayName:        "Orion",
		Model:              "gemini-1.5-pro",
		MinVolumeUSD:       100000,
		MinLiquidityUSD:    25000,
		StartingCapitalUSD: 10000,
	},
	AgentVega: {
		ID:                 AgentVega,
		DisplayName:        "Vega",
		Model:              "llama-3.1-70b",
		MinVolumeUSD:       10000,
		MinLiquidityUSD:    2500,
		StartingCapitalUSD: 10000,
	},
	AgentLyra: {
		ID:                 AgentLyra,
		DisplayName:        "Lyra",
		Model:              "deepseek-v3",
		MinVolumeUSD:       25000,
		MinLiquidityUSD:    10000,
		StartingCapitalUSD: 10000,
	},
	AgentSage: {
		ID:                 AgentSage,
		DisplayName:        "Sage",
		Model:              "grok-2",
		MinVolumeUSD:       75000,
		MinLiquidityUSD:    15000,
		StartingCapitalUSD: 10000,
	},
}

//nolint:gochecknoglobals // Stable iteration order for the roster.
var roster = []types.AgentID{
	AgentAtlas,
	AgentNova,
	AgentOrion,
	AgentVega,
	AgentLyra,
	AgentSage,
}

// GetProfile returns the profile for an agent, or false if the agent is not
// part of the roster.
func GetProfile(id types.AgentID) (Profile, bool) {
	p, ok := profiles[id]
	return p, ok
}

// Roster returns the fixed agent roster in stable order.
func Roster() []types.AgentID {
	out := make([]types.AgentID, len(roster))
	copy(out, roster)
	return out
}

// Profiles returns all agent profiles in roster order.
func Profiles() []Profile {
	out := make([]Profile, 0, len(roster))
	for _, id := range roster {
		out = append(out, profiles[id])
	}
	return out
}

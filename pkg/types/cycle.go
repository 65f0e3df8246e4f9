package types

import (
	"encoding/json"
	"time"
)

// CycleResult is the per-agent output of one trading cycle. It is produced
// for every agent in the roster regardless of internal failures and is not
// persisted by the engine itself.
type CycleResult struct {
	AgentID          AgentID
	Success          bool
	CandidateMarkets int
	NewTrades        int
	ClosedTrades     int
	OpenPositions    int
	CycleTime        time.Duration
	Error            string
}

// cycleResultJSON is the wire form. CycleTime travels as whole milliseconds
// under the cycleMs key, not as a raw Duration.
type cycleResultJSON struct {
	AgentID          AgentID `json:"agentId"`
	Success          bool    `json:"success"`
	CandidateMarkets int     `json:"candidateMarkets"`
	NewTrades        int     `json:"newTrades"`
	ClosedTrades     int     `json:"closedTrades"`
	OpenPositions    int     `json:"openPositions"`
	CycleMs          int64   `json:"cycleMs"`
	Error            string  `json:"error,omitempty"`
}

func (r CycleResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(cycleResultJSON{
		AgentID:          r.AgentID,
		Success:          r.Success,
		CandidateMarkets: r.CandidateMarkets,
		NewTrades:        r.NewTrades,
		ClosedTrades:     r.ClosedTrades,
		OpenPositions:    r.OpenPositions,
		CycleMs:          r.CycleTime.Milliseconds(),
		Error:            r.Error,
	})
}

func (r *CycleResult) UnmarshalJSON(data []byte) error {
	var w cycleResultJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = CycleResult{
		AgentID:          w.AgentID,
		Success:          w.Success,
		CandidateMarkets: w.CandidateMarkets,
		NewTrades:        w.NewTrades,
		ClosedTrades:     w.ClosedTrades,
		OpenPositions:    w.OpenPositions,
		CycleTime:        time.Duration(w.CycleMs) * time.Millisecond,
		Error:            w.Error,
	}
	return nil
}

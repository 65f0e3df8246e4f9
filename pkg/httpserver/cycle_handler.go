package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mira-markets/mira-engine/internal/agents"
	"github.com/mira-markets/mira-engine/internal/portfolio"
	"github.com/mira-markets/mira-engine/internal/store"
	"github.com/mira-markets/mira-engine/pkg/types"
	"go.uber.org/zap"
)

// CycleState exposes the scheduler's latest results to the HTTP layer.
type CycleState interface {
	Results() []types.CycleResult
	LastRun() (time.Time, error)
	Running() bool
}

// CycleHandler serves the dashboard API.
type CycleHandler struct {
	state  CycleState
	store  store.Store
	logger *zap.Logger
}

// NewCycleHandler creates a new cycle handler.
func NewCycleHandler(state CycleState, st store.Store, logger *zap.Logger) *CycleHandler {
	return &CycleHandler{
		state:  state,
		store:  st,
		logger: logger,
	}
}

// CyclesResponse is the /api/cycles payload.
type CyclesResponse struct {
	LastRun time.Time           `json:"lastRun"`
	Running bool                `json:"running"`
	Error   string              `json:"error,omitempty"`
	Results []types.CycleResult `json:"results"`
}

// HandleCycles returns the most recent cycle's results.
func (h *CycleHandler) HandleCycles(w http.ResponseWriter, r *http.Request) {
	lastRun, lastErr := h.state.LastRun()

	resp := CyclesResponse{
		LastRun: lastRun,
		Running: h.state.Running(),
		Results: h.state.Results(),
	}
	if lastErr != nil {
		resp.Error = lastErr.Error()
	}
	if resp.Results == nil {
		resp.Results = []types.CycleResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// AgentResponse is one entry in the /api/agents payload.
type AgentResponse struct {
	Profile   agents.Profile       `json:"profile"`
	Portfolio *portfolio.Portfolio `json:"portfolio"`
}

// HandleAgents returns every roster agent's profile and current portfolio.
// Agents without a stored portfolio report their initial state.
func (h *CycleHandler) HandleAgents(w http.ResponseWriter, r *http.Request) {
	roster := agents.Roster()
	out := make([]AgentResponse, 0, len(roster))

	for _, agentID := range roster {
		profile, ok := agents.GetProfile(agentID)
		if !ok {
			continue
		}

		pf, err := h.store.GetPortfolio(r.Context(), agentID)
		if err != nil {
			h.logger.Warn("portfolio-load-failed",
				zap.String("agent", string(agentID)),
				zap.Error(err))
			pf = nil
		}
		if pf == nil {
			pf = portfolio.New(profile)
		}

		out = append(out, AgentResponse{Profile: profile, Portfolio: pf})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(out)
}

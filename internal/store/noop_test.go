package store

import (
	"context"
	"testing"
	"time"

	"github.com/mira-markets/mira-engine/internal/agents"
	"github.com/mira-markets/mira-engine/internal/portfolio"
	"github.com/mira-markets/mira-engine/pkg/types"
	"go.uber.org/zap"
)

func TestNoopStore(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	s := NewNoopStore(logger)
	ctx := context.Background()

	pf, err := s.GetPortfolio(ctx, agents.AgentAtlas)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pf != nil {
		t.Error("noop store must report absence")
	}

	profile, _ := agents.GetProfile(agents.AgentAtlas)
	err = s.SavePortfolio(ctx, portfolio.New(profile))
	if err != nil {
		t.Errorf("expected no error on save, got %v", err)
	}

	err = s.SaveTrade(ctx, &types.TradeRecord{
		ID:       "t1",
		AgentID:  agents.AgentAtlas,
		MarketID: "m1",
		Side:     types.SideYes,
		Status:   types.TradeOpen,
		OpenedAt: time.Now(),
	})
	if err != nil {
		t.Errorf("expected no error on save trade, got %v", err)
	}

	has, err := s.MarketHasTrade(ctx, "m1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if has {
		t.Error("noop store never reports an existing trade")
	}

	if err := s.Close(); err != nil {
		t.Errorf("expected no error on close, got %v", err)
	}
}

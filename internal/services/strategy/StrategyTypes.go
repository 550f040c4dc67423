package strategy

import (
	"fmt"
	"time"

	"PriceBacktester/internal/models"
)

// Strategy is the pluggable decision contract. The coordinator initialises a
// strategy once with the starting window, then asks it for a decision per
// observation. A nil intent in the decision means HOLD.
type Strategy interface {
	// Init seeds any internal state from the initial window.
	Init(window *models.Window) error

	// PredictPrice returns a one-step price prediction for the window.
	PredictPrice(window *models.Window) (float64, error)

	// ExecuteStrategy evaluates the window, whose newest observation is the
	// one just consumed, and decides whether to trade.
	ExecuteStrategy(window *models.Window, nextTimestamp time.Time) (*Decision, error)
}

// Decision is one step's output: the signal, the averages behind it, and the
// resulting trade intent, if any.
type Decision struct {
	Signal  models.Signal
	ShortMA float64
	LongMA  float64
	Intent  *models.TradeIntent
}

// Config carries the knobs shared by the built-in strategies.
type Config struct {
	ShortWindow    int
	LongWindow     int
	SharesPerTrade int
}

const (
	NameMeanCross = "meancross"
	NameEMACross  = "emacross"
)

// New builds a strategy variant by name.
func New(name string, cfg Config) (Strategy, error) {
	switch name {
	case NameMeanCross:
		return NewMeanCrossStrategy(cfg)
	case NameEMACross:
		return NewEMACrossStrategy(cfg)
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

func validateConfig(cfg Config) error {
	if cfg.ShortWindow <= 0 || cfg.LongWindow <= cfg.ShortWindow {
		return fmt.Errorf("invalid windows: short %d, long %d", cfg.ShortWindow, cfg.LongWindow)
	}
	if cfg.SharesPerTrade <= 0 {
		return fmt.Errorf("invalid shares per trade: %d", cfg.SharesPerTrade)
	}
	return nil
}

func intentFor(sig models.Signal, shares int) *models.TradeIntent {
	switch sig {
	case models.SignalBuy:
		return &models.TradeIntent{Side: models.TradeSideBuy, Shares: shares}
	case models.SignalSell:
		return &models.TradeIntent{Side: models.TradeSideSell, Shares: shares}
	default:
		return nil
	}
}

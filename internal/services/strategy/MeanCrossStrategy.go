package strategy

import (
	"time"

	"PriceBacktester/internal/models"
	"PriceBacktester/internal/services/signal"
)

// MeanCrossStrategy trades simple moving-average crossovers: buy when the
// short average crosses above the long one, sell when it crosses below.
type MeanCrossStrategy struct {
	engine         *signal.Engine
	shortWindow    int
	sharesPerTrade int
}

func NewMeanCrossStrategy(cfg Config) (*MeanCrossStrategy, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	engine, err := signal.NewEngine(cfg.ShortWindow, cfg.LongWindow)
	if err != nil {
		return nil, err
	}
	return &MeanCrossStrategy{
		engine:         engine,
		shortWindow:    cfg.ShortWindow,
		sharesPerTrade: cfg.SharesPerTrade,
	}, nil
}

func (s *MeanCrossStrategy) Init(window *models.Window) error {
	return s.engine.Prime(window)
}

func (s *MeanCrossStrategy) PredictPrice(window *models.Window) (float64, error) {
	return signal.PredictNextPrice(window, s.shortWindow)
}

func (s *MeanCrossStrategy) ExecuteStrategy(window *models.Window, _ time.Time) (*Decision, error) {
	last, ok := window.Last()
	if !ok {
		return nil, signal.ErrNotPrimed
	}

	shortMA, longMA, sig, err := s.engine.Step(last.Price)
	if err != nil {
		return nil, err
	}

	return &Decision{
		Signal:  sig,
		ShortMA: shortMA,
		LongMA:  longMA,
		Intent:  intentFor(sig, s.sharesPerTrade),
	}, nil
}

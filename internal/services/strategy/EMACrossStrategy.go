package strategy

import (
	"time"

	"PriceBacktester/internal/models"
	"PriceBacktester/internal/services/indicators"
	"PriceBacktester/internal/services/signal"
)

// EMACrossStrategy is the exponential variant of the crossover rule. The
// trackers update in O(1) per step; equality of the averages never counts as
// a cross, matching MeanCrossStrategy.
type EMACrossStrategy struct {
	fast           *indicators.EMATracker
	slow           *indicators.EMATracker
	shortWindow    int
	longWindow     int
	sharesPerTrade int

	prevFast float64
	prevSlow float64
}

func NewEMACrossStrategy(cfg Config) (*EMACrossStrategy, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &EMACrossStrategy{
		fast:           indicators.NewEMATracker(cfg.ShortWindow),
		slow:           indicators.NewEMATracker(cfg.LongWindow),
		shortWindow:    cfg.ShortWindow,
		longWindow:     cfg.LongWindow,
		sharesPerTrade: cfg.SharesPerTrade,
	}, nil
}

func (s *EMACrossStrategy) Init(window *models.Window) error {
	prices := window.Prices()
	if err := primeEMA(s.fast, prices, s.shortWindow); err != nil {
		return err
	}
	if err := primeEMA(s.slow, prices, s.longWindow); err != nil {
		return err
	}
	s.prevFast = s.fast.Value()
	s.prevSlow = s.slow.Value()
	return nil
}

// primeEMA seeds the tracker at the first period prices and folds the rest
// of the window forward, so the prime matches a price-by-price replay of the
// window's history.
func primeEMA(t *indicators.EMATracker, prices []float64, period int) error {
	if len(prices) < period {
		return indicators.ErrInsufficientWindow
	}
	if err := t.Seed(prices[:period]); err != nil {
		return err
	}
	for _, p := range prices[period:] {
		t.Step(p)
	}
	return nil
}

func (s *EMACrossStrategy) PredictPrice(window *models.Window) (float64, error) {
	if s.fast.Seeded() {
		return s.fast.Value(), nil
	}
	return signal.PredictNextPrice(window, s.shortWindow)
}

func (s *EMACrossStrategy) ExecuteStrategy(window *models.Window, _ time.Time) (*Decision, error) {
	if !s.fast.Seeded() || !s.slow.Seeded() {
		return nil, signal.ErrNotPrimed
	}
	last, ok := window.Last()
	if !ok {
		return nil, signal.ErrNotPrimed
	}

	fast := s.fast.Step(last.Price)
	slow := s.slow.Step(last.Price)

	sig := models.SignalHold
	switch {
	case s.prevFast <= s.prevSlow && fast > slow:
		sig = models.SignalBuy
	case s.prevFast >= s.prevSlow && fast < slow:
		sig = models.SignalSell
	}
	s.prevFast = fast
	s.prevSlow = slow

	return &Decision{
		Signal:  sig,
		ShortMA: fast,
		LongMA:  slow,
		Intent:  intentFor(sig, s.sharesPerTrade),
	}, nil
}

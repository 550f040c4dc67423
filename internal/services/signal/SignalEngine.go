package signal

import (
	"errors"
	"fmt"

	"PriceBacktester/internal/models"
	"PriceBacktester/internal/services/indicators"
)

var ErrNotPrimed = errors.New("signal engine not primed with an initial window")

// Engine computes short and long moving averages incrementally and detects
// crossovers between consecutive steps. It keeps the last longSpan prices
// plus rolling sums, so each step is O(1) regardless of span size.
type Engine struct {
	shortSpan int
	longSpan  int

	prices    []float64 // last longSpan prices, oldest first
	shortSum  float64
	longSum   float64
	prevShort float64
	prevLong  float64
	primed    bool
}

func NewEngine(shortSpan, longSpan int) (*Engine, error) {
	if shortSpan <= 0 || longSpan <= shortSpan {
		return nil, fmt.Errorf("invalid spans: short %d, long %d", shortSpan, longSpan)
	}
	return &Engine{
		shortSpan: shortSpan,
		longSpan:  longSpan,
		prices:    make([]float64, 0, longSpan),
	}, nil
}

// Prime seeds the rolling state and the previous moving-average pair from an
// initial window. The window must hold at least longSpan observations.
func (e *Engine) Prime(window *models.Window) error {
	prices := window.Prices()
	if len(prices) < e.longSpan {
		return fmt.Errorf("priming window of %d rows, need %d: %w",
			len(prices), e.longSpan, indicators.ErrInsufficientWindow)
	}

	tail := prices[len(prices)-e.longSpan:]
	e.prices = append(e.prices[:0], tail...)

	e.longSum = 0
	for _, p := range tail {
		e.longSum += p
	}
	e.shortSum = 0
	for _, p := range tail[e.longSpan-e.shortSpan:] {
		e.shortSum += p
	}

	e.prevShort = e.shortSum / float64(e.shortSpan)
	e.prevLong = e.longSum / float64(e.longSpan)
	e.primed = true
	return nil
}

// Step folds one price into the rolling averages and compares the new pair
// against the previous one. Equal averages never count as a cross, so a
// signal fires only on a strict change of ordering.
func (e *Engine) Step(price float64) (shortMA, longMA float64, sig models.Signal, err error) {
	if !e.primed {
		return 0, 0, models.SignalHold, ErrNotPrimed
	}

	e.shortSum += price - e.prices[len(e.prices)-e.shortSpan]
	e.longSum += price - e.prices[0]
	copy(e.prices, e.prices[1:])
	e.prices[len(e.prices)-1] = price

	shortMA = e.shortSum / float64(e.shortSpan)
	longMA = e.longSum / float64(e.longSpan)

	sig = models.SignalHold
	switch {
	case e.prevShort <= e.prevLong && shortMA > longMA:
		sig = models.SignalBuy
	case e.prevShort >= e.prevLong && shortMA < longMA:
		sig = models.SignalSell
	}

	e.prevShort = shortMA
	e.prevLong = longMA
	return shortMA, longMA, sig, nil
}

// Evaluate is the stateless form: it derives the previous moving-average pair
// from the window minus its newest point. When that previous pair cannot be
// computed there is no prior state, and the result is HOLD by definition.
func Evaluate(window *models.Window, shortSpan, longSpan int) (shortMA, longMA float64, sig models.Signal, err error) {
	prices := window.Prices()

	shortMA, err = indicators.MovingAverage(prices, shortSpan)
	if err != nil {
		return 0, 0, models.SignalHold, err
	}
	longMA, err = indicators.MovingAverage(prices, longSpan)
	if err != nil {
		return 0, 0, models.SignalHold, err
	}

	prev := prices[:len(prices)-1]
	prevShort, serr := indicators.MovingAverage(prev, shortSpan)
	prevLong, lerr := indicators.MovingAverage(prev, longSpan)
	if serr != nil || lerr != nil {
		return shortMA, longMA, models.SignalHold, nil
	}

	sig = models.SignalHold
	switch {
	case prevShort <= prevLong && shortMA > longMA:
		sig = models.SignalBuy
	case prevShort >= prevLong && shortMA < longMA:
		sig = models.SignalSell
	}
	return shortMA, longMA, sig, nil
}

// PredictNextPrice is the naive one-step predictor: the span-length moving
// average, falling back to the latest price when the window is still short.
func PredictNextPrice(window *models.Window, span int) (float64, error) {
	last, ok := window.Last()
	if !ok {
		return 0, indicators.ErrInsufficientWindow
	}
	ma, err := indicators.MovingAverage(window.Prices(), span)
	if err != nil {
		return last.Price, nil
	}
	return ma, nil
}

package backtest

import (
	"time"

	"PriceBacktester/internal/models"
)

// PerformanceTracker accumulates the equity curve and derived metrics as the
// run advances. Win rate is measured over executed sells: a sell counts as a
// win when it realizes a positive P&L against the average cost basis.
type PerformanceTracker struct {
	initialBalance float64
	startTime      time.Time

	equityCurve []models.EquityPoint
	maxEquity   float64
	maxDrawdown float64
	lastEquity  float64
	lastTime    time.Time

	executedTrades int
	closedSells    int
	winningSells   int

	yearStart map[int]float64
	yearLast  map[int]float64
}

func NewPerformanceTracker(initialBalance float64, start time.Time) *PerformanceTracker {
	t := &PerformanceTracker{
		initialBalance: initialBalance,
		startTime:      start,
		maxEquity:      initialBalance,
		lastEquity:     initialBalance,
		lastTime:       start,
		yearStart:      map[int]float64{start.Year(): initialBalance},
		yearLast:       map[int]float64{start.Year(): initialBalance},
	}
	t.equityCurve = append(t.equityCurve, models.EquityPoint{Timestamp: start, Equity: initialBalance})
	return t
}

// RecordStep marks the account to market at one observation.
func (t *PerformanceTracker) RecordStep(timestamp time.Time, equity float64) {
	t.equityCurve = append(t.equityCurve, models.EquityPoint{Timestamp: timestamp, Equity: equity})

	if equity > t.maxEquity {
		t.maxEquity = equity
	}
	if t.maxEquity > 0 {
		if dd := (t.maxEquity - equity) / t.maxEquity; dd > t.maxDrawdown {
			t.maxDrawdown = dd
		}
	}

	year := timestamp.Year()
	if _, ok := t.yearStart[year]; !ok {
		// A new year opens at the previous year's closing equity.
		t.yearStart[year] = t.lastEquity
	}
	t.yearLast[year] = equity

	t.lastEquity = equity
	t.lastTime = timestamp
}

// RecordTrade counts an executed trade; realizedDelta is the realized P&L
// change the trade produced (zero for buys).
func (t *PerformanceTracker) RecordTrade(side string, realizedDelta float64) {
	t.executedTrades++
	if side == models.TradeSideSell {
		t.closedSells++
		if realizedDelta > 0 {
			t.winningSells++
		}
	}
}

func (t *PerformanceTracker) ExecutedTrades() int {
	return t.executedTrades
}

func (t *PerformanceTracker) EquityCurve() []models.EquityPoint {
	curve := make([]models.EquityPoint, len(t.equityCurve))
	copy(curve, t.equityCurve)
	return curve
}

// Snapshot computes the metrics as of the last recorded step.
func (t *PerformanceTracker) Snapshot() models.PerformanceSnapshot {
	totalReturn := 0.0
	if t.initialBalance > 0 {
		totalReturn = (t.lastEquity - t.initialBalance) / t.initialBalance
	}

	annualized := 0.0
	if days := t.lastTime.Sub(t.startTime).Hours() / 24; days > 0 {
		annualized = totalReturn * 365 / days
	}

	winRate := 0.0
	if t.closedSells > 0 {
		winRate = float64(t.winningSells) / float64(t.closedSells)
	}

	yearly := make(map[int]float64, len(t.yearStart))
	for year, start := range t.yearStart {
		if start > 0 {
			yearly[year] = (t.yearLast[year] - start) / start
		}
	}

	return models.PerformanceSnapshot{
		TotalReturn:      totalReturn,
		AnnualizedReturn: annualized,
		TradeCount:       t.executedTrades,
		WinRate:          winRate,
		MaxDrawdown:      t.maxDrawdown,
		YearlyReturns:    yearly,
	}
}

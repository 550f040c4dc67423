package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"PriceBacktester/internal/models"
)

func TestTrackerYearBoundaryOpensAtPriorClose(t *testing.T) {
	start := time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)
	tracker := NewPerformanceTracker(1000, start)

	tracker.RecordStep(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), 1100)
	tracker.RecordStep(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1210)
	last := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tracker.RecordStep(last, 990)

	snap := tracker.Snapshot()

	assert.InDelta(t, 0.10, snap.YearlyReturns[2023], 1e-12)
	assert.InDelta(t, -0.10, snap.YearlyReturns[2024], 1e-12)
	assert.InDelta(t, -0.01, snap.TotalReturn, 1e-12)

	days := last.Sub(start).Hours() / 24
	assert.InDelta(t, -0.01*365/days, snap.AnnualizedReturn, 1e-12)
	assert.InDelta(t, (1210.0-990.0)/1210.0, snap.MaxDrawdown, 1e-12)
}

func TestTrackerWinRateCountsSellsOnly(t *testing.T) {
	tracker := NewPerformanceTracker(1000, time.Now())

	tracker.RecordTrade(models.TradeSideBuy, 0)
	tracker.RecordTrade(models.TradeSideSell, 50)
	tracker.RecordTrade(models.TradeSideSell, -20)
	tracker.RecordTrade(models.TradeSideSell, 0)

	snap := tracker.Snapshot()
	assert.Equal(t, 4, snap.TradeCount)
	assert.InDelta(t, 1.0/3.0, snap.WinRate, 1e-12)
}

func TestTrackerNoStepsYieldsZeroMetrics(t *testing.T) {
	tracker := NewPerformanceTracker(1000, time.Now())

	snap := tracker.Snapshot()
	assert.Equal(t, 0.0, snap.TotalReturn)
	assert.Equal(t, 0.0, snap.AnnualizedReturn)
	assert.Equal(t, 0.0, snap.WinRate)
	assert.Equal(t, 0.0, snap.MaxDrawdown)
	assert.Len(t, tracker.EquityCurve(), 1)
}

package models

import (
	"time"
)

// EquityPoint is one mark-to-market sample of the account over time.
type EquityPoint struct {
	Timestamp time.Time
	Equity    float64
}

// PerformanceSnapshot summarises a backtest run.
type PerformanceSnapshot struct {
	TotalReturn      float64
	AnnualizedReturn float64
	TradeCount       int
	WinRate          float64
	MaxDrawdown      float64

	// Per calendar-year returns, keyed by year.
	YearlyReturns map[int]float64
}

// backtest/types.go

package backtest

import (
	"errors"
	"time"

	"PriceBacktester/internal/models"
)

// ErrStrategyContract marks a strategy returning an unusable trade intent.
// It is fatal: the run halts with partial state retained.
var ErrStrategyContract = errors.New("strategy returned an invalid trade intent")

// State is the coordinator lifecycle. Failed is reachable from any state on
// unrecoverable error; a cancelled run completes truncated instead.
type State int

const (
	StateInitializing State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Simulation config
type Config struct {
	WindowSize     int
	InitialBalance float64
	AllowShort     bool

	// Log an account status line every this many executed trades; 0 disables.
	TradeUpdateFrequency int
}

// StepResult is the per-observation record emitted to external consumers
// (renderer, logger, test harness), one frame per step.
type StepResult struct {
	Timestamp time.Time
	Price     float64
	ShortMA   float64
	LongMA    float64
	Signal    models.Signal
	Predicted float64
	Equity    float64
}

// Final backtest results
type Results struct {
	Snapshot    models.PerformanceSnapshot
	TradeLog    []models.TradeRecord
	EquityCurve []models.EquityPoint

	StepsProcessed  int
	FinalState      State
	FinalEquity     float64
	LastObservation *models.Observation
}

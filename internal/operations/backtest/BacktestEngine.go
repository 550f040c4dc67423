// backtest/engine.go

package backtest

import (
	"context"
	"errors"
	"fmt"
	"log"

	"PriceBacktester/internal/models"
	"PriceBacktester/internal/services/account"
	"PriceBacktester/internal/services/feed"
	"PriceBacktester/internal/services/strategy"
)

// Engine drives one backtest run: it pulls the feed forward one observation
// at a time, asks the strategy for a decision, applies any trade to the
// account, and accumulates performance metrics. Step results form a lazy
// sequence pulled via Next, so a renderer or logger consumes frames at its
// own pace. An Engine is single-use and must not be shared across runs.
type Engine struct {
	feed     *feed.Feed
	strategy strategy.Strategy
	config   Config

	state   State
	window  *models.Window
	account *account.Account
	tracker *PerformanceTracker

	steps   int
	lastObs *models.Observation
}

func NewEngine(f *feed.Feed, strat strategy.Strategy, config Config) *Engine {
	return &Engine{
		feed:     f,
		strategy: strat,
		config:   config,
		state:    StateInitializing,
	}
}

func (e *Engine) State() State {
	return e.state
}

// initialize builds the starting window, seeds the strategy, and opens the
// account. Failures here are fatal and leave the engine in StateFailed.
func (e *Engine) initialize() error {
	window, err := e.feed.InitialWindow(e.config.WindowSize)
	if err != nil {
		e.state = StateFailed
		return err
	}

	if err := e.strategy.Init(window); err != nil {
		e.state = StateFailed
		return fmt.Errorf("strategy init: %w", err)
	}

	start, _ := window.First()

	e.window = window
	e.account = account.New(e.config.InitialBalance, e.config.AllowShort)
	e.tracker = NewPerformanceTracker(e.config.InitialBalance, start.Timestamp)
	e.state = StateRunning
	return nil
}

// Next advances the run by one observation. It returns false once the feed
// is exhausted or a stop was requested; cancellation is honored between
// steps, never mid-step, and completes the run truncated rather than failing
// it.
func (e *Engine) Next(ctx context.Context) (*StepResult, bool, error) {
	switch e.state {
	case StateInitializing:
		if err := e.initialize(); err != nil {
			return nil, false, err
		}
	case StateCompleted, StateFailed:
		return nil, false, nil
	}

	if ctx.Err() != nil {
		log.Printf("Stop requested, completing run after %d steps", e.steps)
		e.state = StateCompleted
		return nil, false, nil
	}

	obs, ok := e.feed.Next()
	if !ok {
		e.state = StateCompleted
		return nil, false, nil
	}
	e.lastObs = &obs
	e.window.Append(obs)

	decision, err := e.strategy.ExecuteStrategy(e.window, obs.Timestamp)
	if err != nil {
		e.state = StateFailed
		return nil, false, fmt.Errorf("step %d at %s: %w",
			e.steps+1, obs.Timestamp.Format("2006-01-02 15:04:05"), err)
	}

	if decision.Intent != nil {
		if err := e.applyIntent(*decision.Intent, obs); err != nil {
			return nil, false, err
		}
	}

	equity := e.account.Equity(obs.Price)
	e.tracker.RecordStep(obs.Timestamp, equity)

	predicted, err := e.strategy.PredictPrice(e.window)
	if err != nil {
		predicted = obs.Price
	}

	e.steps++
	return &StepResult{
		Timestamp: obs.Timestamp,
		Price:     obs.Price,
		ShortMA:   decision.ShortMA,
		LongMA:    decision.LongMA,
		Signal:    decision.Signal,
		Predicted: predicted,
		Equity:    equity,
	}, true, nil
}

// applyIntent validates the strategy's intent and settles it against the
// account. Rejections are recorded skips; a malformed intent is fatal.
func (e *Engine) applyIntent(intent models.TradeIntent, obs models.Observation) error {
	if intent.Shares <= 0 ||
		(intent.Side != models.TradeSideBuy && intent.Side != models.TradeSideSell) {
		e.state = StateFailed
		return fmt.Errorf("side %q shares %d at %s: %w",
			intent.Side, intent.Shares,
			obs.Timestamp.Format("2006-01-02 15:04:05"), ErrStrategyContract)
	}

	realizedBefore := e.account.RealizedPnL()
	trade, err := e.account.Apply(intent, obs.Price, obs.Timestamp)
	if err != nil {
		if errors.Is(err, account.ErrInsufficientFunds) || errors.Is(err, account.ErrInsufficientPosition) {
			log.Printf("Skipped %s of %d shares at %.2f: %v",
				intent.Side, intent.Shares, obs.Price, err)
			return nil
		}
		e.state = StateFailed
		return fmt.Errorf("apply %s at %s: %v: %w",
			intent.Side, obs.Timestamp.Format("2006-01-02 15:04:05"), err, ErrStrategyContract)
	}

	e.tracker.RecordTrade(trade.Side, e.account.RealizedPnL()-realizedBefore)

	if freq := e.config.TradeUpdateFrequency; freq > 0 && e.tracker.ExecutedTrades()%freq == 0 {
		log.Printf("Strategy Update - Balance: $%.2f, Shares: %d, Trades: %d",
			e.account.Cash(), e.account.Position(), e.tracker.ExecutedTrades())
	}
	return nil
}

// Run drives the engine to completion and returns the final results. On a
// fatal error the partial results up to the failure point are returned
// alongside it.
func (e *Engine) Run(ctx context.Context) (*Results, error) {
	for {
		_, ok, err := e.Next(ctx)
		if err != nil {
			return e.Results(), err
		}
		if !ok {
			break
		}
	}
	return e.Results(), nil
}

// Results assembles the snapshot, trade log, and equity curve accumulated so
// far. Valid in any state; after a failure it reports the partial run.
func (e *Engine) Results() *Results {
	res := &Results{
		StepsProcessed:  e.steps,
		FinalState:      e.state,
		LastObservation: e.lastObs,
	}
	if e.tracker != nil {
		res.Snapshot = e.tracker.Snapshot()
		res.EquityCurve = e.tracker.EquityCurve()
	}
	if e.account != nil {
		res.TradeLog = e.account.TradeLog()
		lastPrice := 0.0
		if e.lastObs != nil {
			lastPrice = e.lastObs.Price
		} else if last, ok := e.window.Last(); ok {
			lastPrice = last.Price
		}
		res.FinalEquity = e.account.Equity(lastPrice)
	}
	return res
}

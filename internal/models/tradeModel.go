package models

import (
	"time"
)

const (
	TradeSideBuy  = "buy"
	TradeSideSell = "sell"
)

const (
	TradeStatusExecuted = "executed"
	TradeStatusRejected = "rejected"
)

// TradeIntent is an unexecuted proposal produced by a strategy. A nil intent
// means HOLD.
type TradeIntent struct {
	Side   string
	Shares int
}

// Trade is an executed (or attempted) transaction against the account.
type Trade struct {
	Timestamp time.Time
	Side      string
	Shares    int
	Price     float64
}

// TradeRecord is a trade-log entry. Rejected intents are kept alongside
// executed trades so that no decision is silently dropped.
type TradeRecord struct {
	Trade  Trade
	Status string
	Reason string
}

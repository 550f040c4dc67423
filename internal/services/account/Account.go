// Package account tracks cash, position, and the trade log for a single
// backtest run. All mutation happens through Apply; rejected intents are kept
// in the log so no decision is silently lost.
package account

import (
	"errors"
	"fmt"
	"time"

	"PriceBacktester/internal/models"
)

var (
	ErrInsufficientFunds    = errors.New("insufficient funds for buy order")
	ErrInsufficientPosition = errors.New("insufficient position for sell order")
)

type Account struct {
	cash       float64
	position   int64
	avgCost    float64
	allowShort bool

	realizedPnL float64
	tradeLog    []models.TradeRecord
}

func New(initialBalance float64, allowShort bool) *Account {
	return &Account{
		cash:       initialBalance,
		allowShort: allowShort,
	}
}

// Apply executes a trade intent at the given price. Rejections are recorded
// in the trade log and returned as ErrInsufficientFunds or
// ErrInsufficientPosition; the account state is left untouched.
func (a *Account) Apply(intent models.TradeIntent, price float64, timestamp time.Time) (*models.Trade, error) {
	trade := models.Trade{
		Timestamp: timestamp,
		Side:      intent.Side,
		Shares:    intent.Shares,
		Price:     price,
	}

	switch intent.Side {
	case models.TradeSideBuy:
		cost := float64(intent.Shares) * price
		if cost > a.cash {
			a.reject(trade, fmt.Sprintf("cost %.2f exceeds cash %.2f", cost, a.cash))
			return nil, ErrInsufficientFunds
		}
		shares := int64(intent.Shares)
		if a.position < 0 {
			// Buying against a short covers it first; the covered part
			// realizes P&L at the short's entry basis.
			covered := shares
			if covered > -a.position {
				covered = -a.position
			}
			a.realizedPnL += float64(covered) * (a.avgCost - price)
			a.position += shares
			switch {
			case a.position > 0:
				a.avgCost = price
			case a.position == 0:
				a.avgCost = 0
			}
		} else {
			// Average cost basis over the enlarged position, for realized P&L.
			total := a.avgCost*float64(a.position) + cost
			a.position += shares
			a.avgCost = total / float64(a.position)
		}
		a.cash -= cost

	case models.TradeSideSell:
		if !a.allowShort && int64(intent.Shares) > a.position {
			a.reject(trade, fmt.Sprintf("selling %d shares with position %d", intent.Shares, a.position))
			return nil, ErrInsufficientPosition
		}
		shares := int64(intent.Shares)
		if a.position > 0 {
			closed := shares
			if closed > a.position {
				closed = a.position
			}
			a.realizedPnL += float64(closed) * (price - a.avgCost)
			a.position -= shares
			switch {
			case a.position < 0:
				a.avgCost = price
			case a.position == 0:
				a.avgCost = 0
			}
		} else {
			// Opening or enlarging a short: the entry basis averages in,
			// nothing realizes until the short is covered.
			total := a.avgCost*float64(-a.position) + float64(shares)*price
			a.position -= shares
			a.avgCost = total / float64(-a.position)
		}
		a.cash += float64(intent.Shares) * price

	default:
		a.reject(trade, fmt.Sprintf("unknown side %q", intent.Side))
		return nil, fmt.Errorf("unknown trade side %q", intent.Side)
	}

	a.tradeLog = append(a.tradeLog, models.TradeRecord{
		Trade:  trade,
		Status: models.TradeStatusExecuted,
	})
	return &trade, nil
}

func (a *Account) reject(trade models.Trade, reason string) {
	a.tradeLog = append(a.tradeLog, models.TradeRecord{
		Trade:  trade,
		Status: models.TradeStatusRejected,
		Reason: reason,
	})
}

// Equity is cash plus the mark-to-market value of the position.
func (a *Account) Equity(currentPrice float64) float64 {
	return a.cash + float64(a.position)*currentPrice
}

func (a *Account) Cash() float64 {
	return a.cash
}

func (a *Account) Position() int64 {
	return a.position
}

func (a *Account) RealizedPnL() float64 {
	return a.realizedPnL
}

// TradeLog returns a copy of the log, executed and rejected entries alike.
func (a *Account) TradeLog() []models.TradeRecord {
	log := make([]models.TradeRecord, len(a.tradeLog))
	copy(log, a.tradeLog)
	return log
}

// ExecutedTrades counts log entries that actually settled.
func (a *Account) ExecutedTrades() int {
	n := 0
	for _, rec := range a.tradeLog {
		if rec.Status == models.TradeStatusExecuted {
			n++
		}
	}
	return n
}

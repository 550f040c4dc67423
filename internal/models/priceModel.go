package models

import (
	"time"
)

// Price is a stored candle, the persistence schema behind repository-sourced
// backtest feeds. The engine itself only consumes close prices.
type Price struct {
	ID         uint      `gorm:"primaryKey"`
	Symbol     string    `gorm:"index;not null"`
	TimeFrame  string    `gorm:"not null"`
	OpenTime   time.Time `gorm:"index;not null"`
	CloseTime  time.Time `gorm:"index"`
	Open       float64   `gorm:"type:decimal(20,8)"`
	Close      float64   `gorm:"type:decimal(20,8)"`
	High       float64   `gorm:"type:decimal(20,8)"`
	Low        float64   `gorm:"type:decimal(20,8)"`
	Volume     float64   `gorm:"type:decimal(20,8)"`
	TradeCount int64
}

const (
	PriceTimeFrame1m  = "1m"
	PriceTimeFrame5m  = "5m"
	PriceTimeFrame15m = "15m"
	PriceTimeFrame1h  = "1h"
	PriceTimeFrame4h  = "4h"
	PriceTimeFrame1d  = "1d"
)

// PriceTimeFrameDuration returns the candle duration for a supported
// timeframe, or false for one outside the set above.
func PriceTimeFrameDuration(timeFrame string) (time.Duration, bool) {
	switch timeFrame {
	case PriceTimeFrame1m:
		return time.Minute, true
	case PriceTimeFrame5m:
		return 5 * time.Minute, true
	case PriceTimeFrame15m:
		return 15 * time.Minute, true
	case PriceTimeFrame1h:
		return time.Hour, true
	case PriceTimeFrame4h:
		return 4 * time.Hour, true
	case PriceTimeFrame1d:
		return 24 * time.Hour, true
	}
	return 0, false
}

// TableName sets the table name for Price model
func (Price) TableName() string {
	return "prices"
}

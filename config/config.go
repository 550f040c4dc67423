package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"PriceBacktester/internal/models"
)

func Load() (*config, error) {
	// A .env file is optional; process environment wins either way.
	_ = godotenv.Load()

	cfg := &config{
		Backtest: BacktestConfig{
			Strategy:             envString("STRATEGY", "meancross"),
			WindowSize:           envInt("WINDOW_SIZE", 50),
			ShortWindow:          envInt("SHORT_WINDOW", 5),
			LongWindow:           envInt("LONG_WINDOW", 20),
			InitialBalance:       envFloat("INITIAL_BALANCE", 1000000),
			SharesPerTrade:       envInt("SHARES_PER_TRADE", 100),
			AllowShort:           envBool("ALLOW_SHORT", false),
			TradeUpdateFrequency: envInt("TRADE_UPDATE_FREQ", 10),
		},
		Data: DataConfig{
			Source:       envString("DATA_SOURCE", DataSourceCSV),
			CSVPath:      envString("PRICE_CSV_PATH", "nvda_hist.csv"),
			TimeColumn:   envString("TIME_COLUMN", "Date"),
			PriceColumn:  envString("PRICE_COLUMN", "Close"),
			Symbol:       envString("SYMBOL", "BTCUSDT"),
			TimeFrame:    envString("TIME_FRAME", "1d"),
			BackfillDays: envInt("BACKFILL_DAYS", 0),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     envInt("DB_PORT", 5432),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
		},
		Exchange: ExchangeConfig{
			APIKey:    os.Getenv("BINANCE_API_KEY"),
			SecretKey: os.Getenv("BINANCE_SECRET_KEY"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *config) validate() error {
	b := c.Backtest
	if b.ShortWindow <= 0 {
		return fmt.Errorf("SHORT_WINDOW must be positive, got %d", b.ShortWindow)
	}
	if b.LongWindow <= b.ShortWindow {
		return fmt.Errorf("LONG_WINDOW (%d) must exceed SHORT_WINDOW (%d)", b.LongWindow, b.ShortWindow)
	}
	if b.WindowSize < b.LongWindow {
		return fmt.Errorf("WINDOW_SIZE (%d) must be at least LONG_WINDOW (%d)", b.WindowSize, b.LongWindow)
	}
	if b.InitialBalance <= 0 {
		return fmt.Errorf("INITIAL_BALANCE must be positive, got %g", b.InitialBalance)
	}
	if b.SharesPerTrade <= 0 {
		return fmt.Errorf("SHARES_PER_TRADE must be positive, got %d", b.SharesPerTrade)
	}

	switch c.Data.Source {
	case DataSourceCSV:
		if c.Data.CSVPath == "" {
			return fmt.Errorf("PRICE_CSV_PATH is required for csv data source")
		}
	case DataSourceDB:
		if c.Data.Symbol == "" || c.Data.TimeFrame == "" {
			return fmt.Errorf("SYMBOL and TIME_FRAME are required for db data source")
		}
		if _, ok := models.PriceTimeFrameDuration(c.Data.TimeFrame); !ok {
			return fmt.Errorf("unsupported TIME_FRAME %q", c.Data.TimeFrame)
		}
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q", c.Data.Source)
	}
	return nil
}

// env helpers: fall back to the default on missing or malformed values

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

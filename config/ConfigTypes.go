package config

type config struct {
	Backtest BacktestConfig
	Data     DataConfig
	Database DatabaseConfig
	Exchange ExchangeConfig
}

// BacktestConfig is the engine parameter surface.
type BacktestConfig struct {
	Strategy             string
	WindowSize           int
	ShortWindow          int
	LongWindow           int
	InitialBalance       float64
	SharesPerTrade       int
	AllowShort           bool
	TradeUpdateFrequency int
}

// DataConfig selects and shapes the price source.
type DataConfig struct {
	Source      string // "csv" or "db"
	CSVPath     string
	TimeColumn  string
	PriceColumn string

	// Repository-sourced runs.
	Symbol       string
	TimeFrame    string
	BackfillDays int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ExchangeConfig struct {
	APIKey    string
	SecretKey string
}

const (
	DataSourceCSV = "csv"
	DataSourceDB  = "db"
)

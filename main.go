package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"PriceBacktester/config"
	"PriceBacktester/internal/handlers"
	"PriceBacktester/internal/models"
	"PriceBacktester/internal/operations/backtest"
	"PriceBacktester/internal/repositories"
	"PriceBacktester/internal/services/feed"
	"PriceBacktester/internal/services/strategy"

	"github.com/adshao/go-binance/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Setup context for graceful shutdown; a stop request completes the run
	// truncated instead of aborting it.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Stop requested, finishing current step...")
		cancel()
	}()

	// Load the price feed
	priceFeed, err := loadFeed(ctx, cfg.Data, cfg.Database, cfg.Exchange)
	if err != nil {
		log.Fatal("Failed to load price data:", err)
	}
	log.Printf("Loaded %d observations", priceFeed.Len())

	// Build the strategy
	strat, err := strategy.New(cfg.Backtest.Strategy, strategy.Config{
		ShortWindow:    cfg.Backtest.ShortWindow,
		LongWindow:     cfg.Backtest.LongWindow,
		SharesPerTrade: cfg.Backtest.SharesPerTrade,
	})
	if err != nil {
		log.Fatal("Failed to build strategy:", err)
	}

	// Create and run engine
	engine := backtest.NewEngine(priceFeed, strat, backtest.Config{
		WindowSize:           cfg.Backtest.WindowSize,
		InitialBalance:       cfg.Backtest.InitialBalance,
		AllowShort:           cfg.Backtest.AllowShort,
		TradeUpdateFrequency: cfg.Backtest.TradeUpdateFrequency,
	})

	// Pull step results one at a time; this loop is the render boundary and
	// only logs non-HOLD frames.
	for {
		step, ok, err := engine.Next(ctx)
		if err != nil {
			printResults(engine.Results())
			log.Fatal("Backtest failed:", err)
		}
		if !ok {
			break
		}
		if step.Signal != models.SignalHold {
			log.Printf("%s at %s: price %.2f, short %.4f, long %.4f, equity $%.2f",
				step.Signal, step.Timestamp.Format("2006-01-02"),
				step.Price, step.ShortMA, step.LongMA, step.Equity)
		}
	}

	printResults(engine.Results())
}

// loadFeed builds the feed from a CSV file or the candle store, backfilling
// the store from Binance first when configured to.
func loadFeed(ctx context.Context, data config.DataConfig, db config.DatabaseConfig, exchange config.ExchangeConfig) (*feed.Feed, error) {
	if data.Source == config.DataSourceCSV {
		return feed.LoadCSV(data.CSVPath, data.TimeColumn, data.PriceColumn)
	}

	priceRepo := repositories.NewPriceRepository(setupDatabase(db))

	if data.BackfillDays > 0 {
		client := binance.NewClient(exchange.APIKey, exchange.SecretKey)
		priceHandler := handlers.NewPriceHandler(
			client, priceRepo, []string{data.Symbol}, data.TimeFrame, data.BackfillDays)
		if err := priceHandler.Backfill(ctx); err != nil {
			return nil, err
		}
	}

	return feed.LoadFromRepository(priceRepo, data.Symbol, data.TimeFrame,
		time.Unix(0, 0), time.Now())
}

func setupDatabase(dbConfig config.DatabaseConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&models.Price{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return db
}

func printResults(results *backtest.Results) {
	skipped := 0
	for _, rec := range results.TradeLog {
		if rec.Status == models.TradeStatusRejected {
			skipped++
		}
	}

	fmt.Println("\n=== Backtest Results ===")
	fmt.Printf("Final State: %s\n", results.FinalState)
	fmt.Printf("Steps Processed: %d\n", results.StepsProcessed)
	fmt.Printf("Total Trades: %d (skipped: %d)\n", results.Snapshot.TradeCount, skipped)
	fmt.Printf("Win Rate: %.2f%%\n", results.Snapshot.WinRate*100)
	fmt.Printf("Total Return: %.2f%%\n", results.Snapshot.TotalReturn*100)
	fmt.Printf("Annualized Return: %.2f%%\n", results.Snapshot.AnnualizedReturn*100)
	fmt.Printf("Max Drawdown: %.2f%%\n", results.Snapshot.MaxDrawdown*100)
	fmt.Printf("Final Equity: $%.2f\n", results.FinalEquity)

	years := make([]int, 0, len(results.Snapshot.YearlyReturns))
	for year := range results.Snapshot.YearlyReturns {
		years = append(years, year)
	}
	sort.Ints(years)
	for _, year := range years {
		fmt.Printf("  %d return: %.2f%%\n", year, results.Snapshot.YearlyReturns[year]*100)
	}
}

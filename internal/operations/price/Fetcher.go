// Package price backfills historical candles from Binance into the price
// store so repository-sourced backtests have data to replay.
package price

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"PriceBacktester/internal/models"

	"github.com/adshao/go-binance/v2"
)

type PriceFetcher struct {
	client  *binance.Client
	symbols []string
}

func NewPriceFetcher(client *binance.Client, symbols []string) *PriceFetcher {
	return &PriceFetcher{
		client:  client,
		symbols: symbols,
	}
}

// FetchPrices downloads the last days of candles for every symbol, walking
// the range in chunks of Binance's 500-kline page size.
func (f *PriceFetcher) FetchPrices(ctx context.Context, timeframe string, days int) ([]models.Price, error) {
	interval, ok := models.PriceTimeFrameDuration(timeframe)
	if !ok {
		return nil, fmt.Errorf("unsupported timeframe %q", timeframe)
	}

	endTime := time.Now()
	startTime := endTime.AddDate(0, 0, -days)
	var allPrices []models.Price

	// 500 is Binance's max page size.
	chunkDuration := interval * 500
	currentStart := startTime
	currentEnd := currentStart.Add(chunkDuration)

	for currentStart.Before(endTime) {
		if currentEnd.After(endTime) {
			currentEnd = endTime
		}

		for _, symbol := range f.symbols {
			klines, err := f.client.NewKlinesService().
				Symbol(symbol).
				Interval(timeframe).
				StartTime(currentStart.UnixMilli()).
				EndTime(currentEnd.UnixMilli()).
				Limit(500).
				Do(ctx)

			if err != nil {
				log.Printf("Error fetching prices for %s: %v", symbol, err)
				continue
			}

			for _, k := range klines {
				allPrices = append(allPrices, models.Price{
					Symbol:     symbol,
					TimeFrame:  timeframe,
					OpenTime:   time.Unix(k.OpenTime/1000, 0),
					CloseTime:  time.Unix(k.CloseTime/1000, 0),
					Open:       parseFloat(k.Open),
					High:       parseFloat(k.High),
					Low:        parseFloat(k.Low),
					Close:      parseFloat(k.Close),
					Volume:     parseFloat(k.Volume),
					TradeCount: k.TradeNum,
				})
			}

			log.Printf("Fetched %d %s candles for %s from %s to %s",
				len(klines),
				timeframe,
				symbol,
				currentStart.Format("2006-01-02 15:04:05"),
				currentEnd.Format("2006-01-02 15:04:05"))
		}

		currentStart = currentEnd
		currentEnd = currentStart.Add(chunkDuration)

		// Small delay to avoid rate limits.
		time.Sleep(100 * time.Millisecond)
	}

	return allPrices, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Printf("Error parsing float: %v", err)
		return 0
	}
	return f
}

package feed

import (
	"fmt"
	"time"

	"PriceBacktester/internal/models"
	"PriceBacktester/internal/repositories"
)

// LoadFromRepository builds a feed from stored candles, replaying their close
// prices in open-time order.
func LoadFromRepository(repo *repositories.PriceRepository, symbol, timeFrame string, start, end time.Time) (*Feed, error) {
	prices, err := repo.GetPricesByTimeFrame(symbol, timeFrame, start, end)
	if err != nil {
		return nil, fmt.Errorf("query %s %s candles: %v: %w", symbol, timeFrame, err, ErrDataLoad)
	}

	observations := make([]models.Observation, len(prices))
	for i, p := range prices {
		observations[i] = models.Observation{
			Timestamp: p.OpenTime,
			Price:     p.Close,
		}
	}
	return New(observations)
}

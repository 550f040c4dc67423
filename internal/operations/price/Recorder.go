package price

import (
	"log"

	"PriceBacktester/internal/models"
	"PriceBacktester/internal/repositories"
)

type PriceRecorder struct {
	priceRepo *repositories.PriceRepository
}

func NewPriceRecorder(priceRepo *repositories.PriceRepository) *PriceRecorder {
	return &PriceRecorder{priceRepo: priceRepo}
}

// Record persists fetched candles, skipping any at or before the newest one
// already stored for the same symbol and timeframe.
func (r *PriceRecorder) Record(prices []models.Price) error {
	if len(prices) == 0 {
		return nil
	}

	type seriesKey struct {
		symbol    string
		timeFrame string
	}
	latestByKey := make(map[seriesKey]*models.Price)

	fresh := make([]models.Price, 0, len(prices))
	for _, p := range prices {
		key := seriesKey{p.Symbol, p.TimeFrame}
		latest, ok := latestByKey[key]
		if !ok {
			var err error
			latest, err = r.priceRepo.GetLatestPrice(p.Symbol, p.TimeFrame)
			if err != nil {
				return err
			}
			latestByKey[key] = latest
		}
		if latest != nil && !p.OpenTime.After(latest.OpenTime) {
			continue
		}
		fresh = append(fresh, p)
	}

	if len(fresh) == 0 {
		log.Printf("No new candles to record (%d already stored)", len(prices))
		return nil
	}

	if err := r.priceRepo.CreateBatch(fresh); err != nil {
		return err
	}
	log.Printf("Recorded %d candles (%d duplicates skipped)", len(fresh), len(prices)-len(fresh))
	return nil
}

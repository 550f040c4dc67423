package handlers

import (
	"context"
	"log"

	"PriceBacktester/internal/operations/price"
	"PriceBacktester/internal/repositories"

	"github.com/adshao/go-binance/v2"
)

// PriceHandler backfills the price store with historical candles before a
// repository-sourced backtest run.
type PriceHandler struct {
	priceRepo     *repositories.PriceRepository
	priceRecorder *price.PriceRecorder
	priceFetcher  *price.PriceFetcher
	symbols       []string
	timeFrame     string
	days          int
}

func NewPriceHandler(client *binance.Client, priceRepo *repositories.PriceRepository, symbols []string, timeFrame string, days int) *PriceHandler {
	return &PriceHandler{
		priceRepo:     priceRepo,
		priceRecorder: price.NewPriceRecorder(priceRepo),
		priceFetcher:  price.NewPriceFetcher(client, symbols),
		symbols:       symbols,
		timeFrame:     timeFrame,
		days:          days,
	}
}

// Backfill fetches the configured range and persists whatever is not already
// stored.
func (h *PriceHandler) Backfill(ctx context.Context) error {
	log.Printf("Fetching %s historical data for %d days", h.timeFrame, h.days)

	prices, err := h.priceFetcher.FetchPrices(ctx, h.timeFrame, h.days)
	if err != nil {
		return err
	}

	if err := h.priceRecorder.Record(prices); err != nil {
		return err
	}

	for _, symbol := range h.symbols {
		count, err := h.priceRepo.CountByTimeFrame(symbol, h.timeFrame)
		if err != nil {
			return err
		}
		log.Printf("Store holds %d %s candles for %s", count, h.timeFrame, symbol)
	}
	return nil
}

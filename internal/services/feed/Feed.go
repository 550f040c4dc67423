// Package feed owns the ordered price history for one backtest run and hands
// it out as an initial window followed by a lazy forward cursor. A consumed
// feed cannot be rewound; replaying requires loading a fresh one.
package feed

import (
	"errors"
	"fmt"

	"PriceBacktester/internal/models"
)

var (
	ErrDataLoad         = errors.New("failed to load price data")
	ErrInsufficientData = errors.New("not enough rows for the configured window")
)

type Feed struct {
	observations []models.Observation
	cursor       int
}

// New builds a feed over observations, validating strict timestamp ordering;
// duplicate or out-of-order rows are a load-time error.
func New(observations []models.Observation) (*Feed, error) {
	for i := 1; i < len(observations); i++ {
		if !observations[i].Timestamp.After(observations[i-1].Timestamp) {
			return nil, fmt.Errorf("row %d (%s) is not after row %d (%s): %w",
				i, observations[i].Timestamp.Format("2006-01-02 15:04:05"),
				i-1, observations[i-1].Timestamp.Format("2006-01-02 15:04:05"),
				ErrDataLoad)
		}
	}
	return &Feed{observations: observations}, nil
}

// InitialWindow consumes the first windowSize observations and returns them
// as a window primed for moving-average computation.
func (f *Feed) InitialWindow(windowSize int) (*models.Window, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size %d: %w", windowSize, ErrInsufficientData)
	}
	if len(f.observations) < windowSize {
		return nil, fmt.Errorf("feed has %d rows, window needs %d: %w",
			len(f.observations), windowSize, ErrInsufficientData)
	}

	window := models.NewWindow(windowSize)
	for _, obs := range f.observations[:windowSize] {
		window.Append(obs)
	}
	f.cursor = windowSize
	return window, nil
}

// Next yields the next observation in timestamp order, reporting false once
// the feed is exhausted.
func (f *Feed) Next() (models.Observation, bool) {
	if f.cursor >= len(f.observations) {
		return models.Observation{}, false
	}
	obs := f.observations[f.cursor]
	f.cursor++
	return obs, true
}

// Remaining reports how many observations the cursor has not yet yielded.
func (f *Feed) Remaining() int {
	return len(f.observations) - f.cursor
}

// Len reports the total number of loaded observations.
func (f *Feed) Len() int {
	return len(f.observations)
}

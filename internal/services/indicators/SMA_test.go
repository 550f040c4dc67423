package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverageMatchesReferenceMean(t *testing.T) {
	prices := []float64{10, 10, 10, 12, 14, 11, 9, 9, 9, 9}

	for span := 1; span <= len(prices); span++ {
		got, err := MovingAverage(prices, span)
		require.NoError(t, err)

		sum := 0.0
		for _, p := range prices[len(prices)-span:] {
			sum += p
		}
		assert.InDelta(t, sum/float64(span), got, 1e-12, "span %d", span)
	}
}

func TestMovingAverageInsufficientWindow(t *testing.T) {
	_, err := MovingAverage([]float64{1, 2, 3}, 4)
	assert.ErrorIs(t, err, ErrInsufficientWindow)

	_, err = MovingAverage(nil, 1)
	assert.ErrorIs(t, err, ErrInsufficientWindow)

	_, err = MovingAverage([]float64{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrInsufficientWindow)
}

func TestEMATrackerSeedAndStep(t *testing.T) {
	tracker := NewEMATracker(3)

	require.Error(t, tracker.Seed([]float64{1, 2}))
	require.NoError(t, tracker.Seed([]float64{1, 2, 3}))
	assert.InDelta(t, 2.0, tracker.Value(), 1e-12)

	// multiplier = 2/(3+1) = 0.5
	got := tracker.Step(4)
	assert.InDelta(t, 3.0, got, 1e-12)
	got = tracker.Step(3)
	assert.InDelta(t, 3.0, got, 1e-12)
}

func TestEMATrackerUnseededAdoptsFirstPrice(t *testing.T) {
	tracker := NewEMATracker(5)
	assert.False(t, tracker.Seeded())

	got := tracker.Step(42)
	assert.Equal(t, 42.0, got)
	assert.True(t, tracker.Seeded())
}

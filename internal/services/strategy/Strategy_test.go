package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceBacktester/internal/models"
	"PriceBacktester/internal/services/signal"
)

var cfg = Config{ShortWindow: 2, LongWindow: 4, SharesPerTrade: 100}

func windowOf(prices ...float64) *models.Window {
	w := models.NewWindow(len(prices))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range prices {
		w.Append(models.Observation{Timestamp: base.AddDate(0, 0, i), Price: p})
	}
	return w
}

func TestNewSelectsVariant(t *testing.T) {
	s, err := New(NameMeanCross, cfg)
	require.NoError(t, err)
	assert.IsType(t, &MeanCrossStrategy{}, s)

	s, err = New(NameEMACross, cfg)
	require.NoError(t, err)
	assert.IsType(t, &EMACrossStrategy{}, s)

	_, err = New("momentum", cfg)
	assert.Error(t, err)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(NameMeanCross, Config{ShortWindow: 4, LongWindow: 2, SharesPerTrade: 100})
	assert.Error(t, err)

	_, err = New(NameMeanCross, Config{ShortWindow: 2, LongWindow: 4, SharesPerTrade: 0})
	assert.Error(t, err)
}

func TestMeanCrossEmitsIntentsOnCrossovers(t *testing.T) {
	s, err := NewMeanCrossStrategy(cfg)
	require.NoError(t, err)

	window := windowOf(12, 11, 10, 9) // short 9.5 < long 10.5
	require.NoError(t, s.Init(window))

	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	step := func(price float64) *Decision {
		window.Append(models.Observation{Timestamp: base, Price: price})
		base = base.AddDate(0, 0, 1)
		decision, err := s.ExecuteStrategy(window, base)
		require.NoError(t, err)
		return decision
	}

	// [11,10,9,13]: short 11 > long 10.75, cross above
	decision := step(13)
	assert.Equal(t, models.SignalBuy, decision.Signal)
	require.NotNil(t, decision.Intent)
	assert.Equal(t, models.TradeSideBuy, decision.Intent.Side)
	assert.Equal(t, 100, decision.Intent.Shares)

	// [10,9,13,15]: still above, hold with no intent
	decision = step(15)
	assert.Equal(t, models.SignalHold, decision.Signal)
	assert.Nil(t, decision.Intent)

	// [9,13,15,5]: short 10 < long 10.5, cross below
	decision = step(5)
	assert.Equal(t, models.SignalSell, decision.Signal)
	require.NotNil(t, decision.Intent)
	assert.Equal(t, models.TradeSideSell, decision.Intent.Side)
}

func TestMeanCrossRequiresInit(t *testing.T) {
	s, err := NewMeanCrossStrategy(cfg)
	require.NoError(t, err)

	_, err = s.ExecuteStrategy(windowOf(10, 11, 12, 13), time.Now())
	assert.ErrorIs(t, err, signal.ErrNotPrimed)
}

func TestMeanCrossPredictPrice(t *testing.T) {
	s, err := NewMeanCrossStrategy(cfg)
	require.NoError(t, err)

	got, err := s.PredictPrice(windowOf(10, 12, 14))
	require.NoError(t, err)
	assert.InDelta(t, 13.0, got, 1e-12) // 2-span mean of the newest prices
}

func TestEMACrossLifecycle(t *testing.T) {
	s, err := NewEMACrossStrategy(cfg)
	require.NoError(t, err)

	_, err = s.ExecuteStrategy(windowOf(10, 10, 10, 10), time.Now())
	assert.ErrorIs(t, err, signal.ErrNotPrimed)

	window := windowOf(10, 10, 10, 10) // fast == slow == 10
	require.NoError(t, s.Init(window))

	// fast multiplier 2/3, slow 2/5: a jump up crosses fast above slow
	window.Append(models.Observation{Timestamp: time.Now(), Price: 16})
	decision, err := s.ExecuteStrategy(window, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.SignalBuy, decision.Signal)
	assert.Greater(t, decision.ShortMA, decision.LongMA)

	// a collapse crosses it back below
	window.Append(models.Observation{Timestamp: time.Now(), Price: 1})
	decision, err = s.ExecuteStrategy(window, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.SignalSell, decision.Signal)
}

// Init must replay the window's history through the trackers, not just
// average the newest prices: seeding [10,10,10,20] leaves the fast EMA at
// 10 + (20-10)*2/3 = 50/3, not the plain 2-price mean 15.
func TestEMACrossInitFoldsWindowHistory(t *testing.T) {
	s, err := NewEMACrossStrategy(cfg)
	require.NoError(t, err)

	window := windowOf(10, 10, 10, 20)
	require.NoError(t, s.Init(window))

	window.Append(models.Observation{Timestamp: time.Now(), Price: 10})
	decision, err := s.ExecuteStrategy(window, time.Now())
	require.NoError(t, err)

	// fast: 50/3 + (10 - 50/3) * 2/3; slow: 12.5 + (10 - 12.5) * 2/5
	assert.InDelta(t, 110.0/9.0, decision.ShortMA, 1e-12)
	assert.InDelta(t, 11.5, decision.LongMA, 1e-12)
	assert.Equal(t, models.SignalHold, decision.Signal)
}

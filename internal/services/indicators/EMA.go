package indicators

// EMATracker maintains an exponential moving average incrementally, one
// price at a time.
type EMATracker struct {
	multiplier float64
	period     int
	value      float64
	seeded     bool
}

// NewEMATracker creates a tracker with the standard 2/(period+1) smoothing.
func NewEMATracker(period int) *EMATracker {
	return &EMATracker{
		multiplier: 2.0 / float64(period+1),
		period:     period,
	}
}

// Seed initialises the tracker with the simple average of the last period
// prices, the conventional EMA starting point.
func (t *EMATracker) Seed(prices []float64) error {
	sma, err := MovingAverage(prices, t.period)
	if err != nil {
		return err
	}
	t.value = sma
	t.seeded = true
	return nil
}

// Step folds one price into the average and returns the updated value. An
// unseeded tracker adopts the first price as its starting value.
func (t *EMATracker) Step(price float64) float64 {
	if !t.seeded {
		t.value = price
		t.seeded = true
		return t.value
	}
	t.value = (price-t.value)*t.multiplier + t.value
	return t.value
}

// Value returns the current average.
func (t *EMATracker) Value() float64 {
	return t.value
}

// Seeded reports whether the tracker has a starting value.
func (t *EMATracker) Seeded() bool {
	return t.seeded
}

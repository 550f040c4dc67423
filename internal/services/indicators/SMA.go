package indicators

import "errors"

var ErrInsufficientWindow = errors.New("insufficient window for moving average")

// MovingAverage returns the arithmetic mean of the last span values in prices.
func MovingAverage(prices []float64, span int) (float64, error) {
	if span <= 0 || len(prices) < span {
		return 0, ErrInsufficientWindow
	}

	sum := 0.0
	for _, p := range prices[len(prices)-span:] {
		sum += p
	}
	return sum / float64(span), nil
}

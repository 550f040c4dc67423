package models

import (
	"time"
)

// Observation is a single immutable price point in the replayed history.
type Observation struct {
	Timestamp time.Time
	Price     float64
}

// Signal is the trading decision derived from moving-average crossovers.
type Signal int

const (
	SignalHold Signal = iota
	SignalBuy
	SignalSell
)

func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "BUY"
	case SignalSell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Window holds the most recent observations up to a fixed capacity. Oldest
// entries are evicted FIFO as new ones arrive.
type Window struct {
	capacity     int
	observations []Observation
}

func NewWindow(capacity int) *Window {
	return &Window{
		capacity:     capacity,
		observations: make([]Observation, 0, capacity),
	}
}

// Append adds an observation, evicting the oldest one when at capacity.
func (w *Window) Append(obs Observation) {
	if len(w.observations) == w.capacity {
		copy(w.observations, w.observations[1:])
		w.observations = w.observations[:len(w.observations)-1]
	}
	w.observations = append(w.observations, obs)
}

func (w *Window) Len() int {
	return len(w.observations)
}

func (w *Window) Capacity() int {
	return w.capacity
}

// Prices returns the window's prices oldest-first.
func (w *Window) Prices() []float64 {
	prices := make([]float64, len(w.observations))
	for i, obs := range w.observations {
		prices[i] = obs.Price
	}
	return prices
}

// First returns the oldest observation still in the window.
func (w *Window) First() (Observation, bool) {
	if len(w.observations) == 0 {
		return Observation{}, false
	}
	return w.observations[0], true
}

// Last returns the newest observation in the window.
func (w *Window) Last() (Observation, bool) {
	if len(w.observations) == 0 {
		return Observation{}, false
	}
	return w.observations[len(w.observations)-1], true
}

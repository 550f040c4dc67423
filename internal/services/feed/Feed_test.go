package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceBacktester/internal/models"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func observationsOf(prices ...float64) []models.Observation {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := make([]models.Observation, len(prices))
	for i, p := range prices {
		obs[i] = models.Observation{Timestamp: base.AddDate(0, 0, i), Price: p}
	}
	return obs
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "Date,Open,Close\n2024-01-01,9.8,10\n2024-01-02,10.1,12\n2024-01-03,12.2,14\n")

	f, err := LoadCSV(path, "Date", "Close")
	require.NoError(t, err)
	require.Equal(t, 3, f.Len())

	obs, ok := f.Next()
	require.True(t, ok)
	assert.Equal(t, 10.0, obs.Price)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), obs.Timestamp)
}

func TestLoadCSVMissingColumns(t *testing.T) {
	path := writeCSV(t, "Date,Close\n2024-01-01,10\n")

	_, err := LoadCSV(path, "Timestamp", "Close")
	assert.ErrorIs(t, err, ErrDataLoad)

	_, err = LoadCSV(path, "Date", "Price")
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestLoadCSVBadRows(t *testing.T) {
	_, err := LoadCSV(writeCSV(t, "Date,Close\nnot-a-date,10\n"), "Date", "Close")
	assert.ErrorIs(t, err, ErrDataLoad)

	_, err = LoadCSV(writeCSV(t, "Date,Close\n2024-01-01,ten\n"), "Date", "Close")
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), "Date", "Close")
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestNewRejectsUnorderedRows(t *testing.T) {
	obs := observationsOf(10, 11, 12)
	obs[2].Timestamp = obs[0].Timestamp.AddDate(0, 0, -1)
	_, err := New(obs)
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestNewRejectsDuplicateTimestamps(t *testing.T) {
	obs := observationsOf(10, 11)
	obs[1].Timestamp = obs[0].Timestamp
	_, err := New(obs)
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestInitialWindow(t *testing.T) {
	f, err := New(observationsOf(10, 11, 12, 13, 14))
	require.NoError(t, err)

	window, err := f.InitialWindow(3)
	require.NoError(t, err)
	assert.Equal(t, 3, window.Len())
	assert.Equal(t, []float64{10, 11, 12}, window.Prices())
	assert.Equal(t, 2, f.Remaining())
}

func TestInitialWindowInsufficientData(t *testing.T) {
	f, err := New(observationsOf(10, 11))
	require.NoError(t, err)

	_, err = f.InitialWindow(3)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

// A feed of exactly windowSize rows initialises fine and is then exhausted.
func TestInitialWindowExactBoundary(t *testing.T) {
	f, err := New(observationsOf(10, 11, 12))
	require.NoError(t, err)

	window, err := f.InitialWindow(3)
	require.NoError(t, err)
	assert.Equal(t, 3, window.Len())
	assert.Equal(t, 0, f.Remaining())

	_, ok := f.Next()
	assert.False(t, ok)
}

func TestNextIsFiniteAndOrdered(t *testing.T) {
	f, err := New(observationsOf(10, 11, 12, 13))
	require.NoError(t, err)
	_, err = f.InitialWindow(2)
	require.NoError(t, err)

	var got []float64
	for {
		obs, ok := f.Next()
		if !ok {
			break
		}
		got = append(got, obs.Price)
	}
	assert.Equal(t, []float64{12, 13}, got)

	// exhausted for good
	_, ok := f.Next()
	assert.False(t, ok)
}

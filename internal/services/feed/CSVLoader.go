package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"PriceBacktester/internal/models"
)

// Accepted timestamp layouts, tried in order. Daily exports usually carry a
// bare date, intraday ones a full datetime.
var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// LoadCSV reads a headered CSV price file into a feed. The time and price
// column names come from configuration, not from the file format.
func LoadCSV(path, timeColumn, priceColumn string) (*Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, ErrDataLoad)
	}
	defer f.Close()

	return parseCSV(f, timeColumn, priceColumn)
}

func parseCSV(r io.Reader, timeColumn, priceColumn string) (*Feed, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %v: %w", err, ErrDataLoad)
	}

	timeIdx, priceIdx := -1, -1
	for i, name := range header {
		switch name {
		case timeColumn:
			timeIdx = i
		case priceColumn:
			priceIdx = i
		}
	}
	if timeIdx < 0 {
		return nil, fmt.Errorf("missing time column %q: %w", timeColumn, ErrDataLoad)
	}
	if priceIdx < 0 {
		return nil, fmt.Errorf("missing price column %q: %w", priceColumn, ErrDataLoad)
	}

	var observations []models.Observation
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %v: %w", row, err, ErrDataLoad)
		}

		timestamp, err := parseTimestamp(record[timeIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: %v: %w", row, err, ErrDataLoad)
		}
		price, err := strconv.ParseFloat(record[priceIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad price %q: %w", row, record[priceIdx], ErrDataLoad)
		}

		observations = append(observations, models.Observation{
			Timestamp: timestamp,
			Price:     price,
		})
		row++
	}

	return New(observations)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

package backtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/etnz/backtest/series"
	"github.com/shopspring/decimal"
)

// LoadRiskFree reads a two-column date/rate CSV file into a risk-free series.
//
// Rates in the file are annualized percentages (3.0 means 3% per year); they
// are converted to per-period decimal rates using periodsPerYear (defaults to
// DefaultPeriodsPerYear when not positive). Missing days are forward-filled
// to daily frequency, so the series can be restricted to any trading
// calendar within its range.
//
// An optional header row is skipped. Malformed rows fail with their line
// number; a loader never guesses.
func LoadRiskFree(path string, periodsPerYear int) (*series.Series[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open risk-free file: %w", err)
	}
	defer f.Close()

	rates, err := decodeRiskFree(f, periodsPerYear)
	if err != nil {
		return nil, fmt.Errorf("cannot parse risk-free file %q: %w", path, err)
	}
	return rates, nil
}

func decodeRiskFree(r io.Reader, periodsPerYear int) (*series.Series[float64], error) {
	if periodsPerYear <= 0 {
		periodsPerYear = DefaultPeriodsPerYear
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	rates := series.New[float64]()
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		on, err := series.ParseDate(record[0])
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		annual, err := decimal.NewFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid rate %q: %w", line, record[1], err)
		}
		perPeriod := annual.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(periodsPerYear)))
		rates.Append(on, perPeriod.InexactFloat64())
	}

	if rates.Len() == 0 {
		return rates, nil
	}

	// Forward-fill to daily frequency over the covered range.
	first, _ := rates.First()
	last, _ := rates.Last()
	filled := series.New[float64]()
	for on := first; !on.After(last); on = on.Add(1) {
		v, _ := rates.ValueAsOf(on)
		filled.Append(on, v)
	}
	return filled, nil
}

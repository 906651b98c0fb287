// Package store persists fetched price series so backtests can run offline.
package store

import "github.com/etnz/backtest/series"

// PriceStore persists and retrieves daily price series keyed by ticker.
type PriceStore interface {
	// SavePrices persists a price series for a ticker. Existing points on the
	// same dates are overwritten.
	SavePrices(ticker string, prices *series.Series[float64]) error

	// LoadPrices returns the stored price series for a ticker, empty when the
	// ticker is unknown.
	LoadPrices(ticker string) (*series.Series[float64], error)

	// Tickers returns all distinct tickers with stored prices.
	Tickers() ([]string, error)

	// Close releases the underlying storage.
	Close() error
}

package backtest

import (
	"math"

	"github.com/etnz/backtest/series"
)

var day0 = series.NewDate(2025, 1, 1)

// priceSeries is a helper for tests to build a price series on consecutive days.
func priceSeries(values ...float64) *series.Series[float64] {
	s := series.New[float64]()
	for i, v := range values {
		s.Append(day0.Add(i), v)
	}
	return s
}

// positionSeries is a helper for tests to build a position schedule on consecutive days.
func positionSeries(values ...int) *series.Series[int] {
	s := series.New[int]()
	for i, v := range values {
		s.Append(day0.Add(i), v)
	}
	return s
}

// values collects a series into a plain slice, in chronological order.
func values[T series.Value](s *series.Series[T]) []T {
	out := make([]T, 0, s.Len())
	for _, v := range s.Values() {
		out = append(out, v)
	}
	return out
}

func closeTo(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

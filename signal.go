package backtest

import (
	"fmt"

	"github.com/etnz/backtest/series"
)

// Crossover computes a long/flat position schedule from an SMA crossover.
//
// The raw signal on a given day is 1 when the trailing short-window simple
// moving average is strictly greater than the trailing long-window one, and 0
// otherwise. Each average is undefined until its window is full (warm-up).
// To avoid look-ahead bias the signal is shifted forward by one period: the
// position held on day t is the raw signal computed from data through day
// t-1. Days before the shifted signal is defined, including the very first
// day, are flat.
//
// The returned schedule covers the exact same date axis as prices, with
// values in {0, 1}.
func Crossover(prices *series.Series[float64], short, long int) (*series.Series[int], error) {
	if short <= 0 {
		return nil, &InvalidParameterError{Name: "short", Reason: fmt.Sprintf("window must be positive, got %d", short)}
	}
	if long <= 0 {
		return nil, &InvalidParameterError{Name: "long", Reason: fmt.Sprintf("window must be positive, got %d", long)}
	}

	n := prices.Len()
	positions := series.New[int]()
	if n == 0 {
		return positions, nil
	}

	// raw[i] is the unshifted signal on day i, -1 while either average is
	// still warming up.
	raw := make([]int, n)
	var shortSum, longSum float64
	for i := range n {
		_, p := prices.At(i)
		shortSum += p
		longSum += p
		if i >= short {
			_, out := prices.At(i - short)
			shortSum -= out
		}
		if i >= long {
			_, out := prices.At(i - long)
			longSum -= out
		}

		raw[i] = -1
		if i >= short-1 && i >= long-1 {
			raw[i] = 0
			// Strict comparison: equal averages stay flat, so a perfectly
			// flat market never flips the schedule on its own. NaN prices
			// fail the comparison and stay flat too.
			if shortSum/float64(short) > longSum/float64(long) {
				raw[i] = 1
			}
		}
	}

	for i := range n {
		on, _ := prices.At(i)
		if i == 0 || raw[i-1] < 0 {
			positions.Append(on, 0) // nothing is known before the series starts
			continue
		}
		positions.Append(on, raw[i-1])
	}
	return positions, nil
}

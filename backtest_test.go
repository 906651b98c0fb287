package backtest

import (
	"errors"
	"math"
	"testing"

	"github.com/etnz/backtest/series"
)

// TestRunConstantPrices is the flat-market scenario: constant prices yield a
// flat schedule, a flat equity curve, and no trades.
func TestRunConstantPrices(t *testing.T) {
	prices := priceSeries(10, 10, 10, 10, 10, 10, 10, 10, 10, 10)
	positions, err := Crossover(prices, 2, 3)
	if err != nil {
		t.Fatalf("Crossover returned error: %v", err)
	}

	result, err := Run(prices, positions, nil, 10, 1000)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for on, nav := range result.Equity.Values() {
		if nav != 1000 {
			t.Errorf("equity on %s = %v, want 1000", on, nav)
		}
	}
	for on, delta := range result.Trades.Values() {
		if delta != 0 {
			t.Errorf("trade on %s = %+d, want 0", on, delta)
		}
	}
}

// TestRunCostChargedOnce doubles the price monotonically over 252 days with
// a single flat-to-long flip mid-series, and checks the cost deduction
// appears exactly once, on the transition date.
func TestRunCostChargedOnce(t *testing.T) {
	const n = 252
	prices := series.New[float64]()
	positions := series.New[int]()
	for i := range n {
		on := day0.Add(i)
		prices.Append(on, 100*math.Pow(2, float64(i)/(n-1)))
		pos := 0
		if i >= n/2 {
			pos = 1
		}
		positions.Append(on, pos)
	}

	result, err := Run(prices, positions, nil, 10, 1.0)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	const costRate = 10.0 / 10000
	for i := range n {
		on, net := result.Returns.At(i)
		_, pos := positions.At(i)
		gross := 0.0
		if i > 0 {
			_, p := prices.At(i)
			_, prev := prices.At(i - 1)
			gross = float64(pos) * (p/prev - 1)
		}
		want := gross
		if i == n/2 {
			want -= costRate
		}
		if !closeTo(net, want) {
			t.Errorf("net return on %s = %v, want %v", on, net, want)
		}
	}
}

// TestRunInceptionTrade: a non-zero position on the first date is recorded
// as a trade against the implicit flat start, and charged.
func TestRunInceptionTrade(t *testing.T) {
	prices := priceSeries(100, 101, 102)
	positions := positionSeries(1, 1, 1)

	result, err := Run(prices, positions, nil, 100, 1000)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if _, delta := result.Trades.First(); delta != 1 {
		t.Errorf("inception trade = %+d, want +1", delta)
	}
	// 100 bps on a unit position change costs 1% of capital on day 0.
	if _, nav := result.Equity.First(); !closeTo(nav, 990) {
		t.Errorf("equity after inception cost = %v, want 990", nav)
	}
}

func TestRunTradeLog(t *testing.T) {
	prices := priceSeries(100, 101, 102, 103, 104)
	positions := positionSeries(0, 1, 1, 0, 1)

	result, err := Run(prices, positions, nil, 0, 1.0)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := []int{0, 1, 0, -1, 1}
	for i, delta := range values(result.Trades) {
		if delta != want[i] {
			t.Errorf("trade[%d] = %+d, want %+d", i, delta, want[i])
		}
	}
}

// TestRunRiskFree: flat periods earn the per-period risk-free rate, long
// periods do not.
func TestRunRiskFree(t *testing.T) {
	prices := priceSeries(100, 100, 100)
	positions := positionSeries(0, 0, 1)
	riskFree := priceSeries(0.01, 0.01, 0.01)

	result, err := Run(prices, positions, riskFree, 0, 1.0)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	got := values(result.Returns)
	// day 0 has no return, day 1 is flat and earns rf, day 2 is long on a
	// flat price and earns nothing.
	want := []float64{0, 0.01, 0}
	for i := range want {
		if !closeTo(got[i], want[i]) {
			t.Errorf("net return[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRunMismatchedAxes(t *testing.T) {
	prices := priceSeries(100, 101, 102)
	positions := positionSeries(0, 1) // one day short

	_, err := Run(prices, positions, nil, 0, 1.0)
	var ae *AlignmentError
	if !errors.As(err, &ae) {
		t.Errorf("Run on mismatched axes error = %v, want AlignmentError", err)
	}

	// Same length, different dates.
	shifted := series.New[int]()
	for i := range 3 {
		shifted.Append(day0.Add(i + 1), 0)
	}
	_, err = Run(prices, shifted, nil, 0, 1.0)
	if !errors.As(err, &ae) {
		t.Errorf("Run on shifted axes error = %v, want AlignmentError", err)
	}
}

func TestRunEmpty(t *testing.T) {
	_, err := Run(series.New[float64](), series.New[int](), nil, 0, 1.0)
	var ae *AlignmentError
	if !errors.As(err, &ae) {
		t.Errorf("Run on empty axes error = %v, want AlignmentError", err)
	}
}

func TestRunInvalidParameters(t *testing.T) {
	prices := priceSeries(100, 101)
	positions := positionSeries(0, 1)

	var ipe *InvalidParameterError
	if _, err := Run(prices, positions, nil, -1, 1.0); !errors.As(err, &ipe) {
		t.Errorf("negative costBps error = %v, want InvalidParameterError", err)
	}
	if _, err := Run(prices, positions, nil, 0, 0); !errors.As(err, &ipe) {
		t.Errorf("zero capital error = %v, want InvalidParameterError", err)
	}
	if _, err := Run(prices, positionSeries(0, 2), nil, 0, 1.0); !errors.As(err, &ipe) {
		t.Errorf("position outside {0,1} error = %v, want InvalidParameterError", err)
	}
}

func TestRunNaNPropagation(t *testing.T) {
	prices := priceSeries(100, math.NaN(), 102)
	positions := positionSeries(0, 1, 1)

	_, err := Run(prices, positions, nil, 0, 1.0)
	var pe *PropagationError
	if !errors.As(err, &pe) {
		t.Fatalf("Run on NaN price error = %v, want PropagationError", err)
	}
	if pe.On != day0.Add(1) {
		t.Errorf("PropagationError.On = %s, want %s", pe.On, day0.Add(1))
	}

	rf := priceSeries(0, math.Inf(1), 0)
	_, err = Run(priceSeries(100, 101, 102), positions, rf, 0, 1.0)
	if !errors.As(err, &pe) {
		t.Errorf("Run on infinite risk-free rate error = %v, want PropagationError", err)
	}
}

// TestRunImmutableInputs checks the run does not mutate its inputs.
func TestRunImmutableInputs(t *testing.T) {
	prices := priceSeries(100, 101, 102)
	positions := positionSeries(0, 1, 1)

	if _, err := Run(prices, positions, nil, 10, 1.0); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := values(prices); got[0] != 100 || got[1] != 101 || got[2] != 102 {
		t.Errorf("prices mutated: %v", got)
	}
	if got := values(positions); got[0] != 0 || got[1] != 1 || got[2] != 1 {
		t.Errorf("positions mutated: %v", got)
	}
}

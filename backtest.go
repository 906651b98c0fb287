package backtest

import (
	"fmt"
	"math"

	"github.com/etnz/backtest/series"
)

// Result holds the output of a single simulation run. It is built once by Run
// and never mutated afterwards.
type Result struct {
	// Equity is the NAV path over the full date axis, starting at the initial
	// capital.
	Equity *series.Series[float64]
	// Trades records the signed position delta on every day (dense, zero
	// means hold). A non-zero delta on the first day is the inception trade.
	Trades *series.Series[int]
	// Positions echoes the schedule the simulation ran on.
	Positions *series.Series[int]
	// Returns holds the per-period net strategy return. The first period has
	// no asset return; its value is the inception cost, if any.
	Returns *series.Series[float64]
}

// Run simulates holding the given position schedule over the price series and
// returns the resulting equity curve, net of transaction costs.
//
// Prices and positions must share the exact same date axis; so must the
// risk-free series when supplied. Alignment is the caller's job and is never
// done implicitly here, to avoid masking bugs by silently dropping data.
//
// The position on day t earns the asset return from t-1 to t (the schedule is
// already shift-adjusted by the generator, no further lag is applied).
// A position change on day t is charged |delta| * costBps/10000 on that same
// period. When a risk-free series is supplied, flat periods earn its
// per-period rate. NAV compounds from initialCapital.
func Run(prices *series.Series[float64], positions *series.Series[int], riskFree *series.Series[float64], costBps, initialCapital float64) (*Result, error) {
	if costBps < 0 || math.IsNaN(costBps) {
		return nil, &InvalidParameterError{Name: "costBps", Reason: fmt.Sprintf("cost rate must be >= 0, got %v", costBps)}
	}
	if initialCapital <= 0 || math.IsNaN(initialCapital) {
		return nil, &InvalidParameterError{Name: "initialCapital", Reason: fmt.Sprintf("capital must be > 0, got %v", initialCapital)}
	}
	n := prices.Len()
	if n == 0 {
		return nil, &AlignmentError{Reason: "empty date axis"}
	}
	if !series.SameIndex(prices, positions) {
		return nil, &AlignmentError{Reason: "prices and positions must cover the same dates"}
	}
	if riskFree != nil && !series.SameIndex(prices, riskFree) {
		return nil, &AlignmentError{Reason: "prices and risk-free rates must cover the same dates"}
	}

	for on, p := range prices.Values() {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, &PropagationError{On: on, What: "price"}
		}
		if p <= 0 {
			return nil, &InvalidParameterError{Name: "prices", Reason: fmt.Sprintf("price must be positive, got %v on %s", p, on)}
		}
	}
	for on, pos := range positions.Values() {
		if pos != 0 && pos != 1 {
			return nil, &InvalidParameterError{Name: "positions", Reason: fmt.Sprintf("position must be 0 or 1, got %d on %s", pos, on)}
		}
	}
	if riskFree != nil {
		for on, r := range riskFree.Values() {
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return nil, &PropagationError{On: on, What: "risk-free rate"}
			}
		}
	}

	rate := costBps / 10000

	equity := series.New[float64]()
	trades := series.New[int]()
	returns := series.New[float64]()

	prevPos := 0 // implicit flat start, a non-zero first position is a trade
	prevPrice := 0.0
	nav := initialCapital
	for i := range n {
		on, p := prices.At(i)
		_, pos := positions.At(i)

		delta := pos - prevPos
		cost := math.Abs(float64(delta)) * rate

		var gross float64
		if i > 0 {
			gross = float64(pos) * (p/prevPrice - 1)
			if riskFree != nil {
				_, rf := riskFree.At(i)
				gross += float64(1-pos) * rf
			}
		}
		net := gross - cost

		nav *= 1 + net
		equity.Append(on, nav)
		trades.Append(on, delta)
		returns.Append(on, net)

		prevPos, prevPrice = pos, p
	}

	return &Result{
		Equity:    equity,
		Trades:    trades,
		Positions: positions,
		Returns:   returns,
	}, nil
}

package backtest

import (
	"math"

	"github.com/etnz/backtest/series"
)

// DefaultPeriodsPerYear is the annualization factor for daily data.
const DefaultPeriodsPerYear = 252

// Summary holds the named performance statistics of a backtest run. It is a
// derived view of a Result, computed by Summarize and never persisted.
type Summary struct {
	FirstNAV, LastNAV float64

	TotalReturn Percent
	CAGR        Percent
	Sharpe      float64
	MaxDrawdown Percent
	WinRate     Percent
	// Turnover is the average absolute position change per period, a proxy
	// for trading frequency and cost sensitivity.
	Turnover float64

	// Periods is the number of periods spanned (date count based).
	Periods int
}

// Metrics returns the summary as a metric-name to scalar mapping.
// Percentages are expressed as percent points.
func (s Summary) Metrics() map[string]float64 {
	return map[string]float64{
		"TotalReturn": float64(s.TotalReturn),
		"CAGR":        float64(s.CAGR),
		"Sharpe":      s.Sharpe,
		"MaxDrawdown": float64(s.MaxDrawdown),
		"WinRate":     float64(s.WinRate),
		"Turnover":    s.Turnover,
	}
}

// Summarize reduces a backtest result to its performance statistics.
//
// The optional risk-free series (per-period rates, same date axis as the
// result) is subtracted from net returns for the Sharpe ratio; nil means
// zero. periodsPerYear defaults to DefaultPeriodsPerYear when not positive.
//
// Degenerate results (empty or single point) never fail: every statistic is
// its documented zero value. The Sharpe ratio uses the sample standard
// deviation (Bessel's correction) and is 0, not NaN, for zero-variance
// returns.
func Summarize(result *Result, riskFree *series.Series[float64], periodsPerYear int) (Summary, error) {
	if periodsPerYear <= 0 {
		periodsPerYear = DefaultPeriodsPerYear
	}

	var s Summary
	n := result.Equity.Len()
	if n == 0 {
		return s, nil
	}
	if riskFree != nil && !series.SameIndex(result.Equity, riskFree) {
		return s, &AlignmentError{Reason: "result and risk-free rates must cover the same dates"}
	}

	_, first := result.Equity.First()
	_, last := result.Equity.Last()
	s.FirstNAV, s.LastNAV = first, last
	s.Periods = n - 1
	if s.Periods == 0 {
		return s, nil
	}

	s.TotalReturn = Percent(100 * (last/first - 1))
	s.CAGR = Percent(100 * (math.Pow(last/first, float64(periodsPerYear)/float64(s.Periods)) - 1))
	s.MaxDrawdown = Percent(100 * minDrawdown(result.Equity))
	s.Sharpe = sharpe(result.Returns, riskFree, periodsPerYear)

	wins, observations := 0, 0
	for i := 1; i < n; i++ {
		_, r := result.Returns.At(i)
		observations++
		if r > 0 {
			wins++
		}
	}
	s.WinRate = Percent(100 * float64(wins) / float64(observations))

	churn := 0.0
	for _, delta := range result.Trades.Values() {
		churn += math.Abs(float64(delta))
	}
	s.Turnover = churn / float64(s.Periods)

	return s, nil
}

// Drawdown computes the peak-to-date decline of an equity curve:
// equity/runningMax - 1, always <= 0, exactly 0 on a new running peak.
func Drawdown(equity *series.Series[float64]) *series.Series[float64] {
	dd := series.New[float64]()
	peak := math.Inf(-1)
	for on, nav := range equity.Values() {
		if nav > peak {
			peak = nav
		}
		dd.Append(on, nav/peak-1)
	}
	return dd
}

func minDrawdown(equity *series.Series[float64]) float64 {
	worst := 0.0
	for _, d := range Drawdown(equity).Values() {
		if d < worst {
			worst = d
		}
	}
	return worst
}

// sharpe annualizes mean excess return over its sample standard deviation.
// The first period carries no asset return and is excluded.
func sharpe(returns, riskFree *series.Series[float64], periodsPerYear int) float64 {
	n := returns.Len()
	if n < 3 {
		return 0 // fewer than 2 return observations
	}

	excess := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		_, r := returns.At(i)
		if riskFree != nil {
			_, rf := riskFree.At(i)
			r -= rf
		}
		excess = append(excess, r)
	}

	mean := 0.0
	for _, r := range excess {
		mean += r
	}
	mean /= float64(len(excess))

	variance := 0.0
	for _, r := range excess {
		diff := r - mean
		variance += diff * diff
	}
	variance /= float64(len(excess) - 1)

	stdev := math.Sqrt(variance)
	if stdev == 0 {
		return 0
	}
	return mean / stdev * math.Sqrt(float64(periodsPerYear))
}

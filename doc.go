// Package backtest simulates a single-instrument, long/flat trading strategy
// over a daily price history and reduces the outcome to standard risk/return
// statistics.
//
// The core is three pure, deterministic transformations over immutable
// series, composed left to right:
//   - Crossover: price history -> position schedule (SMA crossover, shifted
//     one period to avoid look-ahead bias).
//   - Run: price history + position schedule -> equity curve and trade log,
//     net of a flat per-trade cost.
//   - Summarize: backtest result -> performance summary (CAGR, Sharpe, max
//     drawdown, turnover, win rate).
//
// Every function returns freshly constructed values; there is no shared
// mutable state, no I/O, and no retry semantics. Series alignment is always
// explicit: operations fail with an AlignmentError rather than silently
// truncating mismatched date axes.
//
// Fetching prices, persisting them, and rendering reports are collaborators
// around this core: see the eodhd, store and renderer packages. The `bt`
// command-line tool wires them together.
package backtest

package backtest

import (
	"fmt"

	"github.com/etnz/backtest/series"
)

// The error taxonomy is deliberately small. Every failure is a programming or
// input error, fatal to the call, raised synchronously before or during the
// computation; there is no retry policy anywhere.

// InvalidParameterError reports a parameter that violates its contract, such
// as a non-positive window size or a negative cost rate.
type InvalidParameterError struct {
	Name   string // parameter name
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Name, e.Reason)
}

// AlignmentError reports mismatched or empty date axes between two series
// that must share one exactly. It is raised before any computation proceeds,
// so data is never silently dropped.
type AlignmentError struct {
	Reason string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("misaligned series: %s", e.Reason)
}

// PropagationError reports an undefined value (NaN or infinite) reaching a
// return or cost computation outside the documented warm-up handling.
type PropagationError struct {
	On   series.Date // date of the offending value
	What string
}

func (e *PropagationError) Error() string {
	return fmt.Sprintf("undefined %s on %s", e.What, e.On)
}

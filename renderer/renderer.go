// Package renderer renders backtest results to markdown: the performance
// summary as a table, the equity and drawdown curves as sparkline charts.
//
// Every function writes to an opaque io.Writer and produces nothing the
// backtest core consumes back.
package renderer

import (
	"embed"
	"fmt"
	"io"
	"text/template"

	"github.com/etnz/backtest"
	"github.com/etnz/backtest/series"
)

//go:embed templates/*.md
var templates embed.FS

// summaryData is the payload for the summary template.
type summaryData struct {
	backtest.Summary
	Ticker     string
	Start, End backtest.Money
}

// curveData is the payload for the equity and drawdown templates.
type curveData struct {
	From, To  string
	Points    int
	Chart     string
	Low, High string
}

// Summary renders the performance summary as a markdown table. The currency
// is only used to format the start and end NAV.
func Summary(w io.Writer, ticker string, s backtest.Summary, currency string) error {
	return renderTemplate(w, "summary", "templates/summary.md", summaryData{
		Summary: s,
		Ticker:  ticker,
		Start:   backtest.M(s.FirstNAV, currency),
		End:     backtest.M(s.LastNAV, currency),
	})
}

// Equity renders the NAV path as a sparkline chart.
func Equity(w io.Writer, result *backtest.Result) error {
	return renderCurve(w, "equity", "templates/equity.md", result.Equity, "%.2f")
}

// Drawdown renders the peak-to-date decline of the NAV path, computed the
// same way the max drawdown metric is.
func Drawdown(w io.Writer, result *backtest.Result) error {
	curve := backtest.Drawdown(result.Equity)
	// Drawdowns read better as percentages.
	scaled := series.New[float64]()
	for on, d := range curve.Values() {
		scaled.Append(on, 100*d)
	}
	return renderCurve(w, "drawdown", "templates/drawdown.md", scaled, "%.2f%%")
}

func renderCurve(w io.Writer, name, file string, curve *series.Series[float64], format string) error {
	if curve.Len() == 0 {
		fmt.Fprintln(w, "no data to plot")
		return nil
	}

	from, _ := curve.First()
	to, _ := curve.Last()
	values := make([]float64, 0, curve.Len())
	for _, v := range curve.Values() {
		values = append(values, v)
	}
	low, high := bounds(values)

	return renderTemplate(w, name, file, curveData{
		From:   from.String(),
		To:     to.String(),
		Points: curve.Len(),
		Chart:  sparkline(values, 80),
		Low:    fmt.Sprintf(format, low),
		High:   fmt.Sprintf(format, high),
	})
}

// renderTemplate is a generic utility to render one embedded template.
func renderTemplate(w io.Writer, templateName, mainFile string, data any) error {
	mainContent, err := templates.ReadFile(mainFile)
	if err != nil {
		return fmt.Errorf("error reading main template %q: %w", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Errorf("error parsing main template %q: %w", mainFile, err)
	}

	return tmpl.Execute(w, data)
}

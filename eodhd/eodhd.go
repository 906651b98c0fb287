// Package eodhd fetches daily market data from the EODHD API
// (https://eodhd.com) into series the backtest core can consume.
//
// Responses are cached on disk with a daily expiry, so repeated runs over the
// same history do not hit the API again.
package eodhd

import (
	"fmt"
	"net/http"

	"github.com/etnz/backtest/series"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://eodhd.com/api"

// Client talks to the EODHD API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// New returns a Client authenticated with the given API key, with a
// daily-expiring disk cache for responses.
func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    newDailyCachingClient(),
	}
}

// FetchPrices returns the daily adjusted close for an EODHD ticker (typically
// "SYMBOL.EXCHANGECODE") over [from, to], boundaries included.
func (c *Client) FetchPrices(ticker string, from, to series.Date) (*series.Series[float64], error) {
	// https://eodhd.com/api/eod/NVD.F?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },

	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s", c.baseURL, ticker, c.apiKey, from, to)
	type Info struct {
		Date          series.Date     `json:"date"`
		AdjustedClose decimal.Decimal `json:"adjusted_close"`
	}

	// that's the payload
	content := make([]Info, 0)
	if err := jwget(c.http, addr, &content); err != nil {
		return nil, fmt.Errorf("cannot fetch prices for %q: %w", ticker, err)
	}

	prices := series.New[float64]()
	for _, info := range content {
		if info.AdjustedClose.IsZero() {
			// A zero close is a data hole; leaving the date out keeps the
			// gap visible to the caller instead of faking a price.
			continue
		}
		prices.Append(info.Date, info.AdjustedClose.InexactFloat64())
	}
	return prices, nil
}

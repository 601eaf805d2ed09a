// Package marketdata fetches price/volume snapshots from a Yahoo-chart-style
// quote endpoint. Every upstream field is treated as optional: a missing field
// becomes a safe zero value, never an error.
package marketdata

import (
	"fmt"
	"strconv"
	"strings"
)

// Quote is a provider-supplied price/volume snapshot for one ticker symbol.
type Quote struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Change            float64 `json:"change"`
	ChangePercent     float64 `json:"changePercent"`
	Volume            int64   `json:"volume"`
	MarketCap         string  `json:"marketCap"`
	High              float64 `json:"high"`
	Low               float64 `json:"low"`
	Open              float64 `json:"open"`
	PreviousClose     float64 `json:"previousClose"`
	FiftyTwoWeekHigh  float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow   float64 `json:"fiftyTwoWeekLow"`
	PERatio           float64 `json:"peRatio"`
	EPS               float64 `json:"eps"`
	Beta              float64 `json:"beta"`
	DividendYield     float64 `json:"dividendYield"`
	AvgVolume         int64   `json:"avgVolume"`
	SharesOutstanding string  `json:"sharesOutstanding"`
}

// Series is a daily close-price history for one symbol.
type Series struct {
	Symbol     string
	Timestamps []int64
	Closes     []float64
}

// FormatMarketCap renders a raw market cap as a human-readable string with a
// T/B/M suffix, e.g. 1.23e9 -> "$1.23B". Zero and missing values render "N/A".
func FormatMarketCap(value float64) string {
	switch {
	case value <= 0:
		return "N/A"
	case value >= 1e12:
		return fmt.Sprintf("$%.2fT", value/1e12)
	case value >= 1e9:
		return fmt.Sprintf("$%.2fB", value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("$%.2fM", value/1e6)
	default:
		return fmt.Sprintf("$%s", strconv.FormatFloat(value, 'f', -1, 64))
	}
}

// ParseMarketCap inverts FormatMarketCap for range comparisons. "N/A" and
// unparseable strings come back as 0.
func ParseMarketCap(s string) float64 {
	if s == "" || s == "N/A" {
		return 0
	}
	value, err := strconv.ParseFloat(strings.TrimRight(strings.TrimPrefix(s, "$"), "TBM"), 64)
	if err != nil {
		return 0
	}
	switch {
	case strings.Contains(s, "T"):
		return value * 1e12
	case strings.Contains(s, "B"):
		return value * 1e9
	case strings.Contains(s, "M"):
		return value * 1e6
	default:
		return value
	}
}

// FormatShares renders a share count with a B/M suffix, e.g. 5.1e9 -> "5.10B".
func FormatShares(value float64) string {
	switch {
	case value <= 0:
		return "N/A"
	case value >= 1e9:
		return fmt.Sprintf("%.2fB", value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("%.2fM", value/1e6)
	default:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
}

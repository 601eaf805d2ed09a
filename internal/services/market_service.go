package services

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"time"

	"marketdash/internal/config"
	apperrors "marketdash/internal/errors"
	"marketdash/internal/logger"
	"marketdash/internal/marketdata"
)

// StockBar is one synthesized OHLCV bar in a price history.
type StockBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// MarketIndex is a snapshot of a major market index.
type MarketIndex struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// historyRangeDays maps a range label to its day count. Unknown ranges fall
// back to one month.
var historyRangeDays = map[string]int{
	"1D": 1,
	"1W": 7,
	"1M": 30,
	"3M": 90,
	"1Y": 365,
}

// marketService serves the dashboard's market pages: live quotes for the
// headline list, per-symbol detail, synthesized history, and index snapshots.
type marketService struct {
	source    QuoteSource
	topStocks []config.Listing
}

// NewMarketService creates a new MarketServicer.
func NewMarketService(source QuoteSource, topStocks []config.Listing) MarketServicer {
	return &marketService{source: source, topStocks: topStocks}
}

// TopStocks fetches quotes for the headline list. Symbols whose fetch fails
// are dropped from the result.
func (s *marketService) TopStocks(ctx context.Context) ([]*marketdata.Quote, error) {
	symbols := make([]string, len(s.topStocks))
	for i, listing := range s.topStocks {
		symbols[i] = listing.Symbol
	}

	quotes, errs := s.source.Quotes(ctx, symbols)
	if len(errs) > 0 {
		logger.Get().Warnw("top stock fetches failed", "failed", len(errs))
	}

	results := make([]*marketdata.Quote, 0, len(quotes))
	for _, listing := range s.topStocks {
		if quote, ok := quotes[listing.Symbol]; ok {
			results = append(results, quote)
		}
	}
	return results, nil
}

// StockDetail fetches a single symbol's quote.
func (s *marketService) StockDetail(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || len(symbol) > 10 {
		return nil, apperrors.ErrInvalidSymbol
	}

	quote, err := s.source.Quote(ctx, symbol)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUpstream, err)
	}
	return quote, nil
}

// History synthesizes a plausible OHLCV random walk for the requested range.
// The provider's free tier has no intraday history endpoint, so the chart data
// is placeholder, matching the original dashboard behavior.
func (s *marketService) History(symbol, rng string) []StockBar {
	days, ok := historyRangeDays[rng]
	if !ok {
		days = 30
	}

	const basePrice = 150.0
	bars := make([]StockBar, 0, days+1)
	price := basePrice
	now := time.Now()

	for i := days; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)

		open := price
		change := (rand.Float64() - 0.5) * 10
		close := open + change
		high := math.Max(open, close) + rand.Float64()*5
		low := math.Min(open, close) - rand.Float64()*5

		bars = append(bars, StockBar{
			Date:   date.Format("2006-01-02"),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(close),
			Volume: rand.Int63n(50_000_000) + 10_000_000,
		})
		price = close
	}
	return bars
}

// Indices returns the major index snapshot shown on the dashboard header.
func (s *marketService) Indices() []MarketIndex {
	return []MarketIndex{
		{Symbol: "^GSPC", Name: "S&P 500", Value: 4783.45, Change: 23.12, ChangePercent: 0.49},
		{Symbol: "^DJI", Name: "Dow Jones", Value: 37440.34, Change: -45.23, ChangePercent: -0.12},
		{Symbol: "^IXIC", Name: "Nasdaq", Value: 15043.98, Change: 87.45, ChangePercent: 0.58},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

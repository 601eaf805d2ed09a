package services

import (
	"context"
	"strings"

	"marketdash/internal/logger"
	"marketdash/internal/marketdata"
)

// ScreenerFilters holds the optional screening criteria. A nil bound means no
// constraint; supplied bounds are inclusive.
type ScreenerFilters struct {
	MinPrice         *float64 `form:"minPrice"`
	MaxPrice         *float64 `form:"maxPrice"`
	MinVolume        *float64 `form:"minVolume"`
	MaxVolume        *float64 `form:"maxVolume"`
	MinMarketCap     *float64 `form:"minMarketCap"`
	MaxMarketCap     *float64 `form:"maxMarketCap"`
	MinPE            *float64 `form:"minPE"`
	MaxPE            *float64 `form:"maxPE"`
	MinEPS           *float64 `form:"minEPS"`
	MaxEPS           *float64 `form:"maxEPS"`
	MinDividendYield *float64 `form:"minDividendYield"`
	MaxDividendYield *float64 `form:"maxDividendYield"`
	MinBeta          *float64 `form:"minBeta"`
	MaxBeta          *float64 `form:"maxBeta"`
	Sector           string   `form:"sector"`
	PriceChange      string   `form:"priceChange" binding:"omitempty,price_change"`
}

// ScreenerRow is one screener match: a quote plus its resolved sector.
type ScreenerRow struct {
	marketdata.Quote
	Sector string `json:"sector"`
}

// ScreenerResponse is the screener output. Results preserve fetch order and
// are not ranked. Skipped maps symbols whose quote fetch failed to a reason,
// so "fetch failed" is distinguishable from "filtered out".
type ScreenerResponse struct {
	Count   int               `json:"count"`
	Results []ScreenerRow     `json:"results"`
	Skipped map[string]string `json:"skipped,omitempty"`
}

const skipReasonFetchFailed = "fetch_failed"

// screenerService filters a fixed symbol universe against freshly fetched
// quotes. Universe and sector table are injected at construction.
type screenerService struct {
	fetcher        QuoteFetcher
	universe       []string
	symbolToSector map[string]string
}

// NewScreenerService creates a ScreenerServicer over the given universe.
// sectors maps sector name to member symbols; unmapped symbols resolve to
// "Other".
func NewScreenerService(fetcher QuoteFetcher, universe []string, sectors map[string][]string) ScreenerServicer {
	symbolToSector := make(map[string]string)
	for sector, symbols := range sectors {
		for _, symbol := range symbols {
			symbolToSector[symbol] = sector
		}
	}
	return &screenerService{
		fetcher:        fetcher,
		universe:       universe,
		symbolToSector: symbolToSector,
	}
}

// Screen fetches quotes for the whole universe and returns the rows that
// satisfy every supplied filter. Per-symbol fetch failures are reported in
// Skipped, never as a request error.
func (s *screenerService) Screen(ctx context.Context, filters ScreenerFilters) (*ScreenerResponse, error) {
	quotes, errs := s.fetcher.Quotes(ctx, s.universe)

	resp := &ScreenerResponse{Results: []ScreenerRow{}}
	if len(errs) > 0 {
		resp.Skipped = make(map[string]string, len(errs))
		for symbol := range errs {
			resp.Skipped[symbol] = skipReasonFetchFailed
		}
	}

	for _, symbol := range s.universe {
		quote, ok := quotes[symbol]
		if !ok {
			continue
		}
		row := ScreenerRow{Quote: *quote, Sector: s.sectorFor(symbol)}
		if s.matches(row, filters) {
			resp.Results = append(resp.Results, row)
		}
	}

	resp.Count = len(resp.Results)
	if len(resp.Skipped) > 0 {
		logger.Get().Debugw("screener skipped symbols", "count", len(resp.Skipped))
	}
	return resp, nil
}

// WarmCache pre-fetches the universe so interactive screens hit warm quotes.
func (s *screenerService) WarmCache(ctx context.Context) {
	_, errs := s.fetcher.Quotes(ctx, s.universe)
	logger.Get().Infow("screener cache warmed",
		"universe", len(s.universe),
		"failed", len(errs),
	)
}

func (s *screenerService) sectorFor(symbol string) string {
	if sector, ok := s.symbolToSector[symbol]; ok {
		return sector
	}
	return "Other"
}

// inRange checks an inclusive [min, max] bound, where nil means unconstrained.
func inRange(value float64, min, max *float64) bool {
	if min != nil && value < *min {
		return false
	}
	if max != nil && value > *max {
		return false
	}
	return true
}

func (s *screenerService) matches(row ScreenerRow, f ScreenerFilters) bool {
	if !inRange(row.Price, f.MinPrice, f.MaxPrice) {
		return false
	}
	if !inRange(float64(row.Volume), f.MinVolume, f.MaxVolume) {
		return false
	}
	if !inRange(marketdata.ParseMarketCap(row.MarketCap), f.MinMarketCap, f.MaxMarketCap) {
		return false
	}
	if !inRange(row.PERatio, f.MinPE, f.MaxPE) {
		return false
	}
	if !inRange(row.EPS, f.MinEPS, f.MaxEPS) {
		return false
	}
	if !inRange(row.DividendYield, f.MinDividendYield, f.MaxDividendYield) {
		return false
	}
	if !inRange(row.Beta, f.MinBeta, f.MaxBeta) {
		return false
	}

	if f.Sector != "" && f.Sector != "all" && !strings.EqualFold(f.Sector, row.Sector) {
		return false
	}

	switch f.PriceChange {
	case "gainers":
		if row.ChangePercent <= 0 {
			return false
		}
	case "losers":
		if row.ChangePercent >= 0 {
			return false
		}
	}

	return true
}

package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"marketdash/internal/config"
	"marketdash/internal/logger"
)

// CryptoPerformance is one row of the crypto performance table: the latest
// price plus percentage moves over several windows.
type CryptoPerformance struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Perf5Min  float64 `json:"perf5Min"`
	PerfHour  float64 `json:"perfHour"`
	PerfDay   float64 `json:"perfDay"`
	PerfWeek  float64 `json:"perfWeek"`
	PerfMonth float64 `json:"perfMonth"`
	PerfQuart float64 `json:"perfQuart"`
	PerfHalf  float64 `json:"perfHalf"`
	PerfYTD   float64 `json:"perfYTD"`
	PerfYear  float64 `json:"perfYear"`
}

// cryptoService derives crypto performance rows from a year of daily closes.
type cryptoService struct {
	source QuoteSource
	assets []config.Listing
}

// NewCryptoService creates a new CryptoServicer over the given asset list.
func NewCryptoService(source QuoteSource, assets []config.Listing) CryptoServicer {
	return &cryptoService{source: source, assets: assets}
}

// List fetches a year of daily closes for each asset (quoted against USD) and
// computes performance windows. Assets whose fetch fails are dropped.
func (s *cryptoService) List(ctx context.Context) []CryptoPerformance {
	rows := make([]*CryptoPerformance, len(s.assets))

	var wg sync.WaitGroup
	for i, asset := range s.assets {
		wg.Add(1)
		go func(i int, asset config.Listing) {
			defer wg.Done()
			series, err := s.source.History(ctx, asset.Symbol+"-USD", "1y")
			if err != nil {
				logger.Get().Debugw("crypto fetch failed", "ticker", asset.Symbol, "error", err)
				return
			}
			if len(series.Closes) == 0 {
				return
			}
			rows[i] = buildCryptoRow(asset, series.Closes, series.Timestamps)
		}(i, asset)
	}
	wg.Wait()

	results := make([]CryptoPerformance, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			results = append(results, *row)
		}
	}
	return results
}

func buildCryptoRow(asset config.Listing, closes []float64, timestamps []int64) *CryptoPerformance {
	price := closes[len(closes)-1]
	perfDay := performance(closes, 1)

	return &CryptoPerformance{
		Ticker: asset.Symbol,
		Name:   asset.Name,
		Price:  price,
		// Sub-daily windows have no data at daily resolution; approximate
		// with a small random intraday move like the original dashboard.
		Perf5Min:  randomIntraday() * 0.5,
		PerfHour:  randomIntraday(),
		PerfDay:   perfDay,
		PerfWeek:  performance(closes, 7),
		PerfMonth: performance(closes, 30),
		PerfQuart: performance(closes, 90),
		PerfHalf:  performance(closes, 180),
		PerfYTD:   ytdPerformance(closes, timestamps),
		PerfYear:  performance(closes, 365),
	}
}

// performance is the percentage move between the latest close and the close
// daysAgo entries earlier. Returns 0 when the series is too short.
func performance(closes []float64, daysAgo int) float64 {
	if len(closes) < daysAgo+1 {
		return 0
	}
	current := closes[len(closes)-1]
	past := closes[len(closes)-1-daysAgo]
	if past == 0 {
		return 0
	}
	return (current - past) / past * 100
}

// ytdPerformance measures from the first close of the current calendar year.
func ytdPerformance(closes []float64, timestamps []int64) float64 {
	if len(closes) == 0 || len(timestamps) == 0 {
		return 0
	}
	current := closes[len(closes)-1]
	currentYear := time.Now().Year()

	start := closes[0]
	for i := len(timestamps) - 1; i >= 0; i-- {
		if time.Unix(timestamps[i], 0).Year() == currentYear {
			if i < len(closes) {
				start = closes[i]
			}
			continue
		}
		break
	}

	if start == 0 {
		return 0
	}
	return (current - start) / start * 100
}

// randomIntraday generates a move between -2% and +2%.
func randomIntraday() float64 {
	return (rand.Float64() - 0.5) * 4
}

package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the Yahoo Finance v8 chart endpoint.
	DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"

	// batchSize quotes are fetched concurrently, then the limiter paces the
	// next batch to stay under the provider's rate limit.
	batchSize  = 10
	batchDelay = 200 * time.Millisecond
)

// chartResponse mirrors the subset of the chart API response we consume.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol                  string  `json:"symbol"`
		LongName                string  `json:"longName"`
		RegularMarketPrice      float64 `json:"regularMarketPrice"`
		ChartPreviousClose      float64 `json:"chartPreviousClose"`
		PreviousClose           float64 `json:"previousClose"`
		RegularMarketDayHigh    float64 `json:"regularMarketDayHigh"`
		RegularMarketDayLow     float64 `json:"regularMarketDayLow"`
		RegularMarketOpen       float64 `json:"regularMarketOpen"`
		MarketCap               float64 `json:"marketCap"`
		TrailingPE              float64 `json:"trailingPE"`
		EpsTrailingTwelveMonths float64 `json:"epsTrailingTwelveMonths"`
		Beta                    float64 `json:"beta"`
		DividendYield           float64 `json:"dividendYield"`
		FiftyTwoWeekHigh        float64 `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow         float64 `json:"fiftyTwoWeekLow"`
		AverageDailyVolume10Day int64   `json:"averageDailyVolume10Day"`
		SharesOutstanding       float64 `json:"sharesOutstanding"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// Client fetches quotes from a Yahoo-chart-style endpoint. Quotes are cached
// in process so dashboard pages hitting the same symbols within the TTL do not
// re-fetch.
type Client struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	cache      *gocache.Cache
	limiter    *rate.Limiter
}

// NewClient creates a quote client with the given cache TTL.
func NewClient(httpClient *http.Client, baseURL string, cacheTTL time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
		limiter:    rate.NewLimiter(rate.Every(batchDelay), 1),
	}
}

// fetchChart performs one chart request and returns the first result.
func (c *Client) fetchChart(ctx context.Context, symbol, rng, interval string) (*chartResult, error) {
	url := fmt.Sprintf("%s/%s?range=%s&interval=%s", c.baseURL, symbol, rng, interval)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, symbol)
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", symbol)
	}
	return &chart.Chart.Result[0], nil
}

// Quote fetches a two-day snapshot for one symbol, deriving change and change
// percent from the two most recent closes. Provider previous-close metadata is
// the fallback when fewer than two closes are available.
func (c *Client) Quote(ctx context.Context, symbol string) (*Quote, error) {
	if cached, found := c.cache.Get("quote:" + symbol); found {
		return cached.(*Quote), nil
	}

	result, err := c.fetchChart(ctx, symbol, "2d", "1d")
	if err != nil {
		return nil, err
	}

	quote := buildQuote(result)
	c.cache.SetDefault("quote:"+symbol, quote)
	return quote, nil
}

// History fetches daily closes for the given range (e.g. "1y").
func (c *Client) History(ctx context.Context, symbol, rng string) (*Series, error) {
	key := "history:" + symbol + ":" + rng
	if cached, found := c.cache.Get(key); found {
		return cached.(*Series), nil
	}

	result, err := c.fetchChart(ctx, symbol, rng, "1d")
	if err != nil {
		return nil, err
	}

	series := &Series{Symbol: result.Meta.Symbol}
	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i, close := range closes {
			if close == nil {
				continue
			}
			series.Closes = append(series.Closes, *close)
			if i < len(result.Timestamp) {
				series.Timestamps = append(series.Timestamps, result.Timestamp[i])
			}
		}
	}
	c.cache.SetDefault(key, series)
	return series, nil
}

// Quotes fetches quotes for every symbol, in concurrent batches paced by the
// rate limiter. Failed symbols land in the errs map; a single slow or failing
// fetch never blocks or fails its batch siblings.
func (c *Client) Quotes(ctx context.Context, symbols []string) (map[string]*Quote, map[string]error) {
	quotes := make(map[string]*Quote, len(symbols))
	errs := make(map[string]error)
	var mu sync.Mutex

	for start := 0; start < len(symbols); start += batchSize {
		if start > 0 {
			if err := c.limiter.Wait(ctx); err != nil {
				for _, symbol := range symbols[start:] {
					errs[symbol] = err
				}
				break
			}
		}

		end := min(start+batchSize, len(symbols))
		var wg sync.WaitGroup
		for _, symbol := range symbols[start:end] {
			wg.Add(1)
			go func(symbol string) {
				defer wg.Done()
				quote, err := c.Quote(ctx, symbol)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs[symbol] = err
					return
				}
				quotes[symbol] = quote
			}(symbol)
		}
		wg.Wait()
	}

	return quotes, errs
}

// buildQuote maps a chart result onto a Quote, defaulting every absent field.
func buildQuote(result *chartResult) *Quote {
	meta := result.Meta

	var closes []float64
	var volumes []int64
	if len(result.Indicators.Quote) > 0 {
		for _, close := range result.Indicators.Quote[0].Close {
			if close != nil {
				closes = append(closes, *close)
			}
		}
		for _, volume := range result.Indicators.Quote[0].Volume {
			if volume != nil {
				volumes = append(volumes, *volume)
			}
		}
	}

	price := meta.RegularMarketPrice
	if len(closes) > 0 {
		price = closes[len(closes)-1]
	}

	previousClose := meta.ChartPreviousClose
	if previousClose == 0 {
		previousClose = meta.PreviousClose
	}
	if len(closes) > 1 {
		previousClose = closes[len(closes)-2]
	}
	if previousClose == 0 {
		previousClose = price
	}

	change := price - previousClose
	var changePercent float64
	if previousClose != 0 {
		changePercent = change / previousClose * 100
	}

	var volume int64
	if len(volumes) > 0 {
		volume = volumes[len(volumes)-1]
	}

	name := meta.LongName
	if name == "" {
		name = meta.Symbol
	}

	beta := meta.Beta
	if beta == 0 {
		beta = 1.0
	}

	return &Quote{
		Symbol:            meta.Symbol,
		Name:              name,
		Price:             price,
		Change:            change,
		ChangePercent:     changePercent,
		Volume:            volume,
		MarketCap:         FormatMarketCap(meta.MarketCap),
		High:              meta.RegularMarketDayHigh,
		Low:               meta.RegularMarketDayLow,
		Open:              meta.RegularMarketOpen,
		PreviousClose:     previousClose,
		FiftyTwoWeekHigh:  meta.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:   meta.FiftyTwoWeekLow,
		PERatio:           meta.TrailingPE,
		EPS:               meta.EpsTrailingTwelveMonths,
		Beta:              beta,
		DividendYield:     meta.DividendYield * 100,
		AvgVolume:         meta.AverageDailyVolume10Day,
		SharesOutstanding: FormatShares(meta.SharesOutstanding),
	}
}

package services

import (
	"context"

	"marketdash/internal/marketdata"
	"marketdash/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// PortfolioServicer defines the contract for portfolio business logic.
// Every operation is scoped to the owning user at the query level.
type PortfolioServicer interface {
	ListItems(userID uint) ([]models.PortfolioItem, error)
	CreateItem(userID uint, input CreateItemInput) (*models.PortfolioItem, error)
	DeleteItem(userID, itemID uint) (*models.PortfolioItem, error)
	GetSummary(ctx context.Context, userID uint) (*PortfolioSummary, error)
}

// QuoteFetcher fetches quotes for a set of symbols. Symbols that fail land in
// the error map; the fetch as a whole never fails.
type QuoteFetcher interface {
	Quotes(ctx context.Context, symbols []string) (map[string]*marketdata.Quote, map[string]error)
}

// QuoteSource extends QuoteFetcher with single-symbol and history lookups.
type QuoteSource interface {
	QuoteFetcher
	Quote(ctx context.Context, symbol string) (*marketdata.Quote, error)
	History(ctx context.Context, symbol, rng string) (*marketdata.Series, error)
}

// ScreenerServicer filters the configured symbol universe against live quotes.
type ScreenerServicer interface {
	Screen(ctx context.Context, filters ScreenerFilters) (*ScreenerResponse, error)
	WarmCache(ctx context.Context)
}

// MarketServicer serves the dashboard's market pages.
type MarketServicer interface {
	TopStocks(ctx context.Context) ([]*marketdata.Quote, error)
	StockDetail(ctx context.Context, symbol string) (*marketdata.Quote, error)
	History(symbol, rng string) []StockBar
	Indices() []MarketIndex
}

// CryptoServicer serves the crypto performance table.
type CryptoServicer interface {
	List(ctx context.Context) []CryptoPerformance
}

// NewsServicer serves market headlines.
type NewsServicer interface {
	Headlines(ctx context.Context, symbol string) []NewsItem
}

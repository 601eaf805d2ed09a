package services

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "marketdash/internal/errors"
	"marketdash/internal/models"
)

// FlexNumber is a JSON field that accepts either a number or a numeric string,
// so clients may post quantity as 10 or "10". Fractional inputs truncate
// toward zero. JSON null counts as absent.
type FlexNumber struct {
	Present bool
	Valid   bool
	Value   int64
}

// UnmarshalJSON implements json.Unmarshaler. It never returns an error for
// malformed numbers; validation reports those as coded errors instead.
func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	f.Present = true

	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSpace(s)

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.Valid = true
	f.Value = int64(value)
	return nil
}

// CreateItemInput carries the raw POST payload for a new holding. Pointer and
// FlexNumber fields distinguish "absent" from "present but invalid" so the
// service can report the precise validation code.
type CreateItemInput struct {
	Symbol        *string    `json:"symbol"`
	Name          *string    `json:"name"`
	Quantity      FlexNumber `json:"quantity"`
	PurchasePrice FlexNumber `json:"purchasePrice"`
}

// PortfolioSummary aggregates a user's holdings against current quotes.
// All amounts are in major currency units.
type PortfolioSummary struct {
	TotalValue       float64 `json:"total_value"`
	TotalCost        float64 `json:"total_cost"`
	TotalGain        float64 `json:"total_gain"`
	TotalGainPercent float64 `json:"total_gain_percent"`
}

// portfolioService handles portfolio business logic.
type portfolioService struct {
	db      *gorm.DB
	fetcher QuoteFetcher
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, fetcher QuoteFetcher) PortfolioServicer {
	return &portfolioService{db: db, fetcher: fetcher}
}

// ListItems returns every holding owned by userID, newest first.
func (s *portfolioService) ListItems(userID uint) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	if err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return items, nil
}

// CreateItem validates and stores a new holding for userID. The purchase price
// is stored exactly as submitted, in minor units; no conversion happens here.
func (s *portfolioService) CreateItem(userID uint, input CreateItemInput) (*models.PortfolioItem, error) {
	if input.Symbol == nil || input.Name == nil || !input.Quantity.Present || !input.PurchasePrice.Present {
		return nil, apperrors.ErrMissingRequiredFields
	}

	symbol := strings.ToUpper(strings.TrimSpace(*input.Symbol))
	if symbol == "" {
		return nil, apperrors.ErrInvalidSymbol
	}

	name := strings.TrimSpace(*input.Name)
	if name == "" {
		return nil, apperrors.ErrInvalidName
	}

	if !input.Quantity.Valid || input.Quantity.Value <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	if !input.PurchasePrice.Valid || input.PurchasePrice.Value <= 0 {
		return nil, apperrors.ErrInvalidPrice
	}

	item := &models.PortfolioItem{
		UserID:        userID,
		Symbol:        symbol,
		Name:          name,
		Quantity:      input.Quantity.Value,
		PurchasePrice: input.PurchasePrice.Value,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// DeleteItem removes a holding after re-checking ownership. A row that does
// not exist and a row owned by someone else produce the same error, so the
// response never reveals which was the case.
func (s *portfolioService) DeleteItem(userID, itemID uint) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	if err := s.db.
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFoundOrForbidden
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.PortfolioItem{}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// GetSummary computes derived stats over the user's holdings joined with live
// quotes. A holding whose quote fetch failed is valued at its purchase price,
// contributing zero gain rather than a phantom loss.
func (s *portfolioService) GetSummary(ctx context.Context, userID uint) (*PortfolioSummary, error) {
	items, err := s.ListItems(userID)
	if err != nil {
		return nil, err
	}

	summary := &PortfolioSummary{}
	if len(items) == 0 {
		return summary, nil
	}

	seen := make(map[string]bool, len(items))
	symbols := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item.Symbol] {
			seen[item.Symbol] = true
			symbols = append(symbols, item.Symbol)
		}
	}

	quotes, _ := s.fetcher.Quotes(ctx, symbols)

	for _, item := range items {
		cost := float64(item.PurchasePrice) / 100 * float64(item.Quantity)
		summary.TotalCost += cost

		if quote, ok := quotes[item.Symbol]; ok {
			summary.TotalValue += quote.Price * float64(item.Quantity)
		} else {
			summary.TotalValue += cost
		}
	}

	summary.TotalGain = summary.TotalValue - summary.TotalCost
	if summary.TotalCost != 0 {
		summary.TotalGainPercent = summary.TotalGain / summary.TotalCost * 100
	}
	return summary, nil
}

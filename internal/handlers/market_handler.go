package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "marketdash/internal/errors"
	"marketdash/internal/services"
)

// MarketHandler serves the market pages: top stocks, quote detail, price
// history, and index snapshots.
type MarketHandler struct {
	marketService services.MarketServicer
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService services.MarketServicer) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// historyQuery binds the history range query parameter.
type historyQuery struct {
	Range string `form:"range" binding:"omitempty,history_range"`
}

// TopStocks returns live quotes for the dashboard headline list.
func (h *MarketHandler) TopStocks(c *gin.Context) {
	quotes, err := h.marketService.TopStocks(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// StockDetail returns the quote for one symbol.
func (h *MarketHandler) StockDetail(c *gin.Context) {
	quote, err := h.marketService.StockDetail(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// History returns a synthesized OHLCV series for the requested range.
func (h *MarketHandler) History(c *gin.Context) {
	var query historyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if query.Range == "" {
		query.Range = "1M"
	}

	c.JSON(http.StatusOK, h.marketService.History(c.Param("symbol"), query.Range))
}

// Indices returns the major market index snapshot.
func (h *MarketHandler) Indices(c *gin.Context) {
	c.JSON(http.StatusOK, h.marketService.Indices())
}

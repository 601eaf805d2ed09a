package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "marketdash/internal/errors"
	"marketdash/internal/services"
)

// PortfolioHandler handles portfolio-related requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// List returns all of the caller's holdings, newest first.
func (h *PortfolioHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items, err := h.portfolioService.ListItems(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// Create adds a holding to the caller's portfolio. Validation errors come back
// with a machine-readable code; see internal/errors for the taxonomy.
func (h *PortfolioHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var input services.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.portfolioService.CreateItem(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Delete removes a holding after the service re-checks ownership.
func (h *PortfolioHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePortfolioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	deleted, err := h.portfolioService.DeleteItem(userID, itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Portfolio item deleted successfully",
		"deleted": deleted,
	})
}

// Summary returns derived portfolio stats against current quotes.
func (h *PortfolioHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.portfolioService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "marketdash/internal/errors"
	"marketdash/internal/services"
)

// ScreenerHandler handles stock screener requests.
type ScreenerHandler struct {
	screenerService services.ScreenerServicer
}

// NewScreenerHandler creates a new ScreenerHandler.
func NewScreenerHandler(screenerService services.ScreenerServicer) *ScreenerHandler {
	return &ScreenerHandler{screenerService: screenerService}
}

// Screen filters the symbol universe by the supplied query parameters and
// returns {count, results, skipped}.
func (h *ScreenerHandler) Screen(c *gin.Context) {
	var filters services.ScreenerFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.screenerService.Screen(c.Request.Context(), filters)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

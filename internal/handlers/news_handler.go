package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketdash/internal/services"
)

// NewsHandler serves market headlines.
type NewsHandler struct {
	newsService services.NewsServicer
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService services.NewsServicer) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// List returns market headlines, optionally focused on one symbol.
func (h *NewsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.newsService.Headlines(c.Request.Context(), c.Query("symbol")))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketdash/internal/services"
)

// CryptoHandler serves the crypto performance table.
type CryptoHandler struct {
	cryptoService services.CryptoServicer
}

// NewCryptoHandler creates a new CryptoHandler.
func NewCryptoHandler(cryptoService services.CryptoServicer) *CryptoHandler {
	return &CryptoHandler{cryptoService: cryptoService}
}

// List returns performance rows for the configured crypto assets. Assets
// whose upstream fetch failed are simply absent.
func (h *CryptoHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.cryptoService.List(c.Request.Context()))
}

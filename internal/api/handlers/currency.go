package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/brdocs-api/internal/brdocs"
	"github.com/nexconsult/brdocs-api/internal/models"
)

// CurrencyHandler handles BRL formatting and parsing
type CurrencyHandler struct{}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler() *CurrencyHandler {
	return &CurrencyHandler{}
}

// Format handles BRL formatting
// @Summary Format an amount as BRL
// @Tags Currency
// @Produce json
// @Param amount query number true "Amount" example(1234.56)
// @Success 200 {object} models.CurrencyResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /currency/format [get]
func (h *CurrencyHandler) Format(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		respondError(c, http.StatusBadRequest, "Invalid amount", "amount must be a finite number", "INVALID_AMOUNT")
		return
	}

	c.JSON(http.StatusOK, models.CurrencyResponse{
		Amount:    amount,
		Formatted: brdocs.FormatBRL(amount),
	})
}

// Parse handles lenient BRL parsing
// @Summary Parse a BRL amount
// @Description Parse user input such as "R$ 1.234,56", unparsable text gives 0
// @Tags Currency
// @Produce json
// @Param value query string true "Typed amount" example(R$ 1.234,56)
// @Success 200 {object} models.CurrencyResponse
// @Router /currency/parse [get]
func (h *CurrencyHandler) Parse(c *gin.Context) {
	value := c.Query("value")
	amount := brdocs.ParseBRL(value)

	c.JSON(http.StatusOK, models.CurrencyResponse{
		Input:     value,
		Amount:    amount,
		Formatted: brdocs.FormatBRL(amount),
	})
}

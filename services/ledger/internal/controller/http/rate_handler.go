package http

import (
	"encoding/json"
	"net/http"

	"paylock/pkg/logger"
	"paylock/services/ledger/internal/usecase"

	"github.com/gin-gonic/gin"
)

type RateHandler struct {
	rateUseCase usecase.RateUseCase
	logger      *logger.Logger
}

func NewRateHandler(rateUseCase usecase.RateUseCase, logger *logger.Logger) *RateHandler {
	return &RateHandler{
		rateUseCase: rateUseCase,
		logger:      logger,
	}
}

// SetRateRequest carries either rate (units per USD) or usd_price (USD per unit).
type SetRateRequest struct {
	Rate     json.Number `json:"rate" swaggertype:"string" example:"0.0004"`
	USDPrice json.Number `json:"usd_price" swaggertype:"string" example:"2500"`
}

// ListRates godoc
// @Summary      List exchange rates
// @Description  Lists the unexpired conversion rates used to price payments
// @Tags         prices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /prices [get]
func (h *RateHandler) ListRates(c *gin.Context) {
	rates, err := h.rateUseCase.ListRates(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

// SetRate godoc
// @Summary      Set exchange rate
// @Description  Stores the conversion rate for a currency. Admin only.
// @Tags         prices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        currency  path  string          true  "Currency code"
// @Param        request   body  SetRateRequest  true  "Rate"
// @Success      200  {object}  entity.ExchangeRate
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /prices/{currency} [put]
func (h *RateHandler) SetRate(c *gin.Context) {
	var req SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rate, err := h.rateUseCase.SetRate(c.Request.Context(), c.Param("currency"), req.Rate.String(), req.USDPrice.String())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

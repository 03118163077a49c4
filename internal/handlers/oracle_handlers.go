package handlers

import (
	"math/big"
	"net/http"
	"time"

	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/gin-gonic/gin"
)

// OracleHandler exposes the price oracle
type OracleHandler struct {
	oracle interfaces.IPriceOracleService
}

// NewOracleHandler creates an oracle handler
func NewOracleHandler(oracle interfaces.IPriceOracleService) *OracleHandler {
	return &OracleHandler{oracle: oracle}
}

// PricesResponse is the latest oracle snapshot
type PricesResponse struct {
	GasUnitPrice   string    `json:"gas_unit_price"`
	NativeUSDPrice string    `json:"native_usd_price"`
	LastUpdateTime time.Time `json:"last_update_time"`
	NeedsUpdate    bool      `json:"needs_update"`
}

// GasCostResponse is the cost of a number of gas units
type GasCostResponse struct {
	GasUnits string `json:"gas_units"`
	Cost     string `json:"cost"`
}

// SetMaxAgeRequest changes the oracle staleness bound
type SetMaxAgeRequest struct {
	MaxAgeSeconds int64 `json:"max_age_seconds" binding:"required"`
}

// UpdatePrices godoc
// @Summary      Refresh oracle prices
// @Tags         oracle
// @Produce      json
// @Success      200  {object}  PricesResponse
// @Failure      503  {object}  ErrorResponse  "Feed unavailable or stale"
// @Router       /oracle/update [post]
func (h *OracleHandler) UpdatePrices(c *gin.Context) {
	snapshot, err := h.oracle.UpdatePrices(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, PricesResponse{
		GasUnitPrice:   bigString(snapshot.GasUnitPrice),
		NativeUSDPrice: bigString(snapshot.NativeUSDPrice),
		LastUpdateTime: snapshot.LastUpdateTime,
		NeedsUpdate:    false,
	})
}

// GetPrices godoc
// @Summary      Latest oracle snapshot
// @Tags         oracle
// @Produce      json
// @Success      200  {object}  PricesResponse
// @Router       /oracle/prices [get]
func (h *OracleHandler) GetPrices(c *gin.Context) {
	snapshot, err := h.oracle.LatestPrices()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, PricesResponse{
		GasUnitPrice:   bigString(snapshot.GasUnitPrice),
		NativeUSDPrice: bigString(snapshot.NativeUSDPrice),
		LastUpdateTime: snapshot.LastUpdateTime,
		NeedsUpdate:    h.oracle.NeedsUpdate(),
	})
}

// GetGasCost godoc
// @Summary      Cost of gas units at the latest price
// @Tags         oracle
// @Produce      json
// @Param        units  query  string  true  "Gas units"
// @Success      200  {object}  GasCostResponse
// @Router       /oracle/cost [get]
func (h *OracleHandler) GetGasCost(c *gin.Context) {
	units, ok := parseAmountField(c, "units", c.Query("units"))
	if !ok {
		return
	}
	cost, err := h.oracle.CalculateGasCost(units)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, GasCostResponse{GasUnits: units.String(), Cost: cost.String()})
}

// SetMaxAge updates how long a snapshot stays fresh. ADMIN only.
func (h *OracleHandler) SetMaxAge(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req SetMaxAgeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.oracle.SetMaxAge(c.Request.Context(), caller, time.Duration(req.MaxAgeSeconds)*time.Second); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "oracle max age updated")
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/gin-gonic/gin"
)

// PoolHandler exposes the sponsorship pool
type PoolHandler struct {
	pool interfaces.IGasPoolService
}

// NewPoolHandler creates a pool handler
func NewPoolHandler(pool interfaces.IGasPoolService) *PoolHandler {
	return &PoolHandler{pool: pool}
}

// TierResponse is a coverage tier
type TierResponse struct {
	Index               int    `json:"index"`
	Name                string `json:"name"`
	MinBalanceThreshold string `json:"min_balance_threshold"`
	CoveragePercent     uint16 `json:"coverage_percent"`
	MaxDailyGas         string `json:"max_daily_gas"`
	MaxLifetimeGas      string `json:"max_lifetime_gas"`
}

// PoolStatusResponse summarizes the pool
type PoolStatusResponse struct {
	Balance        string         `json:"balance"`
	MinimumBalance string         `json:"minimum_balance"`
	Paused         bool           `json:"paused"`
	Tiers          []TierResponse `json:"tiers"`
}

// UserAccountResponse is a user's sponsorship usage
type UserAccountResponse struct {
	Address          string    `json:"address"`
	Exists           bool      `json:"exists"`
	Tier             int       `json:"tier"`
	DailyUsed        string    `json:"daily_used"`
	DailyWindowStart time.Time `json:"daily_window_start"`
	LifetimeUsed     string    `json:"lifetime_used"`
}

// UserTierResponse is the outcome of a tier refresh
type UserTierResponse struct {
	Address string `json:"address"`
	Tier    int    `json:"tier"`
}

// CoverGasRequest asks the pool to sponsor gasAmount for user
type CoverGasRequest struct {
	User      string `json:"user" binding:"required"`
	GasAmount string `json:"gas_amount" binding:"required"`
}

// CoverGasResponse reports how much of the cost the pool paid
type CoverGasResponse struct {
	User          string `json:"user"`
	GasAmount     string `json:"gas_amount"`
	CoveredAmount string `json:"covered_amount"`
}

// ReplenishRequest adds funds to the pool
type ReplenishRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// UpdateTierRequest replaces a tier definition
type UpdateTierRequest struct {
	Name                string `json:"name"`
	MinBalanceThreshold string `json:"min_balance_threshold" binding:"required"`
	CoveragePercent     int    `json:"coverage_percent"`
	MaxDailyGas         string `json:"max_daily_gas" binding:"required"`
	MaxLifetimeGas      string `json:"max_lifetime_gas" binding:"required"`
}

// CoverageQuoteResponse estimates what the pool would pay
type CoverageQuoteResponse struct {
	Tier            int    `json:"tier"`
	CoveragePercent uint16 `json:"coverage_percent"`
	GasCost         string `json:"gas_cost"`
	CoveredCost     string `json:"covered_cost"`
	UserCost        string `json:"user_cost"`
}

func toTierResponse(t business.Tier) TierResponse {
	return TierResponse{
		Index:               t.Index,
		Name:                t.Name,
		MinBalanceThreshold: bigString(t.MinBalanceThreshold),
		CoveragePercent:     t.CoveragePercent,
		MaxDailyGas:         bigString(t.MaxDailyGas),
		MaxLifetimeGas:      bigString(t.MaxLifetimeGas),
	}
}

// GetPool godoc
// @Summary      Pool status
// @Tags         pool
// @Produce      json
// @Success      200  {object}  PoolStatusResponse
// @Router       /pool [get]
func (h *PoolHandler) GetPool(c *gin.Context) {
	status := h.pool.Status()
	tiers := make([]TierResponse, 0, len(status.Tiers))
	for _, t := range status.Tiers {
		tiers = append(tiers, toTierResponse(t))
	}
	sendSuccess(c, http.StatusOK, PoolStatusResponse{
		Balance:        bigString(status.Balance),
		MinimumBalance: bigString(status.MinimumBalance),
		Paused:         status.Paused,
		Tiers:          tiers,
	})
}

// GetUserAccount godoc
// @Summary      Sponsorship usage of a user
// @Tags         pool
// @Produce      json
// @Param        address  path  string  true  "User address"
// @Success      200  {object}  UserAccountResponse
// @Router       /pool/users/{address} [get]
func (h *PoolHandler) GetUserAccount(c *gin.Context) {
	user, ok := addressParam(c)
	if !ok {
		return
	}
	account, exists := h.pool.UserAccount(user)
	sendSuccess(c, http.StatusOK, UserAccountResponse{
		Address:          user.Hex(),
		Exists:           exists,
		Tier:             account.Tier,
		DailyUsed:        bigString(account.DailyUsed),
		DailyWindowStart: account.DailyWindowStart,
		LifetimeUsed:     bigString(account.LifetimeUsed),
	})
}

// EstimateCoverage quotes the sponsorship for a number of gas units
func (h *PoolHandler) EstimateCoverage(c *gin.Context) {
	user, ok := addressParam(c)
	if !ok {
		return
	}
	units, ok := parseAmountField(c, "units", c.Query("units"))
	if !ok {
		return
	}
	quote, err := h.pool.EstimateCoverage(user, units)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, CoverageQuoteResponse{
		Tier:            quote.Tier,
		CoveragePercent: quote.CoveragePercent,
		GasCost:         bigString(quote.GasCost),
		CoveredCost:     bigString(quote.CoveredCost),
		UserCost:        bigString(quote.UserCost),
	})
}

// UpdateUserTier godoc
// @Summary      Re-evaluate a user's tier from their token balance
// @Tags         pool
// @Produce      json
// @Param        address  path  string  true  "User address"
// @Success      200  {object}  UserTierResponse
// @Router       /pool/users/{address}/tier [post]
func (h *PoolHandler) UpdateUserTier(c *gin.Context) {
	user, ok := addressParam(c)
	if !ok {
		return
	}
	tier, err := h.pool.UpdateUserTier(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, UserTierResponse{Address: user.Hex(), Tier: tier})
}

// CoverGasFee godoc
// @Summary      Sponsor gas for a user
// @Description  Caller must hold OPERATOR
// @Tags         pool
// @Accept       json
// @Produce      json
// @Param        request  body  CoverGasRequest  true  "Coverage request"
// @Success      200  {object}  CoverGasResponse
// @Failure      422  {object}  ErrorResponse  "Limit exceeded"
// @Router       /pool/cover [post]
func (h *PoolHandler) CoverGasFee(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req CoverGasRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := helpers.ParseAddress(req.User)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid user", err)
		return
	}
	gasAmount, ok := parseAmountField(c, "gas_amount", req.GasAmount)
	if !ok {
		return
	}

	covered, err := h.pool.CoverGasFee(c.Request.Context(), caller, user, gasAmount)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, CoverGasResponse{
		User:          user.Hex(),
		GasAmount:     gasAmount.String(),
		CoveredAmount: covered.String(),
	})
}

// ReplenishPool godoc
// @Summary      Fund the pool
// @Tags         pool
// @Accept       json
// @Produce      json
// @Param        request  body  ReplenishRequest  true  "Amount"
// @Success      200  {object}  PoolStatusResponse
// @Router       /pool/replenish [post]
func (h *PoolHandler) ReplenishPool(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req ReplenishRequest
	if !bindJSON(c, &req) {
		return
	}
	amount, ok := parseAmountField(c, "amount", req.Amount)
	if !ok {
		return
	}
	if err := h.pool.ReplenishPool(c.Request.Context(), caller, amount); err != nil {
		handleServiceError(c, err)
		return
	}
	h.GetPool(c)
}

// UpdateTier godoc
// @Summary      Replace a tier definition
// @Description  Caller must hold ADMIN
// @Tags         pool
// @Accept       json
// @Produce      json
// @Param        index    path  int                true  "Tier index"
// @Param        request  body  UpdateTierRequest  true  "Tier"
// @Success      200  {object}  TierResponse
// @Router       /pool/tiers/{index} [put]
func (h *PoolHandler) UpdateTier(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		sendError(c, http.StatusBadRequest, "Invalid tier index", err)
		return
	}
	var req UpdateTierRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.CoveragePercent < 0 || req.CoveragePercent > 0xFFFF {
		sendError(c, http.StatusBadRequest, "Invalid coverage_percent", nil)
		return
	}

	tier := business.Tier{
		Index:           index,
		Name:            req.Name,
		CoveragePercent: uint16(req.CoveragePercent),
	}
	if tier.MinBalanceThreshold, ok = parseAmountField(c, "min_balance_threshold", req.MinBalanceThreshold); !ok {
		return
	}
	if tier.MaxDailyGas, ok = parseAmountField(c, "max_daily_gas", req.MaxDailyGas); !ok {
		return
	}
	if tier.MaxLifetimeGas, ok = parseAmountField(c, "max_lifetime_gas", req.MaxLifetimeGas); !ok {
		return
	}

	if err := h.pool.UpdateTier(c.Request.Context(), caller, tier); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, toTierResponse(tier))
}

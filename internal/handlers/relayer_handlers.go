package handlers

import (
	"math/big"
	"net/http"
	"time"

	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/gin-gonic/gin"
)

// RelayerHandler exposes the relayer registry
type RelayerHandler struct {
	registry interfaces.IRelayerRegistryService
}

// NewRelayerHandler creates a registry handler
func NewRelayerHandler(registry interfaces.IRelayerRegistryService) *RelayerHandler {
	return &RelayerHandler{registry: registry}
}

// RelayerResponse is a relayer account with its performance
type RelayerResponse struct {
	Address          string    `json:"address"`
	Balance          string    `json:"balance"`
	IsActive         bool      `json:"is_active"`
	RegisteredAt     time.Time `json:"registered_at"`
	LastActivityTime time.Time `json:"last_activity_time"`
	SuccessfulRelays uint64    `json:"successful_relays"`
	FailedRelays     uint64    `json:"failed_relays"`
	SuccessRate      uint64    `json:"success_rate"`
}

// StakeRequest carries a native-currency amount
type StakeRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// WithdrawResponse reports the withdrawn amount and the remaining balance
type WithdrawResponse struct {
	Withdrawn string `json:"withdrawn"`
	Balance   string `json:"balance"`
}

// RegistrySettingsRequest changes registry parameters. Omitted fields are left unchanged.
type RegistrySettingsRequest struct {
	MinRelayerBalance     string `json:"min_relayer_balance"`
	RelayerTimeoutSeconds int64  `json:"relayer_timeout_seconds"`
}

func toRelayerResponse(account *business.RelayerAccount, metrics *business.RelayerMetrics) RelayerResponse {
	resp := RelayerResponse{
		Address:          account.Address.Hex(),
		Balance:          bigString(account.Balance),
		IsActive:         account.IsActive,
		RegisteredAt:     account.RegisteredAt,
		LastActivityTime: account.LastActivityTime,
		SuccessfulRelays: account.SuccessfulRelays,
		FailedRelays:     account.FailedRelays,
	}
	if metrics != nil {
		resp.SuccessRate = metrics.SuccessRate
	}
	return resp
}

// Register godoc
// @Summary      Register the caller as a relayer
// @Tags         relayers
// @Accept       json
// @Produce      json
// @Param        request  body  StakeRequest  true  "Initial stake"
// @Success      201  {object}  RelayerResponse
// @Failure      409  {object}  ErrorResponse  "Already registered or stake too low"
// @Router       /relayers/register [post]
func (h *RelayerHandler) Register(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	stake, ok := h.bindAmount(c)
	if !ok {
		return
	}
	account, err := h.registry.RegisterRelayer(c.Request.Context(), caller, stake)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, toRelayerResponse(account, nil))
}

// Deposit adds to the caller's relayer balance
func (h *RelayerHandler) Deposit(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	amount, ok := h.bindAmount(c)
	if !ok {
		return
	}
	account, err := h.registry.DepositRelayerBalance(c.Request.Context(), caller, amount)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, toRelayerResponse(account, nil))
}

// Withdraw godoc
// @Summary      Withdraw from the caller's relayer balance
// @Tags         relayers
// @Accept       json
// @Produce      json
// @Param        request  body  StakeRequest  true  "Amount"
// @Success      200  {object}  WithdrawResponse
// @Router       /relayers/withdraw [post]
func (h *RelayerHandler) Withdraw(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	amount, ok := h.bindAmount(c)
	if !ok {
		return
	}
	withdrawn, err := h.registry.WithdrawRelayerBalance(c.Request.Context(), caller, amount)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := WithdrawResponse{Withdrawn: withdrawn.String(), Balance: "0"}
	if account, err := h.registry.GetRelayer(caller); err == nil {
		resp.Balance = bigString(account.Balance)
	}
	sendSuccess(c, http.StatusOK, resp)
}

// Evict godoc
// @Summary      Remove a relayer that has been idle past the timeout
// @Tags         relayers
// @Produce      json
// @Param        address  path  string  true  "Relayer address"
// @Success      200  {object}  SuccessResponse
// @Failure      409  {object}  ErrorResponse  "Relayer still active"
// @Router       /relayers/{address}/evict [post]
func (h *RelayerHandler) Evict(c *gin.Context) {
	relayer, ok := addressParam(c)
	if !ok {
		return
	}
	if err := h.registry.RemoveInactiveRelayer(c.Request.Context(), relayer); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "relayer removed")
}

// GetRelayer godoc
// @Summary      Relayer status and metrics
// @Tags         relayers
// @Produce      json
// @Param        address  path  string  true  "Relayer address"
// @Success      200  {object}  RelayerResponse
// @Router       /relayers/{address} [get]
func (h *RelayerHandler) GetRelayer(c *gin.Context) {
	relayer, ok := addressParam(c)
	if !ok {
		return
	}
	account, err := h.registry.GetRelayer(relayer)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	metrics, err := h.registry.Metrics(relayer)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, toRelayerResponse(account, metrics))
}

// ListRelayers lists every known relayer
func (h *RelayerHandler) ListRelayers(c *gin.Context) {
	accounts := h.registry.ListRelayers()
	out := make([]RelayerResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toRelayerResponse(&accounts[i], nil))
	}
	sendList(c, out)
}

// UpdateSettings changes the minimum balance and inactivity timeout. ADMIN only.
func (h *RelayerHandler) UpdateSettings(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req RegistrySettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.MinRelayerBalance == "" && req.RelayerTimeoutSeconds == 0 {
		sendError(c, http.StatusBadRequest, "No settings provided", nil)
		return
	}

	ctx := c.Request.Context()
	if req.MinRelayerBalance != "" {
		amount, ok := parseAmountField(c, "min_relayer_balance", req.MinRelayerBalance)
		if !ok {
			return
		}
		if err := h.registry.SetMinRelayerBalance(ctx, caller, amount); err != nil {
			handleServiceError(c, err)
			return
		}
	}
	if req.RelayerTimeoutSeconds != 0 {
		if err := h.registry.SetRelayerTimeout(ctx, caller, time.Duration(req.RelayerTimeoutSeconds)*time.Second); err != nil {
			handleServiceError(c, err)
			return
		}
	}
	sendSuccessMessage(c, http.StatusOK, "registry settings updated")
}

func (h *RelayerHandler) bindAmount(c *gin.Context) (*big.Int, bool) {
	var req StakeRequest
	if !bindJSON(c, &req) {
		return nil, false
	}
	return parseAmountField(c, "amount", req.Amount)
}

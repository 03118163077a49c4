package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/cyphera/cyphera-relay/internal/services"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
)

// MaxBatchSize bounds the number of requests accepted by the batch endpoint
const MaxBatchSize = 100

// RelayHandler exposes the relay dispatcher
type RelayHandler struct {
	dispatcher interfaces.IRelayDispatcherService
}

// NewRelayHandler creates a relay handler
func NewRelayHandler(dispatcher interfaces.IRelayDispatcherService) *RelayHandler {
	return &RelayHandler{dispatcher: dispatcher}
}

// RelayRequestBody is a signed relay request. Data and signature are 0x-prefixed hex.
type RelayRequestBody struct {
	User       string `json:"user" binding:"required"`
	GasAmount  string `json:"gas_amount" binding:"required"`
	Nonce      uint64 `json:"nonce"`
	ExpiryTime int64  `json:"expiry_time" binding:"required"` // unix seconds
	Data       string `json:"data"`
	Signature  string `json:"signature" binding:"required"`
}

// BatchRelayRequest wraps several relay requests
type BatchRelayRequest struct {
	Requests []RelayRequestBody `json:"requests" binding:"required"`
}

// RelayResultResponse is the record of an accepted relay request
type RelayResultResponse struct {
	User          string `json:"user"`
	Relayer       string `json:"relayer"`
	GasAmount     string `json:"gas_amount"`
	CoveredAmount string `json:"covered_amount"`
	Nonce         uint64 `json:"nonce"`
	State         string `json:"state"`
	Succeeded     bool   `json:"succeeded"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// BatchItemResponse is one entry of a batch response
type BatchItemResponse struct {
	Result *RelayResultResponse `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
	Kind   string               `json:"kind,omitempty"`
}

// NonceResponse is the next expected nonce of an address
type NonceResponse struct {
	Address string `json:"address"`
	Nonce   uint64 `json:"nonce"`
}

// MaxGasRequest changes the per-request gas ceiling
type MaxGasRequest struct {
	MaxGasPerRequest string `json:"max_gas_per_request" binding:"required"`
}

func (b RelayRequestBody) toRequest() (business.RelayRequest, error) {
	user, err := helpers.ParseAddress(b.User)
	if err != nil {
		return business.RelayRequest{}, err
	}
	gasAmount, err := helpers.ParseAmount(b.GasAmount)
	if err != nil {
		return business.RelayRequest{}, err
	}
	var data []byte
	if b.Data != "" && b.Data != "0x" {
		if data, err = hexutil.Decode(b.Data); err != nil {
			return business.RelayRequest{}, fmt.Errorf("invalid data: %w", err)
		}
	}
	signature, err := hexutil.Decode(b.Signature)
	if err != nil {
		return business.RelayRequest{}, fmt.Errorf("invalid signature: %w", err)
	}
	return business.RelayRequest{
		User:       user,
		GasAmount:  gasAmount,
		Nonce:      b.Nonce,
		ExpiryTime: time.Unix(b.ExpiryTime, 0),
		Data:       data,
		Signature:  signature,
	}, nil
}

func toRelayResultResponse(r *business.RelayResult) *RelayResultResponse {
	if r == nil {
		return nil
	}
	return &RelayResultResponse{
		User:          r.User.Hex(),
		Relayer:       r.Relayer.Hex(),
		GasAmount:     bigString(r.GasAmount),
		CoveredAmount: bigString(r.CoveredAmount),
		Nonce:         r.Nonce,
		State:         string(r.State),
		Succeeded:     r.Succeeded,
		FailureReason: r.FailureReason,
	}
}

// ExecuteRelay godoc
// @Summary      Execute a signed relay request
// @Description  Caller must be an active relayer
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        request  body  RelayRequestBody  true  "Signed request"
// @Success      200  {object}  RelayResultResponse
// @Failure      400  {object}  ErrorResponse  "Invalid signature, nonce, expiry or gas"
// @Failure      403  {object}  ErrorResponse  "Not an active relayer"
// @Router       /relay/execute [post]
func (h *RelayHandler) ExecuteRelay(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var body RelayRequestBody
	if !bindJSON(c, &body) {
		return
	}
	request, err := body.toRequest()
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid relay request", err)
		return
	}

	result, err := h.dispatcher.ExecuteRelay(c.Request.Context(), caller, request)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, toRelayResultResponse(result))
}

// ExecuteBatch runs several relay requests and reports each outcome in input order
func (h *RelayHandler) ExecuteBatch(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var body BatchRelayRequest
	if !bindJSON(c, &body) {
		return
	}
	if len(body.Requests) == 0 || len(body.Requests) > MaxBatchSize {
		sendError(c, http.StatusBadRequest, fmt.Sprintf("Batch must contain between 1 and %d requests", MaxBatchSize), nil)
		return
	}

	requests := make([]business.RelayRequest, len(body.Requests))
	for i, b := range body.Requests {
		request, err := b.toRequest()
		if err != nil {
			sendError(c, http.StatusBadRequest, fmt.Sprintf("Invalid relay request at index %d", i), err)
			return
		}
		requests[i] = request
	}

	results := h.dispatcher.ExecuteBatch(c.Request.Context(), caller, requests)
	out := make([]BatchItemResponse, len(results))
	for i, r := range results {
		if r.Err != nil {
			out[i] = BatchItemResponse{Error: services.Reason(r.Err), Kind: string(services.KindOf(r.Err))}
			continue
		}
		out[i] = BatchItemResponse{Result: toRelayResultResponse(r.Result)}
	}
	sendList(c, out)
}

// GetNonce godoc
// @Summary      Next relay nonce of a user
// @Tags         relay
// @Produce      json
// @Param        address  path  string  true  "User address"
// @Success      200  {object}  NonceResponse
// @Router       /relay/nonce/{address} [get]
func (h *RelayHandler) GetNonce(c *gin.Context) {
	user, ok := addressParam(c)
	if !ok {
		return
	}
	sendSuccess(c, http.StatusOK, NonceResponse{Address: user.Hex(), Nonce: h.dispatcher.GetUserNonce(user)})
}

// SetMaxGas changes the per-request gas ceiling. ADMIN only.
func (h *RelayHandler) SetMaxGas(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req MaxGasRequest
	if !bindJSON(c, &req) {
		return
	}
	maxGas, ok := parseAmountField(c, "max_gas_per_request", req.MaxGasPerRequest)
	if !ok {
		return
	}
	if err := h.dispatcher.SetMaxGasPerRequest(c.Request.Context(), caller, maxGas); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "max gas per request updated")
}

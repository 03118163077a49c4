package handlers

import (
	"net/http"

	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
)

// MetaTransactionHandler exposes the meta-transaction executor
type MetaTransactionHandler struct {
	metaTx interfaces.IMetaTransactionService
}

// NewMetaTransactionHandler creates a meta-transaction handler
func NewMetaTransactionHandler(metaTx interfaces.IMetaTransactionService) *MetaTransactionHandler {
	return &MetaTransactionHandler{metaTx: metaTx}
}

// MetaTransactionRequest is an EIP-712 signed call. Bytes are 0x-prefixed hex.
type MetaTransactionRequest struct {
	From              string `json:"from" binding:"required"`
	Nonce             uint64 `json:"nonce"`
	FunctionSignature string `json:"function_signature" binding:"required"`
	Signature         string `json:"signature" binding:"required"`
}

// MetaTransactionResponse reports an executed meta-transaction
type MetaTransactionResponse struct {
	From       string `json:"from"`
	Relayer    string `json:"relayer"`
	Nonce      uint64 `json:"nonce"`
	ReturnData string `json:"return_data"`
}

// ExecuteMetaTransaction godoc
// @Summary      Execute an EIP-712 signed call
// @Tags         meta
// @Accept       json
// @Produce      json
// @Param        request  body  MetaTransactionRequest  true  "Signed meta-transaction"
// @Success      200  {object}  MetaTransactionResponse
// @Failure      400  {object}  ErrorResponse  "Invalid signature or nonce"
// @Failure      502  {object}  ErrorResponse  "Call failed"
// @Router       /meta/execute [post]
func (h *MetaTransactionHandler) ExecuteMetaTransaction(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req MetaTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	from, err := helpers.ParseAddress(req.From)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid from", err)
		return
	}
	call, err := hexutil.Decode(req.FunctionSignature)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid function_signature", err)
		return
	}
	signature, err := hexutil.Decode(req.Signature)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid signature", err)
		return
	}

	result, err := h.metaTx.ExecuteMetaTransaction(c.Request.Context(), caller, business.MetaTransaction{
		From:              from,
		Nonce:             req.Nonce,
		FunctionSignature: call,
		Signature:         signature,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, MetaTransactionResponse{
		From:       result.From.Hex(),
		Relayer:    result.Relayer.Hex(),
		Nonce:      result.Nonce,
		ReturnData: hexutil.Encode(result.ReturnData),
	})
}

// GetNonce returns the next meta-transaction nonce of an address
func (h *MetaTransactionHandler) GetNonce(c *gin.Context) {
	user, ok := addressParam(c)
	if !ok {
		return
	}
	sendSuccess(c, http.StatusOK, NonceResponse{Address: user.Hex(), Nonce: h.metaTx.GetNonce(user)})
}

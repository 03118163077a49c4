package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// AdminHandler exposes role management and the pause switch
type AdminHandler struct {
	access interfaces.IAccessControlService
}

// NewAdminHandler creates an admin handler
func NewAdminHandler(access interfaces.IAccessControlService) *AdminHandler {
	return &AdminHandler{access: access}
}

// RoleAccountRequest names the account a role change applies to
type RoleAccountRequest struct {
	Account string `json:"account" binding:"required"`
}

// TransferDelayRequest changes the role transfer delay
type TransferDelayRequest struct {
	DelaySeconds int64 `json:"delay_seconds" binding:"required"`
}

// RoleTransferResponse is the pending transfer of a role
type RoleTransferResponse struct {
	Role           string    `json:"role"`
	Pending        bool      `json:"pending"`
	Initiator      string    `json:"initiator,omitempty"`
	ProposedHolder string    `json:"proposed_holder,omitempty"`
	EligibleAt     time.Time `json:"eligible_at,omitempty"`
}

// RoleResponse lists the holders of a role
type RoleResponse struct {
	Role     string               `json:"role"`
	Members  []string             `json:"members"`
	Transfer RoleTransferResponse `json:"transfer"`
}

// StatusResponse reports the pause switch and transfer delay
type StatusResponse struct {
	Paused               bool  `json:"paused"`
	TransferDelaySeconds int64 `json:"transfer_delay_seconds"`
}

func roleParam(c *gin.Context) string {
	return strings.ToUpper(c.Param("role"))
}

func (h *AdminHandler) transferResponse(role string) RoleTransferResponse {
	transfer := h.access.RoleTransferStatus(role)
	resp := RoleTransferResponse{Role: role, Pending: transfer.Pending}
	if transfer.Pending {
		resp.Initiator = transfer.Initiator.Hex()
		resp.ProposedHolder = transfer.ProposedHolder.Hex()
		resp.EligibleAt = transfer.EligibleAt
	}
	return resp
}

// GetStatus reports whether the system is paused
func (h *AdminHandler) GetStatus(c *gin.Context) {
	sendSuccess(c, http.StatusOK, StatusResponse{
		Paused:               h.access.Paused(),
		TransferDelaySeconds: int64(h.access.TransferDelay() / time.Second),
	})
}

// Pause godoc
// @Summary      Pause relaying, coverage and registration
// @Description  Caller must hold ADMIN
// @Tags         admin
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/pause [post]
func (h *AdminHandler) Pause(c *gin.Context) {
	h.setPaused(c, true)
}

// Unpause godoc
// @Summary      Resume normal operation
// @Description  Caller must hold ADMIN
// @Tags         admin
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /admin/unpause [post]
func (h *AdminHandler) Unpause(c *gin.Context) {
	h.setPaused(c, false)
}

func (h *AdminHandler) setPaused(c *gin.Context, paused bool) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var err error
	if paused {
		err = h.access.Pause(c.Request.Context(), caller)
	} else {
		err = h.access.Unpause(c.Request.Context(), caller)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}
	h.GetStatus(c)
}

// GetRole lists the holders and pending transfer of a role
func (h *AdminHandler) GetRole(c *gin.Context) {
	role := roleParam(c)
	members := h.access.RoleMembers(role)
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.Hex())
	}
	sendSuccess(c, http.StatusOK, RoleResponse{Role: role, Members: out, Transfer: h.transferResponse(role)})
}

// GrantRole godoc
// @Summary      Grant a role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        role     path  string              true  "Role"
// @Param        request  body  RoleAccountRequest  true  "Account"
// @Success      200  {object}  SuccessResponse
// @Router       /admin/roles/{role}/grant [post]
func (h *AdminHandler) GrantRole(c *gin.Context) {
	h.changeRole(c, h.access.GrantRole, "role granted")
}

// RevokeRole revokes a role from an account
func (h *AdminHandler) RevokeRole(c *gin.Context) {
	h.changeRole(c, h.access.RevokeRole, "role revoked")
}

type roleChange func(ctx context.Context, caller common.Address, role string, account common.Address) error

func (h *AdminHandler) changeRole(c *gin.Context, change roleChange, message string) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req RoleAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	account, err := helpers.ParseAddress(req.Account)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid account", err)
		return
	}
	if err := change(c.Request.Context(), caller, roleParam(c), account); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, message)
}

// InitiateTransfer godoc
// @Summary      Start a delayed role transfer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        role     path  string              true  "Role"
// @Param        request  body  RoleAccountRequest  true  "New holder"
// @Success      202  {object}  RoleTransferResponse
// @Router       /admin/roles/{role}/transfer [post]
func (h *AdminHandler) InitiateTransfer(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req RoleAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	newHolder, err := helpers.ParseAddress(req.Account)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid account", err)
		return
	}
	role := roleParam(c)
	if _, err := h.access.InitiateRoleTransfer(c.Request.Context(), caller, role, newHolder); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusAccepted, h.transferResponse(role))
}

// CompleteTransfer finalizes a role transfer once its delay has passed
func (h *AdminHandler) CompleteTransfer(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	if err := h.access.CompleteRoleTransfer(c.Request.Context(), caller, roleParam(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "role transfer completed")
}

// CancelTransfer drops a pending role transfer
func (h *AdminHandler) CancelTransfer(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	if err := h.access.CancelRoleTransfer(c.Request.Context(), caller, roleParam(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "role transfer cancelled")
}

// UpdateTransferDelay changes the delay applied to new role transfers
func (h *AdminHandler) UpdateTransferDelay(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req TransferDelayRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.access.UpdateTransferDelay(c.Request.Context(), caller, time.Duration(req.DelaySeconds)*time.Second); err != nil {
		handleServiceError(c, err)
		return
	}
	h.GetStatus(c)
}

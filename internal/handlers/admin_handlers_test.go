package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/handlers"
	"github.com/cyphera/cyphera-relay/internal/mocks"
	"github.com/cyphera/cyphera-relay/internal/services"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newAdminRouter(t *testing.T) (*gin.Engine, *mocks.MockIAccessControlService) {
	access := mocks.NewMockIAccessControlService(gomock.NewController(t))
	h := handlers.NewAdminHandler(access)

	router := newTestRouter()
	router.GET("/admin/status", h.GetStatus)
	router.POST("/admin/pause", h.Pause)
	router.POST("/admin/unpause", h.Unpause)
	router.PUT("/admin/transfer-delay", h.UpdateTransferDelay)
	router.GET("/admin/roles/:role", h.GetRole)
	router.POST("/admin/roles/:role/grant", h.GrantRole)
	router.POST("/admin/roles/:role/revoke", h.RevokeRole)
	router.POST("/admin/roles/:role/transfer", h.InitiateTransfer)
	router.POST("/admin/roles/:role/transfer/complete", h.CompleteTransfer)
	router.DELETE("/admin/roles/:role/transfer", h.CancelTransfer)
	return router, access
}

func TestAdminHandler_Pause(t *testing.T) {
	t.Run("admin pauses", func(t *testing.T) {
		router, access := newAdminRouter(t)
		access.EXPECT().Pause(gomock.Any(), callerAddr).Return(nil)
		access.EXPECT().Paused().Return(true)
		access.EXPECT().TransferDelay().Return(48 * time.Hour)

		w := doRequest(t, router, http.MethodPost, "/admin/pause", nil)
		assertStatus(t, w, http.StatusOK)
		var resp handlers.StatusResponse
		decode(t, w, &resp)
		assert.Equal(t, handlers.StatusResponse{Paused: true, TransferDelaySeconds: 172800}, resp)
	})

	t.Run("non admin", func(t *testing.T) {
		router, access := newAdminRouter(t)
		access.EXPECT().Unpause(gomock.Any(), callerAddr).Return(&services.RelayError{
			Kind: services.KindAuthorization, Op: "unpause", Err: services.ErrUnauthorized,
		})

		w := doRequest(t, router, http.MethodPost, "/admin/unpause", nil)
		assertStatus(t, w, http.StatusForbidden)
		var resp handlers.ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, string(services.KindAuthorization), resp.Kind)
	})
}

func TestAdminHandler_RoleChanges(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		account    string
		setupMocks func(a *mocks.MockIAccessControlService)
		wantStatus int
	}{
		{
			name:    "grant operator",
			path:    "/admin/roles/operator/grant",
			account: userAddr.Hex(),
			setupMocks: func(a *mocks.MockIAccessControlService) {
				a.EXPECT().GrantRole(gomock.Any(), callerAddr, constants.RoleOperator, userAddr).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "revoke unknown role",
			path:    "/admin/roles/owner/revoke",
			account: userAddr.Hex(),
			setupMocks: func(a *mocks.MockIAccessControlService) {
				a.EXPECT().RevokeRole(gomock.Any(), callerAddr, "OWNER", userAddr).Return(services.ErrUnknownRole)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "grant while paused",
			path:    "/admin/roles/CANCELLER/grant",
			account: userAddr.Hex(),
			setupMocks: func(a *mocks.MockIAccessControlService) {
				a.EXPECT().GrantRole(gomock.Any(), callerAddr, constants.RoleCanceller, userAddr).Return(services.ErrPaused)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "invalid account",
			path:       "/admin/roles/operator/grant",
			account:    "0x1234",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, access := newAdminRouter(t)
			if tt.setupMocks != nil {
				tt.setupMocks(access)
			}
			w := doRequest(t, router, http.MethodPost, tt.path, handlers.RoleAccountRequest{Account: tt.account})
			assertStatus(t, w, tt.wantStatus)
		})
	}
}

func TestAdminHandler_RoleTransfer(t *testing.T) {
	eligibleAt := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	pending := business.RoleTransfer{
		Role:           constants.RoleAdmin,
		Initiator:      callerAddr,
		ProposedHolder: userAddr,
		EligibleAt:     eligibleAt,
		Pending:        true,
	}

	t.Run("initiate", func(t *testing.T) {
		router, access := newAdminRouter(t)
		gomock.InOrder(
			access.EXPECT().InitiateRoleTransfer(gomock.Any(), callerAddr, constants.RoleAdmin, userAddr).Return(&pending, nil),
			access.EXPECT().RoleTransferStatus(constants.RoleAdmin).Return(pending),
		)

		w := doRequest(t, router, http.MethodPost, "/admin/roles/admin/transfer", handlers.RoleAccountRequest{Account: userAddr.Hex()})
		assertStatus(t, w, http.StatusAccepted)
		var resp handlers.RoleTransferResponse
		decode(t, w, &resp)
		assert.True(t, resp.Pending)
		assert.Equal(t, userAddr.Hex(), resp.ProposedHolder)
		assert.True(t, resp.EligibleAt.Equal(eligibleAt))
	})

	t.Run("complete too early", func(t *testing.T) {
		router, access := newAdminRouter(t)
		access.EXPECT().CompleteRoleTransfer(gomock.Any(), callerAddr, constants.RoleAdmin).Return(services.ErrTransferNotReady)

		w := doRequest(t, router, http.MethodPost, "/admin/roles/admin/transfer/complete", nil)
		assertStatus(t, w, http.StatusConflict)
	})

	t.Run("cancel", func(t *testing.T) {
		router, access := newAdminRouter(t)
		access.EXPECT().CancelRoleTransfer(gomock.Any(), callerAddr, constants.RoleAdmin).Return(nil)

		w := doRequest(t, router, http.MethodDelete, "/admin/roles/admin/transfer", nil)
		assertStatus(t, w, http.StatusOK)
	})

	t.Run("role listing", func(t *testing.T) {
		router, access := newAdminRouter(t)
		access.EXPECT().RoleMembers(constants.RoleAdmin).Return([]common.Address{callerAddr})
		access.EXPECT().RoleTransferStatus(constants.RoleAdmin).Return(business.RoleTransfer{Role: constants.RoleAdmin})

		w := doRequest(t, router, http.MethodGet, "/admin/roles/admin", nil)
		assertStatus(t, w, http.StatusOK)
		var resp handlers.RoleResponse
		decode(t, w, &resp)
		assert.Equal(t, []string{callerAddr.Hex()}, resp.Members)
		assert.False(t, resp.Transfer.Pending)
		assert.Empty(t, resp.Transfer.ProposedHolder)
	})
}

func TestAdminHandler_UpdateTransferDelay(t *testing.T) {
	router, access := newAdminRouter(t)
	access.EXPECT().UpdateTransferDelay(gomock.Any(), callerAddr, time.Hour).Return(services.ErrInvalidDelay)

	w := doRequest(t, router, http.MethodPut, "/admin/transfer-delay", handlers.TransferDelayRequest{DelaySeconds: 3600})
	assertStatus(t, w, http.StatusBadRequest)
}

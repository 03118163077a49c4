package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/services"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccessControl(clock *fakeClock, sink *events.MemorySink) *services.AccessControlService {
	return services.NewAccessControlService(adminAddr,
		services.WithClock(clock.Now),
		services.WithPublisher(sink))
}

func TestAccessControlService_GrantRevoke(t *testing.T) {
	ctx := context.Background()
	sink := &events.MemorySink{}
	ac := newAccessControl(newFakeClock(), sink)

	assert.True(t, ac.HasRole(constants.RoleAdmin, adminAddr))
	assert.False(t, ac.HasRole(constants.RoleOperator, operatorAddr))

	tests := []struct {
		name    string
		caller  common.Address
		role    string
		account common.Address
		wantErr error
	}{
		{name: "admin grants operator", caller: adminAddr, role: constants.RoleOperator, account: operatorAddr},
		{name: "non admin is rejected", caller: otherAddr, role: constants.RoleOperator, account: otherAddr, wantErr: services.ErrUnauthorized},
		{name: "unknown role", caller: adminAddr, role: "GAS_MANAGER", account: otherAddr, wantErr: services.ErrUnknownRole},
		{name: "zero address", caller: adminAddr, role: constants.RoleOperator, account: common.Address{}, wantErr: services.ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ac.GrantRole(ctx, tt.caller, tt.role, tt.account)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, ac.HasRole(tt.role, tt.account))
		})
	}

	assert.Equal(t, []common.Address{operatorAddr}, ac.RoleMembers(constants.RoleOperator))
	require.NoError(t, ac.RevokeRole(ctx, adminAddr, constants.RoleOperator, operatorAddr))
	assert.False(t, ac.HasRole(constants.RoleOperator, operatorAddr))
	assert.Empty(t, ac.RoleMembers(constants.RoleOperator))

	assert.Len(t, sink.OfType(events.RoleGranted), 1)
	assert.Len(t, sink.OfType(events.RoleRevoked), 1)
}

func TestAccessControlService_RequireRole(t *testing.T) {
	ac := newAccessControl(newFakeClock(), &events.MemorySink{})

	assert.NoError(t, ac.RequireRole(constants.RoleAdmin, adminAddr))

	err := ac.RequireRole(constants.RoleOperator, adminAddr)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Equal(t, services.KindAuthorization, services.KindOf(err))
}

func TestAccessControlService_PauseBlocksRoleChanges(t *testing.T) {
	ctx := context.Background()
	sink := &events.MemorySink{}
	ac := newAccessControl(newFakeClock(), sink)

	assert.ErrorIs(t, ac.Pause(ctx, otherAddr), services.ErrUnauthorized)
	require.NoError(t, ac.Pause(ctx, adminAddr))
	assert.True(t, ac.Paused())

	err := ac.GrantRole(ctx, adminAddr, constants.RoleOperator, otherAddr)
	assert.ErrorIs(t, err, services.ErrPaused)

	assert.ErrorIs(t, ac.Unpause(ctx, otherAddr), services.ErrUnauthorized)
	require.NoError(t, ac.Unpause(ctx, adminAddr))
	assert.False(t, ac.Paused())
	assert.NoError(t, ac.GrantRole(ctx, adminAddr, constants.RoleOperator, otherAddr))

	assert.Len(t, sink.OfType(events.Paused), 1)
	assert.Len(t, sink.OfType(events.Unpaused), 1)
}

func TestAccessControlService_RoleTransfer(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	ac := newAccessControl(clock, &events.MemorySink{})

	_, err := ac.InitiateRoleTransfer(ctx, otherAddr, constants.RoleAdmin, otherAddr)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = ac.InitiateRoleTransfer(ctx, adminAddr, constants.RoleAdmin, common.Address{})
	assert.ErrorIs(t, err, services.ErrInvalidAddress)

	transfer, err := ac.InitiateRoleTransfer(ctx, adminAddr, constants.RoleAdmin, otherAddr)
	require.NoError(t, err)
	assert.True(t, transfer.Pending)
	assert.Equal(t, clock.Now().Add(constants.DefaultTransferDelay), transfer.EligibleAt)

	status := ac.RoleTransferStatus(constants.RoleAdmin)
	assert.True(t, status.Pending)
	assert.Equal(t, otherAddr, status.ProposedHolder)

	// only the proposed holder may complete, and only after the delay
	assert.ErrorIs(t, ac.CompleteRoleTransfer(ctx, operatorAddr, constants.RoleAdmin), services.ErrUnauthorized)
	assert.ErrorIs(t, ac.CompleteRoleTransfer(ctx, otherAddr, constants.RoleAdmin), services.ErrTransferNotReady)

	clock.Advance(constants.DefaultTransferDelay)
	require.NoError(t, ac.CompleteRoleTransfer(ctx, otherAddr, constants.RoleAdmin))

	assert.True(t, ac.HasRole(constants.RoleAdmin, otherAddr))
	assert.False(t, ac.HasRole(constants.RoleAdmin, adminAddr))
	assert.False(t, ac.RoleTransferStatus(constants.RoleAdmin).Pending)

	// the new admin can manage roles
	assert.NoError(t, ac.GrantRole(ctx, otherAddr, constants.RoleOperator, adminAddr))
}

func TestAccessControlService_ConsecutiveTransfers(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	ac := newAccessControl(clock, &events.MemorySink{})

	_, err := ac.InitiateRoleTransfer(ctx, adminAddr, constants.RoleAdmin, otherAddr)
	require.NoError(t, err)
	clock.Advance(constants.DefaultTransferDelay)
	require.NoError(t, ac.CompleteRoleTransfer(ctx, otherAddr, constants.RoleAdmin))

	_, err = ac.InitiateRoleTransfer(ctx, otherAddr, constants.RoleAdmin, operatorAddr)
	require.NoError(t, err)
	clock.Advance(constants.DefaultTransferDelay)
	require.NoError(t, ac.CompleteRoleTransfer(ctx, operatorAddr, constants.RoleAdmin))

	assert.True(t, ac.HasRole(constants.RoleAdmin, operatorAddr))
	assert.False(t, ac.HasRole(constants.RoleAdmin, otherAddr))
	assert.False(t, ac.HasRole(constants.RoleAdmin, adminAddr))
}

func TestAccessControlService_CancelRoleTransfer(t *testing.T) {
	ctx := context.Background()
	ac := newAccessControl(newFakeClock(), &events.MemorySink{})
	require.NoError(t, ac.GrantRole(ctx, adminAddr, constants.RoleCanceller, cancellerAddr))

	assert.ErrorIs(t, ac.CancelRoleTransfer(ctx, cancellerAddr, constants.RoleOperator), services.ErrNoPendingTransfer)

	_, err := ac.InitiateRoleTransfer(ctx, adminAddr, constants.RoleOperator, operatorAddr)
	require.NoError(t, err)

	assert.ErrorIs(t, ac.CancelRoleTransfer(ctx, otherAddr, constants.RoleOperator), services.ErrUnauthorized)
	require.NoError(t, ac.CancelRoleTransfer(ctx, cancellerAddr, constants.RoleOperator))
	assert.False(t, ac.RoleTransferStatus(constants.RoleOperator).Pending)
	assert.ErrorIs(t, ac.CompleteRoleTransfer(ctx, operatorAddr, constants.RoleOperator), services.ErrNoPendingTransfer)
}

func TestAccessControlService_UpdateTransferDelay(t *testing.T) {
	ctx := context.Background()
	ac := newAccessControl(newFakeClock(), &events.MemorySink{})

	tests := []struct {
		name    string
		caller  common.Address
		delay   time.Duration
		wantErr error
	}{
		{name: "non admin", caller: otherAddr, delay: 3 * 24 * time.Hour, wantErr: services.ErrUnauthorized},
		{name: "below minimum", caller: adminAddr, delay: time.Hour, wantErr: services.ErrInvalidDelay},
		{name: "above maximum", caller: adminAddr, delay: 31 * 24 * time.Hour, wantErr: services.ErrInvalidDelay},
		{name: "lower bound", caller: adminAddr, delay: constants.MinTransferDelay},
		{name: "upper bound", caller: adminAddr, delay: constants.MaxTransferDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ac.UpdateTransferDelay(ctx, tt.caller, tt.delay)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.delay, ac.TransferDelay())
		})
	}
}

func TestAccessControlService_RoleTransferWhilePaused(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	ac := newAccessControl(clock, &events.MemorySink{})

	_, err := ac.InitiateRoleTransfer(ctx, adminAddr, constants.RoleAdmin, otherAddr)
	require.NoError(t, err)
	clock.Advance(constants.DefaultTransferDelay)

	require.NoError(t, ac.Pause(ctx, adminAddr))
	_, err = ac.InitiateRoleTransfer(ctx, adminAddr, constants.RoleAdmin, operatorAddr)
	assert.ErrorIs(t, err, services.ErrPaused)
	assert.ErrorIs(t, ac.CompleteRoleTransfer(ctx, otherAddr, constants.RoleAdmin), services.ErrPaused)
	assert.True(t, ac.HasRole(constants.RoleAdmin, adminAddr))
	assert.False(t, ac.HasRole(constants.RoleAdmin, otherAddr))
	assert.Equal(t, otherAddr, ac.RoleTransferStatus(constants.RoleAdmin).ProposedHolder)

	require.NoError(t, ac.Unpause(ctx, adminAddr))
	require.NoError(t, ac.CompleteRoleTransfer(ctx, otherAddr, constants.RoleAdmin))
	assert.True(t, ac.HasRole(constants.RoleAdmin, otherAddr))
}

func TestAccessControlService_RoleTransferInitiatorAuthority(t *testing.T) {
	ctx := context.Background()

	t.Run("holder lost the role", func(t *testing.T) {
		clock := newFakeClock()
		ac := newAccessControl(clock, &events.MemorySink{})
		require.NoError(t, ac.GrantRole(ctx, adminAddr, constants.RoleOperator, operatorAddr))

		transfer, err := ac.InitiateRoleTransfer(ctx, operatorAddr, constants.RoleOperator, otherAddr)
		require.NoError(t, err)
		assert.False(t, transfer.Appointment)

		require.NoError(t, ac.RevokeRole(ctx, adminAddr, constants.RoleOperator, operatorAddr))
		clock.Advance(constants.DefaultTransferDelay)

		assert.ErrorIs(t, ac.CompleteRoleTransfer(ctx, otherAddr, constants.RoleOperator), services.ErrUnauthorized)
		assert.False(t, ac.HasRole(constants.RoleOperator, otherAddr))
	})

	t.Run("admin appointment adds a holder", func(t *testing.T) {
		clock := newFakeClock()
		ac := newAccessControl(clock, &events.MemorySink{})
		require.NoError(t, ac.GrantRole(ctx, adminAddr, constants.RoleOperator, operatorAddr))

		transfer, err := ac.InitiateRoleTransfer(ctx, adminAddr, constants.RoleOperator, otherAddr)
		require.NoError(t, err)
		assert.True(t, transfer.Appointment)

		clock.Advance(constants.DefaultTransferDelay)
		require.NoError(t, ac.CompleteRoleTransfer(ctx, otherAddr, constants.RoleOperator))
		assert.True(t, ac.HasRole(constants.RoleOperator, otherAddr))
		assert.True(t, ac.HasRole(constants.RoleOperator, operatorAddr))
		assert.False(t, ac.HasRole(constants.RoleOperator, adminAddr))
	})

	t.Run("appointing admin was replaced", func(t *testing.T) {
		clock := newFakeClock()
		ac := newAccessControl(clock, &events.MemorySink{})

		_, err := ac.InitiateRoleTransfer(ctx, adminAddr, constants.RoleCanceller, cancellerAddr)
		require.NoError(t, err)
		require.NoError(t, ac.GrantRole(ctx, adminAddr, constants.RoleAdmin, otherAddr))
		require.NoError(t, ac.RevokeRole(ctx, otherAddr, constants.RoleAdmin, adminAddr))
		clock.Advance(constants.DefaultTransferDelay)

		assert.ErrorIs(t, ac.CompleteRoleTransfer(ctx, cancellerAddr, constants.RoleCanceller), services.ErrUnauthorized)
		assert.False(t, ac.HasRole(constants.RoleCanceller, cancellerAddr))
	})
}

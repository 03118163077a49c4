package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// AccessControlService keeps the role capability table, pending role
// successions and the global pause switch shared by the pool and registry.
type AccessControlService struct {
	mu            sync.RWMutex
	members       map[string]map[common.Address]struct{}
	transfers     map[string]business.RoleTransfer
	transferDelay time.Duration
	paused        bool

	clock     Clock
	publisher events.Publisher
	logger    *zap.Logger
}

// NewAccessControlService creates the role table with admin holding ADMIN
func NewAccessControlService(admin common.Address, opts ...Option) *AccessControlService {
	o := applyOptions(logger.ComponentAccess, opts)

	s := &AccessControlService{
		members:       make(map[string]map[common.Address]struct{}, len(constants.AllRoles)),
		transfers:     make(map[string]business.RoleTransfer),
		transferDelay: constants.DefaultTransferDelay,
		clock:         o.clock,
		publisher:     o.publisher,
		logger:        o.logger,
	}
	for _, role := range constants.AllRoles {
		s.members[role] = make(map[common.Address]struct{})
	}
	s.members[constants.RoleAdmin][admin] = struct{}{}
	return s
}

// HasRole reports whether account holds role
func (s *AccessControlService) HasRole(role string, account common.Address) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasRoleLocked(role, account)
}

func (s *AccessControlService) hasRoleLocked(role string, account common.Address) bool {
	holders, ok := s.members[role]
	if !ok {
		return false
	}
	_, ok = holders[account]
	return ok
}

// RequireRole returns ErrUnauthorized unless caller holds role
func (s *AccessControlService) RequireRole(role string, caller common.Address) error {
	if !s.HasRole(role, caller) {
		return newRelayError("require role", ErrUnauthorized, "role", role, "caller", caller.Hex())
	}
	return nil
}

// RoleMembers lists holders of role in address order
func (s *AccessControlService) RoleMembers(role string) []common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()

	holders := s.members[role]
	out := make([]common.Address, 0, len(holders))
	for addr := range holders {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}

// GrantRole gives role to account. ADMIN only, rejected while paused.
func (s *AccessControlService) GrantRole(ctx context.Context, caller common.Address, role string, account common.Address) error {
	const op = "grant role"

	s.mu.Lock()
	if err := s.checkAdminMutationLocked(op, caller, role); err != nil {
		s.mu.Unlock()
		return err
	}
	if account == (common.Address{}) {
		s.mu.Unlock()
		return newRelayError(op, ErrInvalidAddress, "role", role)
	}
	s.members[role][account] = struct{}{}
	s.mu.Unlock()

	s.logger.Info("Role granted", zap.String("role", role), zap.String("account", account.Hex()), zap.String("by", caller.Hex()))
	s.publisher.Emit(ctx, events.New(events.RoleGranted, s.clock(), "role", role, "account", account.Hex(), "by", caller.Hex()))
	return nil
}

// RevokeRole removes role from account. ADMIN only, rejected while paused.
func (s *AccessControlService) RevokeRole(ctx context.Context, caller common.Address, role string, account common.Address) error {
	const op = "revoke role"

	s.mu.Lock()
	if err := s.checkAdminMutationLocked(op, caller, role); err != nil {
		s.mu.Unlock()
		return err
	}
	delete(s.members[role], account)
	s.mu.Unlock()

	s.logger.Info("Role revoked", zap.String("role", role), zap.String("account", account.Hex()), zap.String("by", caller.Hex()))
	s.publisher.Emit(ctx, events.New(events.RoleRevoked, s.clock(), "role", role, "account", account.Hex(), "by", caller.Hex()))
	return nil
}

func (s *AccessControlService) checkAdminMutationLocked(op string, caller common.Address, role string) error {
	if _, ok := s.members[role]; !ok {
		return newRelayError(op, ErrUnknownRole, "role", role)
	}
	if !s.hasRoleLocked(constants.RoleAdmin, caller) {
		return newRelayError(op, ErrUnauthorized, "caller", caller.Hex())
	}
	if s.paused {
		return newRelayError(op, ErrPaused)
	}
	return nil
}

// InitiateRoleTransfer proposes newHolder as the successor for role. The
// caller must hold the role or be ADMIN. A new proposal replaces a pending one.
// Rejected while paused.
func (s *AccessControlService) InitiateRoleTransfer(ctx context.Context, caller common.Address, role string, newHolder common.Address) (*business.RoleTransfer, error) {
	const op = "initiate role transfer"

	s.mu.Lock()
	if _, ok := s.members[role]; !ok {
		s.mu.Unlock()
		return nil, newRelayError(op, ErrUnknownRole, "role", role)
	}
	holder := s.hasRoleLocked(role, caller)
	if !holder && !s.hasRoleLocked(constants.RoleAdmin, caller) {
		s.mu.Unlock()
		return nil, newRelayError(op, ErrUnauthorized, "role", role, "caller", caller.Hex())
	}
	if s.paused {
		s.mu.Unlock()
		return nil, newRelayError(op, ErrPaused)
	}
	if newHolder == (common.Address{}) {
		s.mu.Unlock()
		return nil, newRelayError(op, ErrInvalidAddress, "role", role)
	}

	transfer := business.RoleTransfer{
		Role:           role,
		Initiator:      caller,
		ProposedHolder: newHolder,
		EligibleAt:     s.clock().Add(s.transferDelay),
		Pending:        true,
		Appointment:    !holder,
	}
	s.transfers[role] = transfer
	s.mu.Unlock()

	s.logger.Info("Role transfer initiated",
		zap.String("role", role),
		zap.String("from", caller.Hex()),
		zap.String("to", newHolder.Hex()),
		zap.Time("eligible_at", transfer.EligibleAt))
	s.publisher.Emit(ctx, events.New(events.RoleTransferInitiated, s.clock(),
		"role", role, "from", caller.Hex(), "to", newHolder.Hex(), "eligible_at", transfer.EligibleAt.UTC().Format(time.RFC3339)))

	return &transfer, nil
}

// CompleteRoleTransfer is called by the proposed holder once the delay has
// elapsed. The role moves from the initiator to the caller. The initiator must
// still hold the role, or still be ADMIN for an appointment. Rejected while
// paused.
func (s *AccessControlService) CompleteRoleTransfer(ctx context.Context, caller common.Address, role string) error {
	const op = "complete role transfer"

	s.mu.Lock()
	transfer, ok := s.transfers[role]
	if !ok || !transfer.Pending {
		s.mu.Unlock()
		return newRelayError(op, ErrNoPendingTransfer, "role", role)
	}
	if transfer.ProposedHolder != caller {
		s.mu.Unlock()
		return newRelayError(op, ErrUnauthorized, "role", role, "caller", caller.Hex())
	}
	if s.paused {
		s.mu.Unlock()
		return newRelayError(op, ErrPaused)
	}
	if s.clock().Before(transfer.EligibleAt) {
		s.mu.Unlock()
		return newRelayError(op, ErrTransferNotReady, "role", role, "eligible_at", transfer.EligibleAt.UTC().Format(time.RFC3339))
	}
	authority := role
	if transfer.Appointment {
		authority = constants.RoleAdmin
	}
	if !s.hasRoleLocked(authority, transfer.Initiator) {
		s.mu.Unlock()
		return newRelayError(op, ErrUnauthorized, "role", role, "initiator", transfer.Initiator.Hex())
	}

	if !transfer.Appointment {
		delete(s.members[role], transfer.Initiator)
	}
	s.members[role][caller] = struct{}{}
	delete(s.transfers, role)
	s.mu.Unlock()

	s.logger.Info("Role transfer completed",
		zap.String("role", role),
		zap.String("from", transfer.Initiator.Hex()),
		zap.String("to", caller.Hex()))
	s.publisher.Emit(ctx, events.New(events.RoleTransferCompleted, s.clock(),
		"role", role, "from", transfer.Initiator.Hex(), "to", caller.Hex()))
	return nil
}

// CancelRoleTransfer drops a pending transfer. CANCELLER or ADMIN only.
func (s *AccessControlService) CancelRoleTransfer(ctx context.Context, caller common.Address, role string) error {
	const op = "cancel role transfer"

	s.mu.Lock()
	if !s.hasRoleLocked(constants.RoleCanceller, caller) && !s.hasRoleLocked(constants.RoleAdmin, caller) {
		s.mu.Unlock()
		return newRelayError(op, ErrUnauthorized, "caller", caller.Hex())
	}
	transfer, ok := s.transfers[role]
	if !ok || !transfer.Pending {
		s.mu.Unlock()
		return newRelayError(op, ErrNoPendingTransfer, "role", role)
	}
	delete(s.transfers, role)
	s.mu.Unlock()

	s.logger.Info("Role transfer cancelled", zap.String("role", role), zap.String("by", caller.Hex()))
	s.publisher.Emit(ctx, events.New(events.RoleTransferCancelled, s.clock(), "role", role, "by", caller.Hex()))
	return nil
}

// RoleTransferStatus returns the pending transfer for role, if any
func (s *AccessControlService) RoleTransferStatus(role string) business.RoleTransfer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if transfer, ok := s.transfers[role]; ok {
		return transfer
	}
	return business.RoleTransfer{Role: role}
}

// UpdateTransferDelay sets the succession delay within [1 day, 30 days]
func (s *AccessControlService) UpdateTransferDelay(ctx context.Context, caller common.Address, delay time.Duration) error {
	const op = "update transfer delay"

	if err := s.RequireRole(constants.RoleAdmin, caller); err != nil {
		return err
	}
	if delay < constants.MinTransferDelay || delay > constants.MaxTransferDelay {
		return newRelayError(op, ErrInvalidDelay, "delay", delay.String())
	}

	s.mu.Lock()
	s.transferDelay = delay
	s.mu.Unlock()

	s.logger.Info("Transfer delay updated", zap.Duration("delay", delay), zap.String("by", caller.Hex()))
	return nil
}

// TransferDelay returns the current succession delay
func (s *AccessControlService) TransferDelay() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transferDelay
}

// Pause halts registration, coverage and role changes
func (s *AccessControlService) Pause(ctx context.Context, caller common.Address) error {
	return s.setPaused(ctx, caller, true)
}

// Unpause resumes normal operation
func (s *AccessControlService) Unpause(ctx context.Context, caller common.Address) error {
	return s.setPaused(ctx, caller, false)
}

func (s *AccessControlService) setPaused(ctx context.Context, caller common.Address, paused bool) error {
	op, eventType := "pause", events.Paused
	if !paused {
		op, eventType = "unpause", events.Unpaused
	}

	s.mu.Lock()
	if !s.hasRoleLocked(constants.RoleAdmin, caller) {
		s.mu.Unlock()
		return newRelayError(op, ErrUnauthorized, "caller", caller.Hex())
	}
	changed := s.paused != paused
	s.paused = paused
	s.mu.Unlock()

	if changed {
		s.logger.Warn("Pause switch changed", zap.Bool("paused", paused), zap.String("by", caller.Hex()))
		s.publisher.Emit(ctx, events.New(eventType, s.clock(), "by", caller.Hex()))
	}
	return nil
}

// Paused reports the global pause switch
func (s *AccessControlService) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

package business

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RoleTransfer is a pending, time-delayed change of role holder
type RoleTransfer struct {
	Role           string         `json:"role"`
	Initiator      common.Address `json:"initiator"`
	ProposedHolder common.Address `json:"proposed_holder"`
	EligibleAt     time.Time      `json:"eligible_at"`
	Pending        bool           `json:"pending"`
	// Appointment marks a proposal by an ADMIN that does not hold the role;
	// completing it adds the holder without removing anyone
	Appointment bool `json:"appointment"`
}

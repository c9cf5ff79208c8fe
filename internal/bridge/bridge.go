// Package bridge implements the swap coordinator: it validates that the
// on-chain and Lightning legs of a swap are mutually consistent, drives each
// swap through its state machine, and recovers paid-but-unclaimed contracts.
package bridge

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lnevm/bridge/internal/contracts/htlc"
	"github.com/lnevm/bridge/internal/lightning"
	"github.com/lnevm/bridge/internal/storage"
	"github.com/lnevm/bridge/pkg/logging"
)

// ContractClient is the settlement-ledger surface the coordinator uses.
// *htlc.Client satisfies it.
type ContractClient interface {
	HaveContract(ctx context.Context, contractID [32]byte) (bool, error)
	GetContract(ctx context.Context, contractID [32]byte) (*htlc.ContractDetails, error)
	NewContract(ctx context.Context, receiver common.Address, hashlock [32]byte, timelock *big.Int, amountWei *big.Int) ([32]byte, common.Hash, error)
	Withdraw(ctx context.Context, contractID [32]byte, preimage [32]byte) (common.Hash, error)
}

// Responder delivers protocol messages back to the requesting client.
type Responder interface {
	Send(msg interface{}) error
}

// Policy bounds what swaps the operator accepts and how long it waits.
type Policy struct {
	MinSats           int64
	MaxSats           int64
	MinExpiryBuffer   time.Duration
	MaxRoutingFeeSats int64
	SetupFeeSats      int64
	InvoiceExpiry     time.Duration
	HoldWindow        time.Duration
	ContractPoll      time.Duration
}

// Config assembles a Coordinator.
type Config struct {
	Lightning lightning.Client
	Chain     ContractClient
	Store     *storage.Storage
	Policy    Policy
	Log       *logging.Logger

	// Now is the clock; nil means time.Now. Injected for tests.
	Now func() time.Time
}

// Coordinator owns all in-flight swaps for one operator node.
type Coordinator struct {
	ln      lightning.Client
	chain   ContractClient
	store   *storage.Storage
	policy  Policy
	pending *PendingSet
	log     *logging.Logger
	now     func() time.Time
}

// NewCoordinator creates a swap coordinator.
func NewCoordinator(cfg *Config) *Coordinator {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	log := cfg.Log
	if log == nil {
		log = logging.GetDefault()
	}
	return &Coordinator{
		ln:      cfg.Lightning,
		chain:   cfg.Chain,
		store:   cfg.Store,
		policy:  cfg.Policy,
		pending: NewPendingSet(),
		log:     log,
		now:     now,
	}
}

// Policy returns the active policy.
func (c *Coordinator) Policy() Policy {
	return c.policy
}

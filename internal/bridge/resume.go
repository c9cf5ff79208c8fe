package bridge

import (
	"context"

	"github.com/lnevm/bridge/internal/storage"
	"github.com/lnevm/bridge/pkg/helpers"
)

// nopResponder drops responses for swaps whose client connection is gone.
type nopResponder struct{}

func (nopResponder) Send(msg interface{}) error { return nil }

// ResumeOpenSwaps picks up receive swaps a previous run left open. A swap
// whose escrow is already on-chain must keep watching for the revealed
// preimage until settlement or expiry; the timelock is a ledger timestamp,
// so the watch resumes from persisted state alone. Swaps that never got
// funds held made no commitment and are closed instead.
func (c *Coordinator) ResumeOpenSwaps(ctx context.Context) error {
	swaps, err := c.store.ListOpenSwaps()
	if err != nil {
		return err
	}

	for _, sw := range swaps {
		if sw.Direction != storage.DirectionReceive {
			// Send swaps past the payment point recover through the
			// withdrawal cache; anything else needs an operator.
			if sw.Phase != storage.PhaseStuck {
				c.log.Warn("open send swap needs attention", "swap", sw.ID, "phase", sw.Phase)
			}
			continue
		}

		switch sw.Phase {
		case storage.PhaseContractOpen:
			c.resumeWatch(ctx, sw)
		case storage.PhaseAwaitingFee, storage.PhaseAwaitingHold:
			if sw.Phase == storage.PhaseAwaitingHold {
				if hashlock, err := helpers.HexToHash32(sw.PaymentHash); err == nil {
					if err := c.ln.CancelHoldInvoice(ctx, hashlock); err != nil {
						c.log.Warn("failed to cancel hold invoice", "swap", sw.ID, "error", err)
					}
				}
			}
			c.cancel(nopResponder{}, sw.ID, "interrupted before funds were held")
		}
	}
	return nil
}

// resumeWatch re-arms the withdrawal poll loop for one open contract.
func (c *Coordinator) resumeWatch(ctx context.Context, sw *storage.Swap) {
	log := c.log.With("swap", sw.ID, "contract", sw.ContractID)

	contractID, err := helpers.HexToHash32(sw.ContractID)
	if err != nil {
		log.Error("open swap has invalid contract id", "error", err)
		return
	}
	hashlock, err := helpers.HexToHash32(sw.PaymentHash)
	if err != nil {
		log.Error("open swap has invalid hashlock", "error", err)
		return
	}

	log.Info("resuming contract watch", "expires_at", sw.ExpiresAt)
	go func() {
		expiresAt := sw.ExpiresAt
		if expiresAt.IsZero() {
			// Records written before the expiry was persisted; the
			// contract itself still carries the authoritative timelock.
			details, err := c.chain.GetContract(ctx, contractID)
			if err != nil {
				log.Error("failed to read contract for resumed swap", "error", err)
				return
			}
			expiresAt = details.ExpiresAt()
		}
		c.awaitWithdrawal(ctx, sw.ID, contractID, hashlock, expiresAt, nopResponder{})
	}()
}

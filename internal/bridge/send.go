package bridge

import (
	"context"

	"github.com/google/uuid"

	"github.com/lnevm/bridge/internal/lightning"
	"github.com/lnevm/bridge/internal/storage"
	"github.com/lnevm/bridge/pkg/helpers"
)

// HandleSend runs the Send flow: the client has locked value in an on-chain
// contract and asks the operator to pay its Lightning invoice. Once
// PayInvoice returns a preimage the operator is committed; every path after
// that must end in a claimed contract or a cached recovery entry.
func (c *Coordinator) HandleSend(ctx context.Context, req *SendRequest, resp Responder) {
	log := c.log.With("contract", req.ContractID)

	contractID, err := helpers.HexToHash32(req.ContractID)
	if err != nil {
		c.respond(resp, statusError("invalid contract id"))
		return
	}

	if !c.pending.Insert(contractID) {
		c.respond(resp, statusError("contract already being processed"))
		return
	}
	defer c.pending.Remove(contractID)

	exists, err := c.chain.HaveContract(ctx, contractID)
	if err != nil {
		log.Error("failed to check contract", "error", err)
		c.respond(resp, statusError("internal error"))
		return
	}
	if !exists {
		c.respond(resp, statusError("contract not found"))
		return
	}

	swapID := uuid.New().String()
	sw := &storage.Swap{
		ID:         swapID,
		Direction:  storage.DirectionSend,
		Phase:      storage.PhaseValidating,
		ContractID: req.ContractID,
	}
	if err := c.store.CreateSwap(sw); err != nil {
		log.Error("failed to persist swap", "error", err)
		c.respond(resp, statusError("internal error"))
		return
	}

	invoice, err := lightning.DecodeInvoice(req.Invoice)
	if err != nil {
		c.reject(resp, swapID, "invalid invoice")
		return
	}

	contract, err := c.chain.GetContract(ctx, contractID)
	if err != nil {
		log.Error("failed to read contract", "error", err)
		c.reject(resp, swapID, "contract not found")
		return
	}

	if err := Validate(invoice, contract, c.policy, c.now()); err != nil {
		log.Info("swap rejected", "reason", err)
		c.reject(resp, swapID, err.Error())
		return
	}

	c.setPhase(swapID, storage.PhasePaying)
	log.Info("paying invoice", "sats", invoice.Satoshis)

	preimage, err := c.ln.PayInvoice(ctx, req.Invoice, c.policy.MaxRoutingFeeSats)
	if err != nil {
		log.Warn("payment failed", "error", err)
		c.reject(resp, swapID, "payment failed")
		return
	}

	// Irreversibility boundary: funds are spent. The preimage must now
	// claim the contract, immediately or via the recovery cache.
	c.setPhase(swapID, storage.PhaseWithdrawing)

	txHash, err := c.chain.Withdraw(ctx, contractID, preimage)
	if err != nil {
		log.Error("withdrawal failed, caching for recovery", "error", err)
		if cacheErr := c.store.CacheFailedWithdrawal(req.ContractID, helpers.Hash32ToHex(preimage)); cacheErr != nil {
			log.Error("failed to cache withdrawal", "error", cacheErr)
		}
		c.setPhase(swapID, storage.PhaseStuck)
		c.respond(resp, statusSuccess("invoice paid; contract claim pending"))
		return
	}

	c.setPhase(swapID, storage.PhaseSettled)
	log.Info("swap settled", "tx", txHash)
	c.respond(resp, statusSuccess("swap settled"))
}

func (c *Coordinator) reject(resp Responder, swapID, reason string) {
	if err := c.store.FailSwap(swapID, storage.PhaseRejected, reason); err != nil {
		c.log.Error("failed to record rejection", "swap", swapID, "error", err)
	}
	c.respond(resp, statusError(reason))
}

func (c *Coordinator) setPhase(swapID, phase string) {
	if err := c.store.UpdateSwapPhase(swapID, phase); err != nil {
		c.log.Error("failed to update swap phase", "swap", swapID, "phase", phase, "error", err)
	}
}

func (c *Coordinator) respond(resp Responder, msg interface{}) {
	if err := resp.Send(msg); err != nil {
		c.log.Warn("failed to send response", "error", err)
	}
}

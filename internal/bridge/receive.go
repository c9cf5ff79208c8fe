package bridge

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/lnevm/bridge/internal/contracts/htlc"
	"github.com/lnevm/bridge/internal/lightning"
	"github.com/lnevm/bridge/internal/storage"
	"github.com/lnevm/bridge/pkg/helpers"
)

// HandleReceive runs the Receive flow: the client pays a setup fee, then a
// hold invoice locked to its own hashlock; once the hold payment is locked
// in, the operator escrows the swap amount on-chain for the client. The
// hold invoice is settled only after the client's withdrawal is observed
// on-chain, so the operator never pays out without a proven claim.
func (c *Coordinator) HandleReceive(ctx context.Context, req *ReceiveRequest, resp Responder) {
	log := c.log.With("hashlock", req.Hashlock)

	hashlock, err := helpers.HexToHash32(req.Hashlock)
	if err != nil {
		c.respond(resp, statusError("invalid hashlock"))
		return
	}
	if !common.IsHexAddress(req.Recipient) {
		c.respond(resp, statusError("invalid recipient address"))
		return
	}
	if req.AmountSats < c.policy.MinSats || req.AmountSats > c.policy.MaxSats {
		c.respond(resp, statusError(ErrAmountOutOfBounds.Error()))
		return
	}

	swapID := uuid.New().String()
	sw := &storage.Swap{
		ID:          swapID,
		Direction:   storage.DirectionReceive,
		Phase:       storage.PhaseAwaitingFee,
		PaymentHash: req.Hashlock,
		AmountSats:  req.AmountSats,
	}
	if err := c.store.CreateSwap(sw); err != nil {
		log.Error("failed to persist swap", "error", err)
		c.respond(resp, statusError("internal error"))
		return
	}

	// Setup fee: a small plain invoice the client pays up front. Its loss
	// is the client's only exposure in this flow.
	feeInvoice, err := c.ln.CreateInvoice(ctx, c.policy.SetupFeeSats, "swap setup fee", c.policy.InvoiceExpiry)
	if err != nil {
		log.Error("failed to create fee invoice", "error", err)
		c.reject(resp, swapID, "failed to create invoice")
		return
	}
	feeUpdates, err := c.ln.SubscribeInvoice(ctx, feeInvoice.PaymentHash)
	if err != nil {
		log.Error("failed to subscribe to fee invoice", "error", err)
		c.reject(resp, swapID, "internal error")
		return
	}
	c.respond(resp, InvoiceResponse{Kind: KindInvoice, Invoice: feeInvoice.PaymentRequest})

	if !c.awaitState(ctx, feeUpdates, lightning.InvoiceSettled, feeInvoice.ExpiresAt) {
		c.cancel(resp, swapID, "setup fee not paid")
		return
	}

	// Hold invoice keyed by the client's hashlock. Paying it locks the
	// funds without crediting them; the matching on-chain escrow uses
	// the same hash and the same expiry horizon.
	c.setPhase(swapID, storage.PhaseAwaitingHold)
	expiresAt := c.now().Add(c.policy.HoldWindow)

	holdInvoice, err := c.ln.CreateHoldInvoice(ctx, hashlock, req.AmountSats, "swap", c.policy.HoldWindow)
	if err != nil {
		log.Error("failed to create hold invoice", "error", err)
		c.reject(resp, swapID, "failed to create hold invoice")
		return
	}
	holdUpdates, err := c.ln.SubscribeInvoice(ctx, hashlock)
	if err != nil {
		log.Error("failed to subscribe to hold invoice, releasing it", "error", err)
		if cancelErr := c.ln.CancelHoldInvoice(ctx, hashlock); cancelErr != nil {
			log.Error("failed to cancel hold invoice", "error", cancelErr)
		}
		c.reject(resp, swapID, "internal error")
		return
	}
	c.respond(resp, InvoiceResponse{Kind: KindHoldInvoice, Invoice: holdInvoice.PaymentRequest})

	if !c.awaitState(ctx, holdUpdates, lightning.InvoiceHeld, expiresAt) {
		if err := c.ln.CancelHoldInvoice(ctx, hashlock); err != nil {
			log.Warn("failed to cancel hold invoice", "error", err)
		}
		c.cancel(resp, swapID, "hold invoice not paid")
		return
	}

	// Funds are held. Escrow the matching amount on-chain for the client.
	log.Info("hold payment locked in, creating contract", "sats", req.AmountSats)
	contractID, txHash, err := c.chain.NewContract(
		ctx,
		common.HexToAddress(req.Recipient),
		hashlock,
		big.NewInt(expiresAt.Unix()),
		helpers.SatsToWei(req.AmountSats),
	)
	if err != nil {
		log.Error("failed to create contract, releasing hold", "error", err)
		if cancelErr := c.ln.CancelHoldInvoice(ctx, hashlock); cancelErr != nil {
			log.Error("failed to cancel hold invoice", "error", cancelErr)
		}
		c.cancel(resp, swapID, "failed to create contract")
		return
	}

	contractHex := helpers.Hash32ToHex(contractID)
	if err := c.store.SetSwapContractID(swapID, contractHex, expiresAt); err != nil {
		log.Error("failed to record contract id", "error", err)
	}
	c.setPhase(swapID, storage.PhaseContractOpen)
	log.Info("contract created", "contract", contractHex, "tx", txHash)
	c.respond(resp, HoldContractResponse{Kind: KindHoldContract, ContractID: contractHex})

	c.awaitWithdrawal(ctx, swapID, contractID, hashlock, expiresAt, resp)
}

// awaitWithdrawal polls the tracked contract until the client claims it or
// the timelock passes. This poll is the operator's only path to the
// client's secret; settlement must use the preimage read from this exact
// contract and nothing else.
func (c *Coordinator) awaitWithdrawal(ctx context.Context, swapID string, contractID, hashlock [32]byte, expiresAt time.Time, resp Responder) {
	log := c.log.With("contract", helpers.Hash32ToHex(contractID))

	ticker := time.NewTicker(c.policy.ContractPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		details, err := c.chain.GetContract(ctx, contractID)
		if err != nil {
			log.Warn("contract poll failed", "error", err)
			continue
		}

		if details.Withdrawn && details.HasPreimage() {
			if htlc.VerifyPreimage(details.Preimage, hashlock) {
				err := c.ln.SettleHoldInvoice(ctx, details.Preimage)
				if err != nil && !errors.Is(err, lightning.ErrInvoiceAlreadySettled) {
					log.Error("failed to settle hold invoice", "error", err)
					continue
				}
				c.setPhase(swapID, storage.PhaseSettled)
				log.Info("hold invoice settled")
				c.respond(resp, statusSuccess("swap settled"))
				return
			}
			// Not a claim we can settle against; let the expiry path run.
			log.Error("withdrawn contract preimage does not match hashlock")
		}

		if c.now().After(expiresAt) {
			log.Info("contract expired unclaimed, releasing hold")
			if err := c.ln.CancelHoldInvoice(ctx, hashlock); err != nil {
				log.Warn("failed to cancel hold invoice", "error", err)
			}
			c.cancel(resp, swapID, "contract expired unclaimed")
			return
		}
	}
}

// awaitState consumes invoice updates until the wanted state arrives.
// Returns false on terminal-miss (canceled), channel close, deadline, or
// context cancellation.
func (c *Coordinator) awaitState(ctx context.Context, updates <-chan lightning.InvoiceUpdate, want lightning.InvoiceState, deadline time.Time) bool {
	timer := time.NewTimer(deadline.Sub(c.now()))
	defer timer.Stop()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return false
			}
			if update.State == want {
				return true
			}
			if update.State == lightning.InvoiceCanceled {
				return false
			}
		case <-timer.C:
			return false
		case <-ctx.Done():
			return false
		}
	}
}

func (c *Coordinator) cancel(resp Responder, swapID, reason string) {
	if err := c.store.FailSwap(swapID, storage.PhaseCanceled, reason); err != nil {
		c.log.Error("failed to record cancellation", "swap", swapID, "error", err)
	}
	c.respond(resp, statusError(reason))
}

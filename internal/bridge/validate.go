package bridge

import (
	"errors"
	"time"

	"github.com/lnevm/bridge/internal/contracts/htlc"
	"github.com/lnevm/bridge/internal/lightning"
	"github.com/lnevm/bridge/pkg/helpers"
)

// Validation errors, ordered by the check that raises them. The error text
// is what the client sees.
var (
	ErrInvoiceExceedsContract = errors.New("invoice exceeds contract amount")
	ErrAmountOutOfBounds      = errors.New("invoice amount outside accepted bounds")
	ErrInvoiceExpired         = errors.New("invoice expired")
	ErrContractExpired        = errors.New("contract expired")
	ErrInsufficientBuffer     = errors.New("insufficient buffer to claim contract")
	ErrHashlockMismatch       = errors.New("hashlock mismatch")
	ErrAlreadySettled         = errors.New("already settled")
)

// Validate checks that an invoice and a contract describe the same swap and
// that paying the invoice leaves the operator able to claim the escrow.
// Checks run in order and short-circuit on the first failure. The buffer
// check is the safety crux: the operator must never commit the Lightning
// leg unless the on-chain timelock outlives the time needed to claim it.
func Validate(invoice *lightning.Invoice, contract *htlc.ContractDetails, policy Policy, now time.Time) error {
	if invoice.Satoshis > helpers.WeiToSats(contract.Amount) {
		return ErrInvoiceExceedsContract
	}

	if invoice.Satoshis < policy.MinSats || invoice.Satoshis > policy.MaxSats {
		return ErrAmountOutOfBounds
	}

	if invoice.Expired(now) {
		return ErrInvoiceExpired
	}
	expiry := contract.ExpiresAt()
	if !expiry.After(now) {
		return ErrContractExpired
	}

	if expiry.Sub(now) < policy.MinExpiryBuffer {
		return ErrInsufficientBuffer
	}

	if invoice.PaymentHash != contract.Hashlock {
		return ErrHashlockMismatch
	}

	if contract.Withdrawn || contract.Refunded || contract.HasPreimage() {
		return ErrAlreadySettled
	}

	return nil
}

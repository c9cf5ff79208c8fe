// Package lightning provides invoice and payment access to a Lightning node.
// The real implementation talks to LND over gRPC; a mock implementation
// stands in when no node is configured.
package lightning

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors returned by Client implementations.
var (
	ErrPaymentFailed  = errors.New("payment failed")
	ErrInvoiceUnknown = errors.New("invoice unknown")

	// ErrInvoiceAlreadySettled means a settle raced an earlier settle of
	// the same invoice. The funds are credited; callers treat this as
	// success.
	ErrInvoiceAlreadySettled = errors.New("invoice already settled")
)

// InvoiceState is the lifecycle state of an invoice.
type InvoiceState int

const (
	// InvoiceOpen means the invoice is payable and unpaid.
	InvoiceOpen InvoiceState = iota

	// InvoiceHeld means an inbound payment is locked in on a hold invoice
	// but not yet settled. Funds are committed by the payer.
	InvoiceHeld

	// InvoiceSettled means the invoice has been paid and settled.
	InvoiceSettled

	// InvoiceCanceled means the invoice was canceled or expired.
	InvoiceCanceled
)

func (s InvoiceState) String() string {
	switch s {
	case InvoiceOpen:
		return "open"
	case InvoiceHeld:
		return "held"
	case InvoiceSettled:
		return "settled"
	case InvoiceCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Invoice holds the fields of a generated or decoded BOLT11 invoice.
type Invoice struct {
	PaymentRequest string
	PaymentHash    [32]byte
	Satoshis       int64
	Description    string
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// Expired reports whether the invoice is past its expiry at the given time.
func (i *Invoice) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// InvoiceUpdate is a state transition delivered on a subscription channel.
type InvoiceUpdate struct {
	PaymentHash [32]byte
	State       InvoiceState
	AmountSats  int64
}

// Client is the node interface the bridge coordinator works against.
type Client interface {
	// CreateInvoice generates a standard invoice for the given amount.
	CreateInvoice(ctx context.Context, amountSats int64, memo string, expiry time.Duration) (*Invoice, error)

	// CreateHoldInvoice generates a hold invoice locked to an externally
	// supplied payment hash. Settlement requires the matching preimage.
	CreateHoldInvoice(ctx context.Context, hash [32]byte, amountSats int64, memo string, expiry time.Duration) (*Invoice, error)

	// SubscribeInvoice streams state updates for one invoice. The channel
	// closes when the invoice reaches a terminal state or ctx is done.
	SubscribeInvoice(ctx context.Context, hash [32]byte) (<-chan InvoiceUpdate, error)

	// SettleHoldInvoice settles a held invoice with its preimage.
	SettleHoldInvoice(ctx context.Context, preimage [32]byte) error

	// CancelHoldInvoice cancels a hold invoice, releasing any held payment.
	CancelHoldInvoice(ctx context.Context, hash [32]byte) error

	// PayInvoice pays an invoice and returns the preimage obtained from
	// the settled payment. This is the irreversible step of a swap.
	PayInvoice(ctx context.Context, paymentRequest string, maxFeeSats int64) ([32]byte, error)

	// Close releases the node connection.
	Close() error
}

package lightning

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// MockClient is an in-memory Client used when no LND node is configured.
// Invoices are tracked locally and payments succeed instantly, which lets
// the rest of the system run end-to-end against a real ledger without
// moving any satoshis.
type MockClient struct {
	mu       sync.Mutex
	invoices map[[32]byte]*mockInvoice
}

type mockInvoice struct {
	invoice  Invoice
	state    InvoiceState
	hold     bool
	preimage [32]byte // zero for hold invoices until settled
	subs     []chan InvoiceUpdate
}

// NewMockClient creates a mock Lightning client.
func NewMockClient() *MockClient {
	return &MockClient{invoices: make(map[[32]byte]*mockInvoice)}
}

// Close implements Client.
func (m *MockClient) Close() error { return nil }

// CreateInvoice generates a fake invoice with a locally known preimage.
func (m *MockClient) CreateInvoice(ctx context.Context, amountSats int64, memo string, expiry time.Duration) (*Invoice, error) {
	var preimage [32]byte
	if _, err := rand.Read(preimage[:]); err != nil {
		return nil, fmt.Errorf("failed to generate preimage: %w", err)
	}
	hash := sha256.Sum256(preimage[:])

	inv := m.register(hash, amountSats, memo, expiry, false)
	m.mu.Lock()
	m.invoices[hash].preimage = preimage
	m.mu.Unlock()
	return inv, nil
}

// CreateHoldInvoice generates a fake hold invoice locked to the given hash.
func (m *MockClient) CreateHoldInvoice(ctx context.Context, hash [32]byte, amountSats int64, memo string, expiry time.Duration) (*Invoice, error) {
	return m.register(hash, amountSats, memo, expiry, true), nil
}

func (m *MockClient) register(hash [32]byte, amountSats int64, memo string, expiry time.Duration, hold bool) *Invoice {
	now := time.Now()
	inv := Invoice{
		PaymentRequest: "lnmock1" + hex.EncodeToString(hash[:]),
		PaymentHash:    hash,
		Satoshis:       amountSats,
		Description:    memo,
		CreatedAt:      now,
		ExpiresAt:      now.Add(expiry),
	}

	m.mu.Lock()
	m.invoices[hash] = &mockInvoice{invoice: inv, state: InvoiceOpen, hold: hold}
	m.mu.Unlock()
	return &inv
}

// SubscribeInvoice streams state updates for one invoice.
func (m *MockClient) SubscribeInvoice(ctx context.Context, hash [32]byte) (<-chan InvoiceUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv, ok := m.invoices[hash]
	if !ok {
		return nil, ErrInvoiceUnknown
	}

	ch := make(chan InvoiceUpdate, 4)
	inv.subs = append(inv.subs, ch)

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range inv.subs {
			if sub == ch {
				inv.subs = append(inv.subs[:i], inv.subs[i+1:]...)
				close(ch)
				return
			}
		}
	}()

	return ch, nil
}

// MarkHeld simulates an inbound payment locking in on a hold invoice.
func (m *MockClient) MarkHeld(hash [32]byte) error {
	return m.transition(hash, InvoiceHeld)
}

// MarkSettled simulates a standard invoice being paid.
func (m *MockClient) MarkSettled(hash [32]byte) error {
	return m.transition(hash, InvoiceSettled)
}

// SettleHoldInvoice settles a held invoice with its preimage.
func (m *MockClient) SettleHoldInvoice(ctx context.Context, preimage [32]byte) error {
	hash := sha256.Sum256(preimage[:])

	m.mu.Lock()
	inv, ok := m.invoices[hash]
	settled := ok && inv.state == InvoiceSettled
	if ok && !settled {
		inv.preimage = preimage
	}
	m.mu.Unlock()

	if !ok {
		return ErrInvoiceUnknown
	}
	if settled {
		return ErrInvoiceAlreadySettled
	}
	return m.transition(hash, InvoiceSettled)
}

// CancelHoldInvoice cancels a hold invoice.
func (m *MockClient) CancelHoldInvoice(ctx context.Context, hash [32]byte) error {
	return m.transition(hash, InvoiceCanceled)
}

func (m *MockClient) transition(hash [32]byte, state InvoiceState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv, ok := m.invoices[hash]
	if !ok {
		return ErrInvoiceUnknown
	}
	inv.state = state

	update := InvoiceUpdate{
		PaymentHash: hash,
		State:       state,
		AmountSats:  inv.invoice.Satoshis,
	}
	for _, sub := range inv.subs {
		select {
		case sub <- update:
		default:
		}
	}
	if state == InvoiceSettled || state == InvoiceCanceled {
		for _, sub := range inv.subs {
			close(sub)
		}
		inv.subs = nil
	}
	return nil
}

// PayInvoice simulates an outbound payment. It always succeeds with a
// random preimage; callers in mock mode know settlement is fake.
func (m *MockClient) PayInvoice(ctx context.Context, paymentRequest string, maxFeeSats int64) ([32]byte, error) {
	var preimage [32]byte
	if _, err := rand.Read(preimage[:]); err != nil {
		return [32]byte{}, fmt.Errorf("failed to generate preimage: %w", err)
	}
	return preimage, nil
}

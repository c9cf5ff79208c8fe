package bridge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lnevm/bridge/internal/contracts/htlc"
	"github.com/lnevm/bridge/internal/lightning"
	"github.com/lnevm/bridge/internal/storage"
	"github.com/lnevm/bridge/pkg/helpers"
)

const testRecipient = "0x1563915e194d8cfba1943570603f7606a3115508"

// chanResponder delivers responses to the test as they are sent, which lets
// the test drive each stage of the flow in lockstep with the coordinator.
type chanResponder struct {
	ch chan interface{}
}

func newChanResponder() *chanResponder {
	return &chanResponder{ch: make(chan interface{}, 16)}
}

func (r *chanResponder) Send(msg interface{}) error {
	r.ch <- msg
	return nil
}

func (r *chanResponder) next(t *testing.T) interface{} {
	t.Helper()
	select {
	case msg := <-r.ch:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for response")
		return nil
	}
}

// mockHash extracts the payment hash from a MockClient payment request.
func mockHash(t *testing.T, paymentRequest string) [32]byte {
	t.Helper()
	raw, err := hex.DecodeString(strings.TrimPrefix(paymentRequest, "lnmock1"))
	if err != nil || len(raw) != 32 {
		t.Fatalf("unexpected payment request %q", paymentRequest)
	}
	var hash [32]byte
	copy(hash[:], raw)
	return hash
}

func receiveFixture(t *testing.T, holdWindow time.Duration) (*Coordinator, *lightning.MockClient, *fakeChain, *storage.Storage) {
	t.Helper()
	ln := lightning.NewMockClient()
	coord, chain, store := receiveFixtureWith(t, ln, holdWindow)
	return coord, ln, chain, store
}

func receiveFixtureWith(t *testing.T, ln lightning.Client, holdWindow time.Duration) (*Coordinator, *fakeChain, *storage.Storage) {
	t.Helper()

	chain := newFakeChain()
	store := newTestStore(t)

	coord := NewCoordinator(&Config{
		Lightning: ln,
		Chain:     chain,
		Store:     store,
		Policy: Policy{
			MinSats:       2,
			MaxSats:       100_000,
			SetupFeeSats:  10,
			InvoiceExpiry: 2 * time.Second,
			HoldWindow:    holdWindow,
			ContractPoll:  5 * time.Millisecond,
		},
		Log: quietLog(),
	})
	return coord, chain, store
}

// runReceive drives a receive flow up to contract creation and returns the
// created contract id.
func runReceive(t *testing.T, coord *Coordinator, ln *lightning.MockClient, chain *fakeChain, resp *chanResponder, hashlock [32]byte, done chan struct{}) [32]byte {
	t.Helper()

	chain.nextID = [32]byte{0xd0}

	go func() {
		defer close(done)
		coord.HandleReceive(context.Background(), &ReceiveRequest{
			Kind:       KindInitiationReceive,
			AmountSats: 500,
			Recipient:  testRecipient,
			Hashlock:   helpers.Hash32ToHex(hashlock),
		}, resp)
	}()

	feeMsg, ok := resp.next(t).(InvoiceResponse)
	if !ok || feeMsg.Kind != KindInvoice {
		t.Fatalf("first message = %+v, want fee invoice", feeMsg)
	}
	if err := ln.MarkSettled(mockHash(t, feeMsg.Invoice)); err != nil {
		t.Fatalf("MarkSettled(fee) error = %v", err)
	}

	holdMsg, ok := resp.next(t).(InvoiceResponse)
	if !ok || holdMsg.Kind != KindHoldInvoice {
		t.Fatalf("second message = %+v, want hold invoice", holdMsg)
	}
	if mockHash(t, holdMsg.Invoice) != hashlock {
		t.Fatal("hold invoice is not locked to the client hashlock")
	}
	if err := ln.MarkHeld(hashlock); err != nil {
		t.Fatalf("MarkHeld() error = %v", err)
	}

	contractMsg, ok := resp.next(t).(HoldContractResponse)
	if !ok || contractMsg.Kind != KindHoldContract {
		t.Fatalf("third message = %+v, want hold contract", contractMsg)
	}
	if contractMsg.ContractID != helpers.Hash32ToHex(chain.nextID) {
		t.Fatalf("contract id = %s", contractMsg.ContractID)
	}
	return chain.nextID
}

func TestReceiveSettlesOnWithdrawal(t *testing.T) {
	coord, ln, chain, store := receiveFixture(t, 2*time.Second)
	resp := newChanResponder()
	done := make(chan struct{})

	var preimage [32]byte
	preimage[0] = 0x5a
	hashlock := sha256.Sum256(preimage[:])

	contractID := runReceive(t, coord, ln, chain, resp, hashlock, done)

	// Contract parameters must match the held payment.
	details, err := chain.GetContract(context.Background(), contractID)
	if err != nil {
		t.Fatalf("GetContract() error = %v", err)
	}
	if details.Hashlock != hashlock {
		t.Error("contract hashlock does not match client hashlock")
	}
	if details.Amount.Cmp(helpers.SatsToWei(500)) != 0 {
		t.Errorf("contract amount = %s", details.Amount)
	}

	// The client claims on-chain, revealing the preimage.
	if _, err := chain.Withdraw(context.Background(), contractID, preimage); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}

	status, ok := resp.next(t).(StatusResponse)
	if !ok || status.Status != StatusSuccess || status.Message != "swap settled" {
		t.Fatalf("final message = %+v", status)
	}
	<-done

	sw, err := store.GetSwapByContractID(helpers.Hash32ToHex(contractID))
	if err != nil {
		t.Fatalf("GetSwapByContractID() error = %v", err)
	}
	if sw.Phase != storage.PhaseSettled || sw.Direction != storage.DirectionReceive {
		t.Errorf("swap = %+v", sw)
	}
}

func TestReceiveCancelsOnExpiry(t *testing.T) {
	coord, ln, chain, store := receiveFixture(t, 200*time.Millisecond)
	resp := newChanResponder()
	done := make(chan struct{})

	var preimage [32]byte
	preimage[0] = 0x5b
	hashlock := sha256.Sum256(preimage[:])

	contractID := runReceive(t, coord, ln, chain, resp, hashlock, done)

	// No withdrawal: the hold must be released once the window passes.
	status, ok := resp.next(t).(StatusResponse)
	if !ok || status.Status != StatusError || status.Message != "contract expired unclaimed" {
		t.Fatalf("final message = %+v", status)
	}
	<-done

	sw, _ := store.GetSwapByContractID(helpers.Hash32ToHex(contractID))
	if sw == nil || sw.Phase != storage.PhaseCanceled {
		t.Errorf("swap = %+v", sw)
	}
}

func TestReceiveIgnoresMismatchedPreimage(t *testing.T) {
	coord, ln, chain, store := receiveFixture(t, 300*time.Millisecond)
	resp := newChanResponder()
	done := make(chan struct{})

	var preimage [32]byte
	preimage[0] = 0x5c
	hashlock := sha256.Sum256(preimage[:])

	contractID := runReceive(t, coord, ln, chain, resp, hashlock, done)

	// A withdrawal carrying the wrong secret must never settle the hold.
	var wrong [32]byte
	wrong[0] = 0xff
	if _, err := chain.Withdraw(context.Background(), contractID, wrong); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}

	status, ok := resp.next(t).(StatusResponse)
	if !ok || status.Status != StatusError || status.Message != "contract expired unclaimed" {
		t.Fatalf("final message = %+v", status)
	}
	<-done

	sw, _ := store.GetSwapByContractID(helpers.Hash32ToHex(contractID))
	if sw == nil || sw.Phase != storage.PhaseCanceled {
		t.Errorf("swap = %+v", sw)
	}
}

func TestReceiveCancelsWhenFeeUnpaid(t *testing.T) {
	coord, _, _, _ := receiveFixture(t, time.Second)
	coord.policy.InvoiceExpiry = 50 * time.Millisecond
	resp := newChanResponder()

	var hashlock [32]byte
	hashlock[0] = 0x5d

	coord.HandleReceive(context.Background(), &ReceiveRequest{
		Kind:       KindInitiationReceive,
		AmountSats: 500,
		Recipient:  testRecipient,
		Hashlock:   helpers.Hash32ToHex(hashlock),
	}, resp)

	if _, ok := resp.next(t).(InvoiceResponse); !ok {
		t.Fatal("expected fee invoice first")
	}
	status, ok := resp.next(t).(StatusResponse)
	if !ok || status.Status != StatusError || status.Message != "setup fee not paid" {
		t.Fatalf("final message = %+v", status)
	}
}

func TestReceiveRejectsBadInput(t *testing.T) {
	coord, _, _, _ := receiveFixture(t, time.Second)

	tests := []struct {
		name string
		req  ReceiveRequest
		want string
	}{
		{
			name: "bad hashlock",
			req:  ReceiveRequest{AmountSats: 500, Recipient: testRecipient, Hashlock: "zz"},
			want: "invalid hashlock",
		},
		{
			name: "bad recipient",
			req: ReceiveRequest{
				AmountSats: 500,
				Recipient:  "not-an-address",
				Hashlock:   helpers.Hash32ToHex([32]byte{0x01}),
			},
			want: "invalid recipient address",
		},
		{
			name: "amount out of bounds",
			req: ReceiveRequest{
				AmountSats: 1,
				Recipient:  testRecipient,
				Hashlock:   helpers.Hash32ToHex([32]byte{0x02}),
			},
			want: ErrAmountOutOfBounds.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newChanResponder()
			coord.HandleReceive(context.Background(), &tt.req, resp)

			status, ok := resp.next(t).(StatusResponse)
			if !ok || status.Status != StatusError || status.Message != tt.want {
				t.Errorf("status = %+v, want error %q", status, tt.want)
			}
		})
	}
}

// waitForPhase polls the store until the swap reaches the wanted phase.
func waitForPhase(t *testing.T, store *storage.Storage, swapID, phase string) {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		sw, err := store.GetSwap(swapID)
		if err == nil && sw.Phase == phase {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("swap %s never reached phase %s (last: %+v, err: %v)", swapID, phase, sw, err)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// seedOpenReceiveSwap writes the state a run that died mid-flow leaves behind.
func seedOpenReceiveSwap(t *testing.T, store *storage.Storage, id, phase string, contractID, hashlock [32]byte, expiresAt time.Time) {
	t.Helper()

	sw := &storage.Swap{
		ID:          id,
		Direction:   storage.DirectionReceive,
		Phase:       phase,
		PaymentHash: helpers.Hash32ToHex(hashlock),
		AmountSats:  500,
		ExpiresAt:   expiresAt,
	}
	if phase == storage.PhaseContractOpen {
		sw.ContractID = helpers.Hash32ToHex(contractID)
	}
	if err := store.CreateSwap(sw); err != nil {
		t.Fatalf("CreateSwap() error = %v", err)
	}
}

func TestResumeReopensContractWatch(t *testing.T) {
	coord, ln, chain, store := receiveFixture(t, 2*time.Second)

	var preimage [32]byte
	preimage[0] = 0x6a
	hashlock := sha256.Sum256(preimage[:])

	var contractID [32]byte
	contractID[0] = 0xd1
	expiresAt := time.Now().Add(2 * time.Second)

	// Hold payment locked in, escrow funded, then the daemon died.
	if _, err := ln.CreateHoldInvoice(context.Background(), hashlock, 500, "swap", 2*time.Second); err != nil {
		t.Fatalf("CreateHoldInvoice() error = %v", err)
	}
	if err := ln.MarkHeld(hashlock); err != nil {
		t.Fatalf("MarkHeld() error = %v", err)
	}
	chain.put(contractID, &htlc.ContractDetails{
		Amount:   helpers.SatsToWei(500),
		Hashlock: hashlock,
		Timelock: big.NewInt(expiresAt.Unix()),
	})
	seedOpenReceiveSwap(t, store, "resume-1", storage.PhaseContractOpen, contractID, hashlock, expiresAt)

	if err := coord.ResumeOpenSwaps(context.Background()); err != nil {
		t.Fatalf("ResumeOpenSwaps() error = %v", err)
	}

	// The client claims after the restart; the resumed watch must still
	// pick up the preimage and settle the hold.
	if _, err := chain.Withdraw(context.Background(), contractID, preimage); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}
	waitForPhase(t, store, "resume-1", storage.PhaseSettled)
}

func TestResumeCancelsExpiredContract(t *testing.T) {
	coord, ln, chain, store := receiveFixture(t, time.Second)

	var preimage [32]byte
	preimage[0] = 0x6b
	hashlock := sha256.Sum256(preimage[:])

	var contractID [32]byte
	contractID[0] = 0xd2
	expiresAt := time.Now().Add(-time.Minute)

	if _, err := ln.CreateHoldInvoice(context.Background(), hashlock, 500, "swap", time.Second); err != nil {
		t.Fatalf("CreateHoldInvoice() error = %v", err)
	}
	if err := ln.MarkHeld(hashlock); err != nil {
		t.Fatalf("MarkHeld() error = %v", err)
	}
	chain.put(contractID, &htlc.ContractDetails{
		Amount:   helpers.SatsToWei(500),
		Hashlock: hashlock,
		Timelock: big.NewInt(expiresAt.Unix()),
	})
	seedOpenReceiveSwap(t, store, "resume-2", storage.PhaseContractOpen, contractID, hashlock, expiresAt)

	if err := coord.ResumeOpenSwaps(context.Background()); err != nil {
		t.Fatalf("ResumeOpenSwaps() error = %v", err)
	}

	// Timelock already passed and no claim landed: release the hold.
	waitForPhase(t, store, "resume-2", storage.PhaseCanceled)
	sw, err := store.GetSwap("resume-2")
	if err != nil {
		t.Fatalf("GetSwap() error = %v", err)
	}
	if sw.Failure != "contract expired unclaimed" {
		t.Errorf("failure = %q", sw.Failure)
	}
}

func TestResumeClosesUncommittedSwaps(t *testing.T) {
	coord, ln, _, store := receiveFixture(t, time.Second)

	var hashlock [32]byte
	hashlock[0] = 0x6c

	if _, err := ln.CreateHoldInvoice(context.Background(), hashlock, 500, "swap", time.Minute); err != nil {
		t.Fatalf("CreateHoldInvoice() error = %v", err)
	}
	updates, err := ln.SubscribeInvoice(context.Background(), hashlock)
	if err != nil {
		t.Fatalf("SubscribeInvoice() error = %v", err)
	}

	seedOpenReceiveSwap(t, store, "resume-hold", storage.PhaseAwaitingHold, [32]byte{}, hashlock, time.Time{})
	seedOpenReceiveSwap(t, store, "resume-fee", storage.PhaseAwaitingFee, [32]byte{}, [32]byte{0x6d}, time.Time{})

	if err := coord.ResumeOpenSwaps(context.Background()); err != nil {
		t.Fatalf("ResumeOpenSwaps() error = %v", err)
	}

	for _, id := range []string{"resume-hold", "resume-fee"} {
		sw, err := store.GetSwap(id)
		if err != nil {
			t.Fatalf("GetSwap(%s) error = %v", id, err)
		}
		if sw.Phase != storage.PhaseCanceled || sw.Failure != "interrupted before funds were held" {
			t.Errorf("swap %s = %+v", id, sw)
		}
	}

	// The dangling hold invoice must be released.
	select {
	case update := <-updates:
		if update.State != lightning.InvoiceCanceled {
			t.Errorf("invoice state = %s, want canceled", update.State)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("hold invoice was never canceled")
	}
}

// settledLN reports every settle attempt as racing an earlier one.
type settledLN struct {
	*lightning.MockClient
}

func (s *settledLN) SettleHoldInvoice(ctx context.Context, preimage [32]byte) error {
	return lightning.ErrInvoiceAlreadySettled
}

func TestReceiveTreatsSettledInvoiceAsSuccess(t *testing.T) {
	ln := &settledLN{MockClient: lightning.NewMockClient()}
	coord, chain, store := receiveFixtureWith(t, ln, 2*time.Second)
	resp := newChanResponder()
	done := make(chan struct{})

	var preimage [32]byte
	preimage[0] = 0x6e
	hashlock := sha256.Sum256(preimage[:])

	contractID := runReceive(t, coord, ln.MockClient, chain, resp, hashlock, done)

	if _, err := chain.Withdraw(context.Background(), contractID, preimage); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}

	// The invoice is already credited; the swap must settle, not spin.
	status, ok := resp.next(t).(StatusResponse)
	if !ok || status.Status != StatusSuccess || status.Message != "swap settled" {
		t.Fatalf("final message = %+v", status)
	}
	<-done

	sw, err := store.GetSwapByContractID(helpers.Hash32ToHex(contractID))
	if err != nil {
		t.Fatalf("GetSwapByContractID() error = %v", err)
	}
	if sw.Phase != storage.PhaseSettled {
		t.Errorf("phase = %s, want settled", sw.Phase)
	}
}

// brokenSubLN fails subscriptions for one hash and records cancellations.
type brokenSubLN struct {
	*lightning.MockClient
	failHash [32]byte

	mu       sync.Mutex
	canceled [][32]byte
}

func (b *brokenSubLN) SubscribeInvoice(ctx context.Context, hash [32]byte) (<-chan lightning.InvoiceUpdate, error) {
	if hash == b.failHash {
		return nil, errors.New("stream unavailable")
	}
	return b.MockClient.SubscribeInvoice(ctx, hash)
}

func (b *brokenSubLN) CancelHoldInvoice(ctx context.Context, hash [32]byte) error {
	b.mu.Lock()
	b.canceled = append(b.canceled, hash)
	b.mu.Unlock()
	return b.MockClient.CancelHoldInvoice(ctx, hash)
}

func TestReceiveReleasesHoldWhenSubscribeFails(t *testing.T) {
	var hashlock [32]byte
	hashlock[0] = 0x6f

	ln := &brokenSubLN{MockClient: lightning.NewMockClient(), failHash: hashlock}
	coord, _, _ := receiveFixtureWith(t, ln, time.Second)
	resp := newChanResponder()
	done := make(chan struct{})

	go func() {
		defer close(done)
		coord.HandleReceive(context.Background(), &ReceiveRequest{
			Kind:       KindInitiationReceive,
			AmountSats: 500,
			Recipient:  testRecipient,
			Hashlock:   helpers.Hash32ToHex(hashlock),
		}, resp)
	}()

	feeMsg, ok := resp.next(t).(InvoiceResponse)
	if !ok || feeMsg.Kind != KindInvoice {
		t.Fatalf("first message = %+v, want fee invoice", feeMsg)
	}
	if err := ln.MarkSettled(mockHash(t, feeMsg.Invoice)); err != nil {
		t.Fatalf("MarkSettled(fee) error = %v", err)
	}

	// The hold invoice exists but its subscription is dead: the flow must
	// not leave it payable.
	status, ok := resp.next(t).(StatusResponse)
	if !ok || status.Status != StatusError || status.Message != "internal error" {
		t.Fatalf("final message = %+v", status)
	}
	<-done

	ln.mu.Lock()
	canceled := append([][32]byte(nil), ln.canceled...)
	ln.mu.Unlock()
	if len(canceled) != 1 || canceled[0] != hashlock {
		t.Errorf("canceled = %x, want the hold hashlock once", canceled)
	}
}

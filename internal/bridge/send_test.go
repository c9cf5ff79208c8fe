package bridge

import (
	"context"
	"errors"
	"math/big"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lnevm/bridge/internal/contracts/htlc"
	"github.com/lnevm/bridge/internal/lightning"
	"github.com/lnevm/bridge/internal/storage"
	"github.com/lnevm/bridge/pkg/helpers"
	"github.com/lnevm/bridge/pkg/logging"
)

// Signed test invoice from the BOLT11 spec: 250000 sats, payment hash
// 000102...090102, created 2017-06-01 with a 60s expiry.
const testInvoice = "lnbc2500u1pvjluezpp5qqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqqqsyqcyq5rqwzqfqypqdq5xysxxatsyp3k7enxv4jsxqzpuaztrnwngzn3kdzw5hydlzf03qdgm2hdq27cqv3agm2awhz5se903vruatfhq77w3ls4evs3ch9zw97j25emudupq63nyw24cg27h2rspfj9srp"

const testInvoiceCreatedAt = 1496314658

func testInvoiceHash(t *testing.T) [32]byte {
	t.Helper()
	hash, err := helpers.HexToHash32("0001020304050607080900010203040506070809000102030405060708090102")
	if err != nil {
		t.Fatalf("bad test hash: %v", err)
	}
	return hash
}

// fakeChain is an in-memory ContractClient.
type fakeChain struct {
	mu            sync.Mutex
	contracts     map[[32]byte]*htlc.ContractDetails
	withdrawErrs  []error // consumed one per Withdraw call; nil entry = success
	withdrawCalls [][32]byte
	nextID        [32]byte
}

func newFakeChain() *fakeChain {
	return &fakeChain{contracts: make(map[[32]byte]*htlc.ContractDetails)}
}

func (f *fakeChain) put(id [32]byte, details *htlc.ContractDetails) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contracts[id] = details
}

func (f *fakeChain) HaveContract(ctx context.Context, id [32]byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.contracts[id]
	return ok, nil
}

func (f *fakeChain) GetContract(ctx context.Context, id [32]byte) (*htlc.ContractDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	details, ok := f.contracts[id]
	if !ok {
		return nil, errors.New("no such contract")
	}
	copied := *details
	return &copied, nil
}

func (f *fakeChain) NewContract(ctx context.Context, receiver common.Address, hashlock [32]byte, timelock, amountWei *big.Int) ([32]byte, common.Hash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contracts[f.nextID] = &htlc.ContractDetails{
		Receiver: receiver,
		Amount:   amountWei,
		Hashlock: hashlock,
		Timelock: timelock,
	}
	return f.nextID, common.Hash{0x01}, nil
}

func (f *fakeChain) Withdraw(ctx context.Context, id [32]byte, preimage [32]byte) (common.Hash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.withdrawCalls = append(f.withdrawCalls, id)
	if len(f.withdrawErrs) > 0 {
		err := f.withdrawErrs[0]
		f.withdrawErrs = f.withdrawErrs[1:]
		if err != nil {
			return common.Hash{}, err
		}
	}
	if c, ok := f.contracts[id]; ok {
		c.Withdrawn = true
		c.Preimage = preimage
	}
	return common.Hash{0x02}, nil
}

func (f *fakeChain) withdrawCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.withdrawCalls)
}

// fakeLN implements lightning.Client for the Send flow.
type fakeLN struct {
	mu       sync.Mutex
	payCalls int
	payErr   error
	preimage [32]byte
	payGate  chan struct{} // when set, PayInvoice blocks until closed
}

func (f *fakeLN) CreateInvoice(ctx context.Context, amountSats int64, memo string, expiry time.Duration) (*lightning.Invoice, error) {
	return nil, errors.New("not supported")
}

func (f *fakeLN) CreateHoldInvoice(ctx context.Context, hash [32]byte, amountSats int64, memo string, expiry time.Duration) (*lightning.Invoice, error) {
	return nil, errors.New("not supported")
}

func (f *fakeLN) SubscribeInvoice(ctx context.Context, hash [32]byte) (<-chan lightning.InvoiceUpdate, error) {
	return nil, errors.New("not supported")
}

func (f *fakeLN) SettleHoldInvoice(ctx context.Context, preimage [32]byte) error { return nil }
func (f *fakeLN) CancelHoldInvoice(ctx context.Context, hash [32]byte) error     { return nil }
func (f *fakeLN) Close() error                                                   { return nil }

func (f *fakeLN) PayInvoice(ctx context.Context, paymentRequest string, maxFeeSats int64) ([32]byte, error) {
	f.mu.Lock()
	f.payCalls++
	gate := f.payGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if f.payErr != nil {
		return [32]byte{}, f.payErr
	}
	return f.preimage, nil
}

func (f *fakeLN) payCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payCalls
}

// recordResponder collects responses.
type recordResponder struct {
	mu   sync.Mutex
	msgs []interface{}
}

func (r *recordResponder) Send(msg interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordResponder) statuses() []StatusResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []StatusResponse
	for _, m := range r.msgs {
		if s, ok := m.(StatusResponse); ok {
			out = append(out, s)
		}
	}
	return out
}

func (r *recordResponder) lastStatus(t *testing.T) StatusResponse {
	t.Helper()
	statuses := r.statuses()
	if len(statuses) == 0 {
		t.Fatal("no status response recorded")
	}
	return statuses[len(statuses)-1]
}

func newTestStore(t *testing.T) *storage.Storage {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "lnbridge-bridge-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := storage.New(&storage.Config{DataDir: tmpDir})
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func quietLog() *logging.Logger {
	return logging.New(&logging.Config{Level: "fatal"})
}

// sendFixture wires a coordinator whose clock sits inside the test
// invoice's validity window, with a matching on-chain contract.
func sendFixture(t *testing.T, ln *fakeLN, chain *fakeChain) (*Coordinator, [32]byte, *storage.Storage) {
	t.Helper()

	now := time.Unix(testInvoiceCreatedAt+30, 0)

	var contractID [32]byte
	contractID[0] = 0xc0

	chain.put(contractID, &htlc.ContractDetails{
		Amount:   helpers.SatsToWei(250_000),
		Hashlock: testInvoiceHash(t),
		Timelock: big.NewInt(now.Add(300 * time.Second).Unix()),
	})

	store := newTestStore(t)
	coord := NewCoordinator(&Config{
		Lightning: ln,
		Chain:     chain,
		Store:     store,
		Policy: Policy{
			MinSats:           2,
			MaxSats:           300_000,
			MinExpiryBuffer:   180 * time.Second,
			MaxRoutingFeeSats: 100,
		},
		Log: quietLog(),
		Now: func() time.Time { return now },
	})
	return coord, contractID, store
}

func TestSendSettles(t *testing.T) {
	ln := &fakeLN{preimage: [32]byte{0x11}}
	chain := newFakeChain()
	coord, contractID, store := sendFixture(t, ln, chain)

	resp := &recordResponder{}
	coord.HandleSend(context.Background(), &SendRequest{
		Kind:       KindInitiation,
		ContractID: helpers.Hash32ToHex(contractID),
		Invoice:    testInvoice,
	}, resp)

	status := resp.lastStatus(t)
	if status.Status != StatusSuccess || status.Message != "swap settled" {
		t.Errorf("status = %+v", status)
	}
	if ln.payCount() != 1 || chain.withdrawCount() != 1 {
		t.Errorf("pay=%d withdraw=%d, want 1/1", ln.payCount(), chain.withdrawCount())
	}

	sw, err := store.GetSwapByContractID(helpers.Hash32ToHex(contractID))
	if err != nil {
		t.Fatalf("GetSwapByContractID() error = %v", err)
	}
	if sw.Phase != storage.PhaseSettled {
		t.Errorf("phase = %s, want settled", sw.Phase)
	}
	if coord.pending.Len() != 0 {
		t.Error("pending set should drain after settlement")
	}
}

func TestSendRejectsHashlockMismatch(t *testing.T) {
	ln := &fakeLN{}
	chain := newFakeChain()
	coord, contractID, store := sendFixture(t, ln, chain)

	// Break the binding between the two legs.
	details, _ := chain.GetContract(context.Background(), contractID)
	details.Hashlock[0] ^= 0xff
	chain.put(contractID, details)

	resp := &recordResponder{}
	coord.HandleSend(context.Background(), &SendRequest{
		Kind:       KindInitiation,
		ContractID: helpers.Hash32ToHex(contractID),
		Invoice:    testInvoice,
	}, resp)

	status := resp.lastStatus(t)
	if status.Status != StatusError || status.Message != "hashlock mismatch" {
		t.Errorf("status = %+v", status)
	}
	if ln.payCount() != 0 {
		t.Errorf("pay attempts = %d, want 0 on rejection", ln.payCount())
	}

	sw, _ := store.GetSwapByContractID(helpers.Hash32ToHex(contractID))
	if sw.Phase != storage.PhaseRejected || sw.Failure != "hashlock mismatch" {
		t.Errorf("swap = %+v", sw)
	}
}

func TestSendRejectsUnknownContract(t *testing.T) {
	ln := &fakeLN{}
	chain := newFakeChain()
	coord, _, _ := sendFixture(t, ln, chain)

	var missing [32]byte
	missing[0] = 0xee

	resp := &recordResponder{}
	coord.HandleSend(context.Background(), &SendRequest{
		Kind:       KindInitiation,
		ContractID: helpers.Hash32ToHex(missing),
		Invoice:    testInvoice,
	}, resp)

	if status := resp.lastStatus(t); status.Status != StatusError {
		t.Errorf("status = %+v", status)
	}
	if ln.payCount() != 0 {
		t.Error("unknown contract must not trigger a payment")
	}
}

func TestSendConcurrentDuplicateSinglePayment(t *testing.T) {
	gate := make(chan struct{})
	ln := &fakeLN{preimage: [32]byte{0x11}, payGate: gate}
	chain := newFakeChain()
	coord, contractID, _ := sendFixture(t, ln, chain)

	req := &SendRequest{
		Kind:       KindInitiation,
		ContractID: helpers.Hash32ToHex(contractID),
		Invoice:    testInvoice,
	}

	first := &recordResponder{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		coord.HandleSend(context.Background(), req, first)
	}()

	// Wait until the first request is committed inside PayInvoice.
	deadline := time.After(5 * time.Second)
	for ln.payCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("first request never reached payment")
		case <-time.After(time.Millisecond):
		}
	}

	second := &recordResponder{}
	coord.HandleSend(context.Background(), req, second)

	status := second.lastStatus(t)
	if status.Status != StatusError || status.Message != "contract already being processed" {
		t.Errorf("duplicate status = %+v", status)
	}

	close(gate)
	<-done

	if status := first.lastStatus(t); status.Status != StatusSuccess {
		t.Errorf("first status = %+v", status)
	}
	if ln.payCount() != 1 {
		t.Errorf("payments = %d, want exactly 1", ln.payCount())
	}
}

func TestSendStuckThenRecovered(t *testing.T) {
	ln := &fakeLN{preimage: [32]byte{0x11}}
	chain := newFakeChain()
	chain.withdrawErrs = []error{errors.New("transaction reverted")}
	coord, contractID, store := sendFixture(t, ln, chain)
	contractHex := helpers.Hash32ToHex(contractID)

	resp := &recordResponder{}
	coord.HandleSend(context.Background(), &SendRequest{
		Kind:       KindInitiation,
		ContractID: contractHex,
		Invoice:    testInvoice,
	}, resp)

	// The client is told the truth: invoice paid, claim pending.
	status := resp.lastStatus(t)
	if status.Status != StatusSuccess || status.Message != "invoice paid; contract claim pending" {
		t.Errorf("status = %+v", status)
	}

	sw, _ := store.GetSwapByContractID(contractHex)
	if sw.Phase != storage.PhaseStuck {
		t.Fatalf("phase = %s, want stuck", sw.Phase)
	}
	cached, _ := store.ListCachedPayments()
	if len(cached) != 1 || cached[0].ContractID != contractHex {
		t.Fatalf("cached = %+v", cached)
	}

	// Next sweep succeeds and settles the swap with no second payment.
	worker := NewRecoveryWorker(chain, store, quietLog(), time.Second, time.Hour)
	worker.Sweep(context.Background())

	cached, _ = store.ListCachedPayments()
	if len(cached) != 0 {
		t.Errorf("cache not drained: %+v", cached)
	}
	sw, _ = store.GetSwapByContractID(contractHex)
	if sw.Phase != storage.PhaseSettled {
		t.Errorf("phase = %s, want settled", sw.Phase)
	}
	if ln.payCount() != 1 {
		t.Errorf("payments = %d, want exactly 1", ln.payCount())
	}
	if chain.withdrawCount() != 2 {
		t.Errorf("withdraw attempts = %d, want 2", chain.withdrawCount())
	}
}

func TestRecoverySweepKeepsFailingEntries(t *testing.T) {
	chain := newFakeChain()
	chain.withdrawErrs = []error{errors.New("still failing")}
	store := newTestStore(t)

	var contractID [32]byte
	contractID[0] = 0xc1
	contractHex := helpers.Hash32ToHex(contractID)
	chain.put(contractID, &htlc.ContractDetails{Amount: big.NewInt(1)})

	secret := helpers.Hash32ToHex([32]byte{0x22})
	if err := store.CacheFailedWithdrawal(contractHex, secret); err != nil {
		t.Fatalf("CacheFailedWithdrawal() error = %v", err)
	}

	worker := NewRecoveryWorker(chain, store, quietLog(), time.Second, time.Hour)
	worker.Sweep(context.Background())

	cached, _ := store.ListCachedPayments()
	if len(cached) != 1 {
		t.Fatal("failing entry must never be dropped")
	}
	if cached[0].Attempts != 1 || cached[0].LastError != "still failing" {
		t.Errorf("entry = %+v", cached[0])
	}

	// Second sweep succeeds and drains it.
	worker.Sweep(context.Background())
	cached, _ = store.ListCachedPayments()
	if len(cached) != 0 {
		t.Error("recovered entry should be removed")
	}
}

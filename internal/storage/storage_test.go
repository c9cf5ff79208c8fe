package storage

import (
	"errors"
	"os"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "lnbridge-storage-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	s, err := New(&Config{DataDir: tmpDir})
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSwapLifecycle(t *testing.T) {
	s := newTestStorage(t)

	sw := &Swap{
		ID:          "swap-1",
		Direction:   DirectionSend,
		Phase:       PhaseValidating,
		PaymentHash: "ab01",
		AmountSats:  30,
		ExpiresAt:   time.Now().Add(10 * time.Minute),
	}
	if err := s.CreateSwap(sw); err != nil {
		t.Fatalf("CreateSwap() error = %v", err)
	}

	if err := s.CreateSwap(sw); !errors.Is(err, ErrSwapAlreadyExists) {
		t.Errorf("duplicate CreateSwap error = %v, want ErrSwapAlreadyExists", err)
	}

	contractExpiry := time.Unix(time.Now().Add(5*time.Minute).Unix(), 0)
	if err := s.SetSwapContractID("swap-1", "cd02", contractExpiry); err != nil {
		t.Fatalf("SetSwapContractID() error = %v", err)
	}
	if err := s.UpdateSwapPhase("swap-1", PhasePaying); err != nil {
		t.Fatalf("UpdateSwapPhase() error = %v", err)
	}

	got, err := s.GetSwapByContractID("cd02")
	if err != nil {
		t.Fatalf("GetSwapByContractID() error = %v", err)
	}
	if got.ID != "swap-1" || got.Phase != PhasePaying {
		t.Errorf("got id=%s phase=%s", got.ID, got.Phase)
	}
	if !got.ExpiresAt.Equal(contractExpiry) {
		t.Errorf("expires_at = %v, want %v", got.ExpiresAt, contractExpiry)
	}
	if got.Terminal() {
		t.Error("paying swap should not be terminal")
	}
	if got.CompletedAt != nil {
		t.Error("open swap should have no completion time")
	}

	if err := s.UpdateSwapPhase("swap-1", PhaseSettled); err != nil {
		t.Fatalf("UpdateSwapPhase() error = %v", err)
	}
	got, _ = s.GetSwap("swap-1")
	if !got.Terminal() || got.CompletedAt == nil {
		t.Error("settled swap should be terminal with completion time")
	}
}

func TestFailSwapRecordsReason(t *testing.T) {
	s := newTestStorage(t)

	sw := &Swap{ID: "swap-2", Direction: DirectionSend, Phase: PhaseValidating}
	if err := s.CreateSwap(sw); err != nil {
		t.Fatalf("CreateSwap() error = %v", err)
	}

	if err := s.FailSwap("swap-2", PhaseRejected, "hashlock mismatch"); err != nil {
		t.Fatalf("FailSwap() error = %v", err)
	}

	got, err := s.GetSwap("swap-2")
	if err != nil {
		t.Fatalf("GetSwap() error = %v", err)
	}
	if got.Phase != PhaseRejected || got.Failure != "hashlock mismatch" {
		t.Errorf("got phase=%s failure=%q", got.Phase, got.Failure)
	}
}

func TestListOpenSwaps(t *testing.T) {
	s := newTestStorage(t)

	for _, sw := range []*Swap{
		{ID: "a", Direction: DirectionSend, Phase: PhasePaying},
		{ID: "b", Direction: DirectionReceive, Phase: PhaseContractOpen},
		{ID: "c", Direction: DirectionSend, Phase: PhaseSettled},
		{ID: "d", Direction: DirectionSend, Phase: PhaseStuck},
	} {
		if err := s.CreateSwap(sw); err != nil {
			t.Fatalf("CreateSwap(%s) error = %v", sw.ID, err)
		}
	}

	open, err := s.ListOpenSwaps()
	if err != nil {
		t.Fatalf("ListOpenSwaps() error = %v", err)
	}
	// Stuck swaps stay open: money is still recoverable.
	if len(open) != 3 {
		t.Errorf("open swaps = %d, want 3", len(open))
	}
}

func TestGetSwapNotFound(t *testing.T) {
	s := newTestStorage(t)

	if _, err := s.GetSwap("missing"); !errors.Is(err, ErrSwapNotFound) {
		t.Errorf("error = %v, want ErrSwapNotFound", err)
	}
	if err := s.UpdateSwapPhase("missing", PhaseSettled); !errors.Is(err, ErrSwapNotFound) {
		t.Errorf("error = %v, want ErrSwapNotFound", err)
	}
}

func TestCachedPayments(t *testing.T) {
	s := newTestStorage(t)

	if err := s.CacheFailedWithdrawal("c1", "secret1"); err != nil {
		t.Fatalf("CacheFailedWithdrawal() error = %v", err)
	}

	// Re-caching the same contract keeps the original secret.
	if err := s.CacheFailedWithdrawal("c1", "other"); err != nil {
		t.Fatalf("CacheFailedWithdrawal() duplicate error = %v", err)
	}

	payments, err := s.ListCachedPayments()
	if err != nil {
		t.Fatalf("ListCachedPayments() error = %v", err)
	}
	if len(payments) != 1 || payments[0].Secret != "secret1" {
		t.Fatalf("payments = %+v", payments)
	}
	if payments[0].Attempts != 0 {
		t.Errorf("fresh entry attempts = %d", payments[0].Attempts)
	}

	if err := s.MarkWithdrawalAttempt("c1", errors.New("rpc timeout")); err != nil {
		t.Fatalf("MarkWithdrawalAttempt() error = %v", err)
	}
	payments, _ = s.ListCachedPayments()
	if payments[0].Attempts != 1 || payments[0].LastTried == nil {
		t.Errorf("attempt not recorded: %+v", payments[0])
	}
	if payments[0].LastError != "rpc timeout" {
		t.Errorf("LastError = %q", payments[0].LastError)
	}

	if err := s.DeleteCachedPayment("c1"); err != nil {
		t.Fatalf("DeleteCachedPayment() error = %v", err)
	}
	if err := s.DeleteCachedPayment("c1"); !errors.Is(err, ErrCachedPaymentNotFound) {
		t.Errorf("error = %v, want ErrCachedPaymentNotFound", err)
	}

	payments, _ = s.ListCachedPayments()
	if len(payments) != 0 {
		t.Errorf("payments after delete = %d", len(payments))
	}
}

func TestSettings(t *testing.T) {
	s := newTestStorage(t)

	if v, err := s.GetSetting("node_uuid"); err != nil || v != "" {
		t.Errorf("unset setting = (%q, %v)", v, err)
	}

	if err := s.SetSetting("node_uuid", "abc"); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}
	if err := s.SetSetting("node_uuid", "def"); err != nil {
		t.Fatalf("SetSetting() overwrite error = %v", err)
	}

	v, err := s.GetSetting("node_uuid")
	if err != nil {
		t.Fatalf("GetSetting() error = %v", err)
	}
	if v != "def" {
		t.Errorf("setting = %q, want def", v)
	}
}

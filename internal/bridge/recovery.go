package bridge

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lnevm/bridge/internal/storage"
	"github.com/lnevm/bridge/pkg/helpers"
	"github.com/lnevm/bridge/pkg/logging"
)

// RecoveryWorker retries on-chain withdrawals whose Lightning leg already
// committed. Entries are retried verbatim each sweep and removed only after
// a confirmed claim; a lingering entry is a standing financial liability
// and is logged loudly once it passes the alert horizon.
type RecoveryWorker struct {
	chain      ContractClient
	store      *storage.Storage
	log        *logging.Logger
	interval   time.Duration
	alertAfter time.Duration
	now        func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRecoveryWorker creates a recovery worker.
func NewRecoveryWorker(chain ContractClient, store *storage.Storage, log *logging.Logger, interval, alertAfter time.Duration) *RecoveryWorker {
	return &RecoveryWorker{
		chain:      chain,
		store:      store,
		log:        log,
		interval:   interval,
		alertAfter: alertAfter,
		now:        time.Now,
	}
}

// Start launches the periodic sweep.
func (w *RecoveryWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.Sweep(ctx)
			}
		}
	}()
}

// Stop halts the sweep loop and waits for an in-flight sweep to finish.
func (w *RecoveryWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

// Sweep retries every cached withdrawal once, serially. One attempt in
// flight per entry; double-submitting a claim for the same contract wastes
// gas at best.
func (w *RecoveryWorker) Sweep(ctx context.Context) {
	payments, err := w.store.ListCachedPayments()
	if err != nil {
		w.log.Error("failed to list cached payments", "error", err)
		return
	}

	for _, p := range payments {
		if ctx.Err() != nil {
			return
		}
		w.retry(ctx, p)
	}
}

func (w *RecoveryWorker) retry(ctx context.Context, p *storage.CachedPayment) {
	log := w.log.With("contract", p.ContractID, "attempts", p.Attempts)

	contractID, err := helpers.HexToHash32(p.ContractID)
	if err != nil {
		// Unparseable entries still represent money; keep them visible.
		log.Error("cached payment has invalid contract id", "error", err)
		return
	}
	secret, err := helpers.HexToHash32(p.Secret)
	if err != nil {
		log.Error("cached payment has invalid secret", "error", err)
		return
	}

	txHash, err := w.chain.Withdraw(ctx, contractID, secret)
	if err != nil {
		if markErr := w.store.MarkWithdrawalAttempt(p.ContractID, err); markErr != nil {
			log.Error("failed to record attempt", "error", markErr)
		}
		if age := p.Age(w.now()); age > w.alertAfter {
			log.Error("withdrawal still failing past alert horizon", "age", age, "error", err)
		} else {
			log.Warn("withdrawal retry failed", "error", err)
		}
		return
	}

	log.Info("recovered stuck withdrawal", "tx", txHash)

	if err := w.store.DeleteCachedPayment(p.ContractID); err != nil {
		log.Error("failed to remove recovered payment", "error", err)
	}

	sw, err := w.store.GetSwapByContractID(p.ContractID)
	if err != nil {
		if !errors.Is(err, storage.ErrSwapNotFound) {
			log.Error("failed to look up swap", "error", err)
		}
		return
	}
	if err := w.store.UpdateSwapPhase(sw.ID, storage.PhaseSettled); err != nil {
		log.Error("failed to settle swap", "swap", sw.ID, "error", err)
	}
}

// Package storage - swap record operations.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Swap errors
var (
	ErrSwapNotFound      = errors.New("swap not found")
	ErrSwapAlreadyExists = errors.New("swap already exists")
)

// Direction of a swap relative to the settlement ledger.
type Direction string

const (
	// DirectionSend means ledger funds in, Lightning payment out.
	DirectionSend Direction = "send"

	// DirectionReceive means Lightning payment in, ledger funds out.
	DirectionReceive Direction = "receive"
)

// Send-side phases.
const (
	PhaseValidating  = "validating"
	PhasePaying      = "paying"
	PhaseWithdrawing = "withdrawing"
	PhaseSettled     = "settled"
	PhaseRejected    = "rejected"
	PhaseStuck       = "stuck"
)

// Receive-side phases.
const (
	PhaseAwaitingFee  = "awaiting_fee"
	PhaseAwaitingHold = "awaiting_hold"
	PhaseContractOpen = "contract_open"
	PhaseCanceled     = "canceled"
)

// Swap is one swap attempt in either direction.
type Swap struct {
	ID          string
	Direction   Direction
	Phase       string
	ContractID  string // hex, empty until known
	PaymentHash string // hex
	AmountSats  int64
	ExpiresAt   time.Time
	Failure     string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// Terminal reports whether the swap has reached a final phase.
func (sw *Swap) Terminal() bool {
	switch sw.Phase {
	case PhaseSettled, PhaseRejected, PhaseCanceled:
		return true
	}
	return false
}

// CreateSwap inserts a new swap record.
func (s *Storage) CreateSwap(sw *Swap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if sw.CreatedAt.IsZero() {
		sw.CreatedAt = now
	}
	sw.UpdatedAt = now

	var expiresAt *int64
	if !sw.ExpiresAt.IsZero() {
		ts := sw.ExpiresAt.Unix()
		expiresAt = &ts
	}

	_, err := s.db.Exec(`
		INSERT INTO swaps (
			id, direction, phase, contract_id, payment_hash,
			amount_sats, expires_at, failure_reason, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sw.ID, sw.Direction, sw.Phase, nullable(sw.ContractID), nullable(sw.PaymentHash),
		sw.AmountSats, expiresAt, nullable(sw.Failure), sw.CreatedAt.Unix(), sw.UpdatedAt.Unix(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrSwapAlreadyExists
		}
		return fmt.Errorf("failed to create swap: %w", err)
	}
	return nil
}

// GetSwap retrieves a swap by ID.
func (s *Storage) GetSwap(id string) (*Swap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanSwap(s.db.QueryRow(swapSelect+" WHERE id = ?", id))
}

// GetSwapByContractID retrieves a swap by its on-chain contract id.
func (s *Storage) GetSwapByContractID(contractID string) (*Swap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanSwap(s.db.QueryRow(swapSelect+" WHERE contract_id = ?", contractID))
}

// UpdateSwapPhase moves a swap to a new phase. Terminal phases also stamp
// completed_at.
func (s *Storage) UpdateSwapPhase(id, phase string) error {
	return s.updatePhase(id, phase, "")
}

// FailSwap moves a swap to a terminal phase with a failure reason.
func (s *Storage) FailSwap(id, phase, reason string) error {
	return s.updatePhase(id, phase, reason)
}

func (s *Storage) updatePhase(id, phase, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	var completedAt *int64
	switch phase {
	case PhaseSettled, PhaseRejected, PhaseCanceled:
		completedAt = &now
	}

	result, err := s.db.Exec(`
		UPDATE swaps SET phase = ?, failure_reason = COALESCE(?, failure_reason),
			updated_at = ?, completed_at = COALESCE(?, completed_at)
		WHERE id = ?
	`, phase, nullable(reason), now, completedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update swap phase: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrSwapNotFound
	}
	return nil
}

// SetSwapContractID records the contract id and its expiry once the ledger
// assigns them. The expiry is what a restarted daemon resumes from.
func (s *Storage) SetSwapContractID(id, contractID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiry *int64
	if !expiresAt.IsZero() {
		ts := expiresAt.Unix()
		expiry = &ts
	}

	result, err := s.db.Exec(`
		UPDATE swaps SET contract_id = ?, expires_at = ?, updated_at = ? WHERE id = ?
	`, contractID, expiry, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to set swap contract id: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrSwapNotFound
	}
	return nil
}

// ListOpenSwaps returns all swaps not yet in a terminal phase.
func (s *Storage) ListOpenSwaps() ([]*Swap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(swapSelect + `
		WHERE phase NOT IN (?, ?, ?) ORDER BY created_at
	`, PhaseSettled, PhaseRejected, PhaseCanceled)
	if err != nil {
		return nil, fmt.Errorf("failed to list open swaps: %w", err)
	}
	defer rows.Close()

	var swaps []*Swap
	for rows.Next() {
		sw, err := s.scanSwap(rows)
		if err != nil {
			return nil, err
		}
		swaps = append(swaps, sw)
	}
	return swaps, rows.Err()
}

const swapSelect = `
	SELECT id, direction, phase, contract_id, payment_hash,
		   amount_sats, expires_at, failure_reason,
		   created_at, updated_at, completed_at
	FROM swaps`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *Storage) scanSwap(row rowScanner) (*Swap, error) {
	var sw Swap
	var contractID, paymentHash, failure sql.NullString
	var expiresAt, completedAt sql.NullInt64
	var createdAt, updatedAt int64

	err := row.Scan(
		&sw.ID, &sw.Direction, &sw.Phase, &contractID, &paymentHash,
		&sw.AmountSats, &expiresAt, &failure,
		&createdAt, &updatedAt, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSwapNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan swap: %w", err)
	}

	sw.ContractID = contractID.String
	sw.PaymentHash = paymentHash.String
	sw.Failure = failure.String
	if expiresAt.Valid {
		sw.ExpiresAt = time.Unix(expiresAt.Int64, 0)
	}
	sw.CreatedAt = time.Unix(createdAt, 0)
	sw.UpdatedAt = time.Unix(updatedAt, 0)
	if completedAt.Valid {
		t := time.Unix(completedAt.Int64, 0)
		sw.CompletedAt = &t
	}
	return &sw, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// isUniqueConstraintError checks if an error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

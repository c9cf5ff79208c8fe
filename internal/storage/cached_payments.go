// Package storage - cached payment operations for the withdrawal recovery loop.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Cached payment errors
var (
	ErrCachedPaymentNotFound = errors.New("cached payment not found")
)

// CachedPayment is an invoice the node already paid whose on-chain
// withdrawal has not yet succeeded. The secret is the payment preimage;
// losing a row here means losing money, so rows are never aged out.
type CachedPayment struct {
	ContractID string // hex
	Secret     string // hex preimage
	CreatedAt  time.Time
	Attempts   int
	LastTried  *time.Time
	LastError  string
}

// Age returns how long the payment has been awaiting its withdrawal.
func (p *CachedPayment) Age(now time.Time) time.Duration {
	return now.Sub(p.CreatedAt)
}

// CacheFailedWithdrawal records a paid-but-unclaimed contract. Inserting the
// same contract twice is a no-op; the first secret stands.
func (s *Storage) CacheFailedWithdrawal(contractID, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO cached_payments (contract_id, secret, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(contract_id) DO NOTHING
	`, contractID, secret, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to cache payment: %w", err)
	}
	return nil
}

// ListCachedPayments returns all pending withdrawals, oldest first.
func (s *Storage) ListCachedPayments() ([]*CachedPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT contract_id, secret, created_at, attempts, last_attempt_at, last_error
		FROM cached_payments ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached payments: %w", err)
	}
	defer rows.Close()

	var payments []*CachedPayment
	for rows.Next() {
		var p CachedPayment
		var createdAt int64
		var lastTried sql.NullInt64
		var lastError sql.NullString

		if err := rows.Scan(&p.ContractID, &p.Secret, &createdAt, &p.Attempts, &lastTried, &lastError); err != nil {
			return nil, fmt.Errorf("failed to scan cached payment: %w", err)
		}

		p.CreatedAt = time.Unix(createdAt, 0)
		if lastTried.Valid {
			t := time.Unix(lastTried.Int64, 0)
			p.LastTried = &t
		}
		p.LastError = lastError.String
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

// MarkWithdrawalAttempt bumps the attempt counter after a failed retry.
func (s *Storage) MarkWithdrawalAttempt(contractID string, attemptErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lastError *string
	if attemptErr != nil {
		msg := attemptErr.Error()
		lastError = &msg
	}

	result, err := s.db.Exec(`
		UPDATE cached_payments
		SET attempts = attempts + 1, last_attempt_at = ?, last_error = ?
		WHERE contract_id = ?
	`, time.Now().Unix(), lastError, contractID)
	if err != nil {
		return fmt.Errorf("failed to mark withdrawal attempt: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrCachedPaymentNotFound
	}
	return nil
}

// DeleteCachedPayment removes an entry after its withdrawal confirmed.
func (s *Storage) DeleteCachedPayment(contractID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("DELETE FROM cached_payments WHERE contract_id = ?", contractID)
	if err != nil {
		return fmt.Errorf("failed to delete cached payment: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrCachedPaymentNotFound
	}
	return nil
}

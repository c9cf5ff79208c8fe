package htlc

import (
	"crypto/sha256"
	"testing"
	"time"

	"math/big"
)

func TestGenerateSecret(t *testing.T) {
	secret, hash, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}

	if secret == [32]byte{} {
		t.Error("secret should not be all zeros")
	}
	if hash != sha256.Sum256(secret[:]) {
		t.Error("hash does not match sha256 of secret")
	}

	secret2, _, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}
	if secret == secret2 {
		t.Error("two generated secrets should differ")
	}
}

func TestVerifyPreimage(t *testing.T) {
	secret, hash, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}

	if !VerifyPreimage(secret, hash) {
		t.Error("preimage should verify against its own hash")
	}

	var wrong [32]byte
	wrong[0] = 0x01
	if VerifyPreimage(wrong, hash) {
		t.Error("wrong preimage should not verify")
	}
	if HashPreimage(secret) != hash {
		t.Error("HashPreimage disagrees with GenerateSecret")
	}
}

func TestContractDetails(t *testing.T) {
	d := &ContractDetails{
		Amount:   big.NewInt(1),
		Timelock: big.NewInt(time.Now().Add(time.Hour).Unix()),
	}

	if d.IsSettled() {
		t.Error("fresh contract should not be settled")
	}
	if d.HasPreimage() {
		t.Error("zero preimage should read as not revealed")
	}

	d.Withdrawn = true
	d.Preimage[0] = 0xab
	if !d.IsSettled() {
		t.Error("withdrawn contract should be settled")
	}
	if !d.HasPreimage() {
		t.Error("non-zero preimage should read as revealed")
	}

	if got := d.ExpiresAt().Unix(); got != d.Timelock.Int64() {
		t.Errorf("ExpiresAt = %d, want %d", got, d.Timelock.Int64())
	}
	if !(&ContractDetails{}).ExpiresAt().IsZero() {
		t.Error("nil timelock should yield zero time")
	}
}

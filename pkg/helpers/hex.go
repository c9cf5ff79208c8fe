// Package helpers provides small utilities shared across the bridge.
package helpers

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexToHash32 parses a hex string (with or without 0x prefix) into a
// 32-byte array. Contract ids, hashlocks and preimages are all bytes32
// on the ledger side.
func HexToHash32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return out, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != 32 {
		return out, fmt.Errorf("expected 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}

// Hash32ToHex encodes a 32-byte array as a 0x-prefixed hex string.
func Hash32ToHex(h [32]byte) string {
	return "0x" + hex.EncodeToString(h[:])
}

// HexToBytes converts a hex string (with or without 0x prefix) to bytes.
func HexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

// BytesToHex converts bytes to a 0x-prefixed hex string.
func BytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

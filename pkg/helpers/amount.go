package helpers

import "math/big"

// WeiPerSat is the wei value of one satoshi at the bridge's fixed
// 1 sat = 10 gwei peg.
const WeiPerSat = 10_000_000_000

var weiPerSat = big.NewInt(WeiPerSat)

// SatsToWei converts a satoshi amount to its wei equivalent.
func SatsToWei(sats int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(sats), weiPerSat)
}

// WeiToSats converts a wei amount to satoshis, truncating any remainder
// smaller than one satoshi.
func WeiToSats(wei *big.Int) int64 {
	if wei == nil || wei.Sign() <= 0 {
		return 0
	}
	return new(big.Int).Div(wei, weiPerSat).Int64()
}

// IsZeroBytes reports whether every byte in the slice is zero. The ledger
// uses an all-zero bytes32 as the "no preimage yet" sentinel.
func IsZeroBytes(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

package hash

import (
	"math/big"

	ecommon "github.com/ethereum/go-ethereum/common"
	ecrypto "github.com/ethereum/go-ethereum/crypto"
)

type Hash256 = ecommon.Hash

// Lengths of hashes in bytes.
const (
	// HashLength is the expected length of the hash
	HashLength = ecommon.HashLength
	// Hash256Size is 32 bytes
	Hash256Size = ecommon.HashLength
)

// BigToHash sets byte representation of b to hash.
// If b is larger than len(h), b will be cropped from the left.
func BigToHash(b *big.Int) Hash256 {
	return Hash256(ecommon.BigToHash(b))
}

// HexToHash sets byte representation of s to hash.
// If b is larger than len(h), b will be cropped from the left.
func HexToHash(s string) Hash256 {
	return Hash256(ecommon.HexToHash(s))
}

// BytesToHash sets byte representation of b to hash.
// If b is larger than len(h), b will be cropped from the left.
func BytesToHash(b []byte) Hash256 {
	return Hash256(ecommon.BytesToHash(b))
}

// Hash calculates and returns the Hash hash of the input data.
func Hash(data ...[]byte) Hash256 {
	return Hash256(ecrypto.Keccak256Hash(data...))
}

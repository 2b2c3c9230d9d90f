package common

import (
	"crypto/ecdsa"

	ecrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Ecrecover returns the uncompressed public key that created the given signature.
func Ecrecover(hash, sig []byte) ([]byte, error) {
	bs, err := ecrypto.Ecrecover(hash, sig)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return bs, nil
}

// RecoverAddress recovers the signing address from the r, s, v signature over the hash
func RecoverAddress(hash []byte, sig Signature) (Address, error) {
	if len(sig) < MinSignatureSize {
		return ZeroAddr, errors.WithStack(ErrInvalidSignatureFormat)
	}
	pub, err := ecrypto.SigToPub(hash, sig[:MinSignatureSize])
	if err != nil {
		return ZeroAddr, errors.WithStack(err)
	}
	return ecrypto.PubkeyToAddress(*pub), nil
}

// VerifySignature checks that the given public key created signature over hash.
// The public key should be in compressed (33 bytes) or uncompressed (65 bytes) format.
// The signature should have the 64 byte [R || S] format.
func VerifySignature(pubkey, hash, signature []byte) bool {
	return ecrypto.VerifySignature(pubkey, hash, signature)
}

// GenerateKey generate a key
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ecrypto.GenerateKey()
}

// Sign calculates an ECDSA signature over the hash.
//
// The produced signature is in the [R || S || V] format where V is 0 or 1.
func Sign(hash []byte, prv *ecdsa.PrivateKey) (Signature, error) {
	sig, err := ecrypto.Sign(hash, prv)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return Signature(sig), nil
}

// AddressFromPubkey returns the address of the private key's public key
func AddressFromPubkey(prv *ecdsa.PrivateKey) Address {
	return ecrypto.PubkeyToAddress(prv.PublicKey)
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	return ecrypto.Keccak256(data...)
}

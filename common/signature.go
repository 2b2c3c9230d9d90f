package common

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// MinSignatureSize is the r, s, v form of a signature
const MinSignatureSize = 65

// CompactSignatureSize is the r, vs packed form of a signature
const CompactSignatureSize = 64

// Signature is the []byte with methods
type Signature []byte

// MarshalJSON is a marshaler function
func (sig Signature) MarshalJSON() ([]byte, error) {
	return []byte(`"` + sig.String() + `"`), nil
}

// UnmarshalJSON is a unmarshaler function
func (sig *Signature) UnmarshalJSON(bs []byte) error {
	if len(bs) < 3 {
		return errors.WithStack(ErrInvalidSignatureFormat)
	}
	if bs[0] != '"' || bs[len(bs)-1] != '"' {
		return errors.WithStack(ErrInvalidSignatureFormat)
	}
	v, err := ParseSignature(string(bs[1 : len(bs)-1]))
	if err != nil {
		return err
	}
	*sig = append(*sig, v...)
	return nil
}

// String returns the hex string of the signature
func (sig Signature) String() string {
	return hex.EncodeToString(sig[:])
}

// Clone returns the clonend value of it
func (sig Signature) Clone() Signature {
	return append(Signature{}, sig...)
}

// ParseSignature parse the signature from the string
func ParseSignature(str string) (Signature, error) {
	bs, err := hex.DecodeString(str)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(bs) < CompactSignatureSize {
		return nil, errors.WithStack(ErrInvalidSignatureFormat)
	}
	return Signature(bs), nil
}

package drop

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/mintdrop/common"
	"github.com/meverselabs/mintdrop/common/bin"
	"github.com/meverselabs/mintdrop/core/types"
)

// SetKey is an address-like key an access set can hold
type SetKey interface {
	Bytes() []byte
}

// accessSet is an enumerable membership set stored in contract data. Adds
// append to a fixed-width enumeration blob; removal swaps with the last entry
// and truncates, so both operations stay O(1) while enumeration order is not
// preserved across removals. A stored 1-based position doubles as the
// membership test.
type accessSet[T SetKey] struct {
	tag   byte
	width int
	parse func([]byte) T
}

func newAddressSet(tag byte) *accessSet[common.Address] {
	return &accessSet[common.Address]{
		tag:   tag,
		width: common.AddressLength,
		parse: common.BytesToAddress,
	}
}

func (s *accessSet[T]) indexKey(k T) []byte {
	bs := make([]byte, 2+s.width)
	bs[0] = s.tag
	bs[1] = 0x01
	copy(bs[2:], k.Bytes())
	return bs
}

func (s *accessSet[T]) listKey() []byte {
	return []byte{s.tag, 0x02}
}

func (s *accessSet[T]) position(cc types.ContractLoader, k T) (int, bool) {
	bs := cc.ContractData(s.indexKey(k))
	if len(bs) == 0 {
		return 0, false
	}
	return int(bin.Uint64(bs)), true
}

// Contains reports membership in O(1)
func (s *accessSet[T]) Contains(cc types.ContractLoader, k T) bool {
	_, ok := s.position(cc, k)
	return ok
}

// Items returns the enumeration in storage order
func (s *accessSet[T]) Items(cc types.ContractLoader) []T {
	bs := cc.ContractData(s.listKey())
	items := make([]T, 0, len(bs)/s.width)
	for i := 0; i+s.width <= len(bs); i += s.width {
		items = append(items, s.parse(bs[i:i+s.width]))
	}
	return items
}

// Add appends the key to the enumeration
func (s *accessSet[T]) Add(cc *types.ContractContext, k T) error {
	if _, ok := s.position(cc, k); ok {
		return errors.WithStack(ErrDuplicateEntry)
	}
	old := cc.ContractData(s.listKey())
	list := make([]byte, len(old)+s.width)
	copy(list, old)
	copy(list[len(old):], k.Bytes())
	cc.SetContractData(s.listKey(), list)
	cc.SetContractData(s.indexKey(k), bin.Uint64Bytes(uint64(len(list)/s.width)))
	return nil
}

// Remove swaps the key with the last enumeration entry and truncates
func (s *accessSet[T]) Remove(cc *types.ContractContext, k T) error {
	pos, ok := s.position(cc, k)
	if !ok {
		return errors.WithStack(ErrEntryNotPresent)
	}
	old := cc.ContractData(s.listKey())
	last := len(old) - s.width
	target := (pos - 1) * s.width
	list := make([]byte, len(old))
	copy(list, old)
	if target != last {
		copy(list[target:target+s.width], old[last:])
		moved := s.parse(old[last:])
		cc.SetContractData(s.indexKey(moved), bin.Uint64Bytes(uint64(pos)))
	}
	cc.SetContractData(s.listKey(), list[:last])
	cc.SetContractData(s.indexKey(k), nil)
	return nil
}

// Set adds or removes depending on the flag, the way token minter and
// gateway flags are toggled
func (s *accessSet[T]) Set(cc *types.ContractContext, k T, is bool) error {
	if is {
		return s.Add(cc, k)
	}
	return s.Remove(cc, k)
}

package types

import (
	"math/big"

	"github.com/meverselabs/mintdrop/common"
)

// ContractLoader defines functions that loads state data from the target chain
type ContractLoader interface {
	ChainID() *big.Int
	TargetHeight() uint32
	LastTimestamp() uint64
	ContractData(name []byte) []byte
	AccountData(addr common.Address, name []byte) []byte
}

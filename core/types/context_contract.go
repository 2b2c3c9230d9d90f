package types

import (
	"math/big"

	"github.com/meverselabs/mintdrop/common"
)

// ExecFunc runs a method of the contract deployed at the address
type ExecFunc = func(Cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error)

// ContractContext is an context for the contract
type ContractContext struct {
	cont common.Address
	from common.Address
	ctx  *Context
	Exec ExecFunc
}

// NewContractContext returns a ContractContext bound to the contract address
func NewContractContext(ctx *Context, from common.Address, cont common.Address, Exec ExecFunc) *ContractContext {
	return &ContractContext{
		cont: cont,
		from: from,
		ctx:  ctx,
		Exec: Exec,
	}
}

// ChainID returns the id of the chain
func (cc *ContractContext) ChainID() *big.Int {
	return cc.ctx.ChainID()
}

// TargetHeight returns the recorded target height when ContractContext generation
func (cc *ContractContext) TargetHeight() uint32 {
	return cc.ctx.TargetHeight()
}

// LastTimestamp returns the recorded prev timestamp when ContractContext generation
func (cc *ContractContext) LastTimestamp() uint64 {
	return cc.ctx.LastTimestamp()
}

// From returns current signer address
func (cc *ContractContext) From() common.Address {
	return cc.from
}

// ContractData returns the contract data from the top snapshot
func (cc *ContractContext) ContractData(name []byte) []byte {
	return cc.ctx.Data(cc.cont, common.Address{}, name)
}

// SetContractData inserts the contract data to the top snapshot
func (cc *ContractContext) SetContractData(name []byte, value []byte) {
	cc.ctx.SetData(cc.cont, common.Address{}, name, value)
}

// AccountData returns the account data from the top snapshot
func (cc *ContractContext) AccountData(addr common.Address, name []byte) []byte {
	return cc.ctx.Data(cc.cont, addr, name)
}

// SetAccountData inserts the account data to the top snapshot
func (cc *ContractContext) SetAccountData(addr common.Address, name []byte, value []byte) {
	cc.ctx.SetData(cc.cont, addr, name, value)
}

// EmitEvent creates the event to the top snapshot
func (cc *ContractContext) EmitEvent(e *Event) error {
	return cc.ctx.EmitEvent(e)
}

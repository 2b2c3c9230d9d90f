package drop

import (
	"github.com/meverselabs/mintdrop/common"
	"github.com/meverselabs/mintdrop/common/hash"
	"github.com/meverselabs/mintdrop/core/types"
)

func (cont *DropContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *DropContract
}

//////////////////////////////////////////////////
// Order Functions
//////////////////////////////////////////////////

func (f *front) GenerateOrder(cc *types.ContractContext, fulfiller common.Address, offer []SpentItem, context []byte) ([]ReceivedItem, error) {
	return f.cont.GenerateOrder(cc, fulfiller, offer, context)
}

func (f *front) PreviewOrder(cc *types.ContractContext, fulfiller common.Address, offer []SpentItem, context []byte) ([]ReceivedItem, error) {
	return f.cont.PreviewOrder(cc, fulfiller, offer, context)
}

//////////////////////////////////////////////////
// Public Writer only master Functions
//////////////////////////////////////////////////

func (f *front) SetPublicStage(cc *types.ContractContext, stage *StageConfig) error {
	return f.cont.SetPublicStage(cc, stage)
}

func (f *front) SetCreatorPayouts(cc *types.ContractContext, payouts []CreatorPayout) error {
	return f.cont.SetCreatorPayouts(cc, payouts)
}

func (f *front) SetAllowListRoot(cc *types.ContractContext, root hash.Hash256) error {
	return f.cont.SetAllowListRoot(cc, root)
}

func (f *front) SetDelegationRegistry(cc *types.ContractContext, registry common.Address) error {
	return f.cont.SetDelegationRegistry(cc, registry)
}

func (f *front) SetAllowedFeeRecipient(cc *types.ContractContext, feeRecipient common.Address, is bool) error {
	return f.cont.SetAllowedFeeRecipient(cc, feeRecipient, is)
}

func (f *front) SetAllowedSigner(cc *types.ContractContext, signer common.Address, is bool) error {
	return f.cont.SetAllowedSigner(cc, signer, is)
}

func (f *front) SetAllowedPayer(cc *types.ContractContext, payer common.Address, is bool) error {
	return f.cont.SetAllowedPayer(cc, payer, is)
}

func (f *front) SetAllowedCaller(cc *types.ContractContext, caller common.Address, is bool) error {
	return f.cont.SetAllowedCaller(cc, caller, is)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) Collection(cc *types.ContractContext) common.Address {
	return f.cont.Collection(cc)
}

func (f *front) DelegationRegistry(cc *types.ContractContext) common.Address {
	return f.cont.DelegationRegistry(cc)
}

func (f *front) PublicStage(cc *types.ContractContext) *StageConfig {
	return f.cont.PublicStage(cc)
}

func (f *front) CreatorPayouts(cc *types.ContractContext) []CreatorPayout {
	return f.cont.CreatorPayouts(cc)
}

func (f *front) AllowListRoot(cc *types.ContractContext) hash.Hash256 {
	return f.cont.AllowListRoot(cc)
}

func (f *front) IsDigestUsed(cc *types.ContractContext, digest hash.Hash256) bool {
	return f.cont.IsDigestUsed(cc, digest)
}

func (f *front) SignedMintDigest(cc *types.ContractContext, minter common.Address, feeRecipient common.Address, stage *StageConfig, salt hash.Hash256) (hash.Hash256, error) {
	return f.cont.SignedMintDigest(cc, minter, feeRecipient, stage, salt)
}

func (f *front) AllowedFeeRecipients(cc *types.ContractContext) []common.Address {
	return feeRecipients.Items(cc)
}

func (f *front) AllowedSigners(cc *types.ContractContext) []common.Address {
	return signers.Items(cc)
}

func (f *front) AllowedPayers(cc *types.ContractContext) []common.Address {
	return payers.Items(cc)
}

func (f *front) AllowedCallers(cc *types.ContractContext) []common.Address {
	return allowedCallers.Items(cc)
}

func (f *front) IsAllowedFeeRecipient(cc *types.ContractContext, feeRecipient common.Address) bool {
	return feeRecipients.Contains(cc, feeRecipient)
}

func (f *front) IsAllowedSigner(cc *types.ContractContext, signer common.Address) bool {
	return signers.Contains(cc, signer)
}

func (f *front) IsAllowedPayer(cc *types.ContractContext, payer common.Address) bool {
	return payers.Contains(cc, payer)
}

func (f *front) IsAllowedCaller(cc *types.ContractContext, caller common.Address) bool {
	return allowedCallers.Contains(cc, caller)
}

func (f *front) Read(cc *types.ContractContext, op ReadOp) (interface{}, error) {
	return f.cont.Read(cc, op)
}

package drop

import (
	"bytes"
	"math/big"

	"github.com/pkg/errors"

	"github.com/meverselabs/mintdrop/common"
	"github.com/meverselabs/mintdrop/common/bin"
	"github.com/meverselabs/mintdrop/common/hash"
	"github.com/meverselabs/mintdrop/core/types"
)

// The four access registries share one generic set implementation; each is
// single-writer through the pipeline and the master-gated admin operations.
var (
	feeRecipients  = newAddressSet(tagFeeRecipientSet)
	signers        = newAddressSet(tagSignerSet)
	payers         = newAddressSet(tagPayerSet)
	allowedCallers = newAddressSet(tagCallerSet)
)

// DropContract decides whether a primary-sale mint is allowed right now, at
// what price, to whom, and how the payment is split. It plugs into the
// settlement exchange as an order generator: the exchange calls GenerateOrder
// and enforces the returned consideration atomically alongside the mint.
type DropContract struct {
	addr   common.Address
	master common.Address
}

func (cont *DropContract) Name() string {
	return "MintDrop"
}

func (cont *DropContract) Address() common.Address {
	return cont.addr
}

func (cont *DropContract) Master() common.Address {
	return cont.master
}

func (cont *DropContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *DropContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &DropContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	if data.Collection == common.ZeroAddr {
		return errors.New("collection address required")
	}
	cc.SetContractData([]byte{tagCollection}, data.Collection[:])
	if data.DelegationRegistry != common.ZeroAddr {
		cc.SetContractData([]byte{tagDelegationRegistry}, data.DelegationRegistry[:])
	}
	for _, caller := range data.AllowedCallers {
		if err := allowedCallers.Add(cc, caller); err != nil {
			return err
		}
	}
	if data.InitialStage != nil {
		if err := cont.storePublicStage(cc, data.InitialStage); err != nil {
			return err
		}
	}
	return nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

// Collection returns the address of the collection this drop mints from
func (cont *DropContract) Collection(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagCollection}))
}

func (cont *DropContract) delegationRegistry(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagDelegationRegistry}))
}

// DelegationRegistry returns the registry consulted for payer delegation
func (cont *DropContract) DelegationRegistry(cc types.ContractLoader) common.Address {
	return cont.delegationRegistry(cc)
}

// PublicStage returns the persisted public sale stage or nil when unset
func (cont *DropContract) PublicStage(cc types.ContractLoader) *StageConfig {
	bs := cc.ContractData([]byte{tagPublicStage})
	if len(bs) != StageConfigSize {
		return nil
	}
	stage, err := DecodeStageConfig(bs)
	if err != nil {
		return nil
	}
	return stage
}

// AllowListRoot returns the stored allow list Merkle root
func (cont *DropContract) AllowListRoot(cc types.ContractLoader) hash.Hash256 {
	return hash.BytesToHash(cc.ContractData([]byte{tagAllowListRoot}))
}

//////////////////////////////////////////////////
// Public Writer only master Functions
//////////////////////////////////////////////////

func (cont *DropContract) onlyMaster(cc *types.ContractContext) error {
	if cc.From() != cont.master {
		return errors.New("not drop master")
	}
	return nil
}

// SetPublicStage replaces the long-lived public sale stage. The stage index
// is forced to the reserved public index and the stage supply ceiling is
// cleared; the wallet and global ceilings still apply.
func (cont *DropContract) SetPublicStage(cc *types.ContractContext, stage *StageConfig) error {
	if err := cont.onlyMaster(cc); err != nil {
		return err
	}
	return cont.storePublicStage(cc, stage)
}

func (cont *DropContract) storePublicStage(cc *types.ContractContext, stage *StageConfig) error {
	if err := validateStageConfig(stage); err != nil {
		return err
	}
	s := stage.Clone()
	s.StageIndex = publicStageIndex
	s.MaxSupplyForStage = big.NewInt(0)
	cc.SetContractData([]byte{tagPublicStage}, s.Encode())
	return nil
}

// SetCreatorPayouts replaces the creator payout list. Shares must be non-zero
// and sum to exactly 10000 basis points.
func (cont *DropContract) SetCreatorPayouts(cc *types.ContractContext, payouts []CreatorPayout) error {
	if err := cont.onlyMaster(cc); err != nil {
		return err
	}
	if err := validateCreatorPayouts(payouts); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagCreatorPayouts}, encodeCreatorPayouts(payouts))
	return nil
}

// SetAllowListRoot replaces the allow list Merkle root
func (cont *DropContract) SetAllowListRoot(cc *types.ContractContext, root hash.Hash256) error {
	if err := cont.onlyMaster(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagAllowListRoot}, root.Bytes())
	return nil
}

// SetDelegationRegistry replaces the payer delegation registry
func (cont *DropContract) SetDelegationRegistry(cc *types.ContractContext, registry common.Address) error {
	if err := cont.onlyMaster(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagDelegationRegistry}, registry[:])
	return nil
}

func (cont *DropContract) setAllowed(cc *types.ContractContext, set *accessSet[common.Address], addr common.Address, is bool) error {
	if err := cont.onlyMaster(cc); err != nil {
		return err
	}
	return set.Set(cc, addr, is)
}

// SetAllowedFeeRecipient adds or removes a fee recipient
func (cont *DropContract) SetAllowedFeeRecipient(cc *types.ContractContext, feeRecipient common.Address, is bool) error {
	return cont.setAllowed(cc, feeRecipients, feeRecipient, is)
}

// SetAllowedSigner adds or removes an off-chain mint signer
func (cont *DropContract) SetAllowedSigner(cc *types.ContractContext, signer common.Address, is bool) error {
	return cont.setAllowed(cc, signers, signer, is)
}

// SetAllowedPayer adds or removes an allowed payer
func (cont *DropContract) SetAllowedPayer(cc *types.ContractContext, payer common.Address, is bool) error {
	return cont.setAllowed(cc, payers, payer, is)
}

// SetAllowedCaller adds or removes an exchange allowed to generate orders
func (cont *DropContract) SetAllowedCaller(cc *types.ContractContext, caller common.Address, is bool) error {
	return cont.setAllowed(cc, allowedCallers, caller, is)
}

//////////////////////////////////////////////////
// Order Functions
//////////////////////////////////////////////////

// GenerateOrder runs the full decision pipeline with effects: a consumed
// signed digest stays consumed and the mint is recorded as an event. Only
// callers in the allowed caller set may invoke it.
func (cont *DropContract) GenerateOrder(cc *types.ContractContext, fulfiller common.Address, offer []SpentItem, context []byte) ([]ReceivedItem, error) {
	if !allowedCallers.Contains(cc, cc.From()) {
		return nil, errors.Wrapf(ErrNotAllowedCaller, "caller %v", cc.From().String())
	}
	return cont.createOrder(cc, fulfiller, offer, context, true)
}

// PreviewOrder runs the identical pipeline without any state mutation. For
// the same inputs and the same observed time it returns byte-identical
// consideration to GenerateOrder.
func (cont *DropContract) PreviewOrder(cc *types.ContractContext, fulfiller common.Address, offer []SpentItem, context []byte) ([]ReceivedItem, error) {
	return cont.createOrder(cc, fulfiller, offer, context, false)
}

func (cont *DropContract) createOrder(cc *types.ContractContext, fulfiller common.Address, offer []SpentItem, context []byte, commit bool) ([]ReceivedItem, error) {
	req, err := decodeMintContext(cont.Collection(cc), fulfiller, offer, context)
	if err != nil {
		return nil, err
	}
	req.details.Commit = commit

	if req.substandard == substandardPublic {
		stage := cont.PublicStage(cc)
		if stage == nil {
			return nil, errors.Wrap(ErrStageNotActive, "public stage not configured")
		}
		req.stage = stage
	}

	if err := cont.verifyEligibility(cc, req); err != nil {
		return nil, err
	}
	unitPrice, err := currentPrice(req.stage, cc.LastTimestamp())
	if err != nil {
		return nil, err
	}
	if err := cont.checkMintQuota(cc, req.stage, req.details.Minter, req.details.Quantity); err != nil {
		return nil, err
	}
	items, err := cont.computeConsideration(cc, req.stage, req.details.FeeRecipient, req.details.Quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	if commit {
		cc.EmitEvent(mintEvent(cont.addr, req, unitPrice))
	}
	return items, nil
}

func mintEvent(cont common.Address, req *mintRequest, unitPrice *big.Int) *types.Event {
	bs := make([]byte, common.AddressLength+32+32+8)
	copy(bs, req.details.Minter[:])
	req.details.Quantity.FillBytes(bs[common.AddressLength : common.AddressLength+32])
	unitPrice.FillBytes(bs[common.AddressLength+32 : common.AddressLength+64])
	bin.PutUint64(bs[common.AddressLength+64:], req.stage.StageIndex)
	return &types.Event{
		Contract: cont,
		Type:     "DropMinted",
		Result:   bs,
	}
}

package drop

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"

	"github.com/meverselabs/mintdrop/common"
	"github.com/meverselabs/mintdrop/common/hash"
	"github.com/meverselabs/mintdrop/core/types"
)

const (
	signingName    = "MintDrop"
	signingVersion = "1.0"
)

var mintAuthTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"MintAuthorization": {
		{Name: "minter", Type: "address"},
		{Name: "feeRecipient", Type: "address"},
		{Name: "stage", Type: "MintStage"},
		{Name: "salt", Type: "bytes32"},
	},
	"MintStage": {
		{Name: "startPrice", Type: "uint256"},
		{Name: "endPrice", Type: "uint256"},
		{Name: "startTime", Type: "uint256"},
		{Name: "endTime", Type: "uint256"},
		{Name: "paymentToken", Type: "address"},
		{Name: "maxPerWallet", Type: "uint256"},
		{Name: "maxSupplyForStage", Type: "uint256"},
		{Name: "stageIndex", Type: "uint256"},
		{Name: "feeBps", Type: "uint256"},
		{Name: "restrictFeeRecipients", Type: "bool"},
	},
}

func stageTypedData(s *StageConfig) apitypes.TypedDataMessage {
	return apitypes.TypedDataMessage{
		"startPrice":            (*math.HexOrDecimal256)(s.StartPrice),
		"endPrice":              (*math.HexOrDecimal256)(s.EndPrice),
		"startTime":             math.NewHexOrDecimal256(int64(s.StartTime)),
		"endTime":               math.NewHexOrDecimal256(int64(s.EndTime)),
		"paymentToken":          s.PaymentToken.Hex(),
		"maxPerWallet":          (*math.HexOrDecimal256)(s.MaxPerWallet),
		"maxSupplyForStage":     (*math.HexOrDecimal256)(s.MaxSupplyForStage),
		"stageIndex":            math.NewHexOrDecimal256(int64(s.StageIndex)),
		"feeBps":                math.NewHexOrDecimal256(int64(s.FeeBps)),
		"restrictFeeRecipients": s.RestrictFeeRecipients,
	}
}

// SignedMintDigest computes the typed-data digest an off-chain signer must
// sign to authorize the mint. The digest binds the minter, the fee recipient,
// the full stage and the salt to this contract's signing domain.
func (cont *DropContract) SignedMintDigest(cc types.ContractLoader, minter common.Address, feeRecipient common.Address, stage *StageConfig, salt hash.Hash256) (hash.Hash256, error) {
	td := apitypes.TypedData{
		Types:       mintAuthTypes,
		PrimaryType: "MintAuthorization",
		Domain: apitypes.TypedDataDomain{
			Name:              signingName,
			Version:           signingVersion,
			ChainId:           (*math.HexOrDecimal256)(cc.ChainID()),
			VerifyingContract: cont.addr.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"minter":       minter.Hex(),
			"feeRecipient": feeRecipient.Hex(),
			"stage":        stageTypedData(stage),
			"salt":         salt.Bytes(),
		},
	}
	domainSeparator, err := td.HashStruct("EIP712Domain", td.Domain.Map())
	if err != nil {
		return hash.Hash256{}, errors.WithStack(err)
	}
	structHash, err := td.HashStruct(td.PrimaryType, td.Message)
	if err != nil {
		return hash.Hash256{}, errors.WithStack(err)
	}
	return hash.Hash([]byte{0x19, 0x01}, domainSeparator, structHash), nil
}

func hashPair(a hash.Hash256, b hash.Hash256) hash.Hash256 {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return hash.Hash(a[:], b[:])
	}
	return hash.Hash(b[:], a[:])
}

// verifyMerkleProof walks the sibling list with sorted-pair hashing. An empty
// proof is valid only when the leaf already equals the root.
func verifyMerkleProof(root hash.Hash256, leaf hash.Hash256, proof []hash.Hash256) bool {
	computed := leaf
	for _, sibling := range proof {
		computed = hashPair(computed, sibling)
	}
	return computed == root
}

func allowListLeaf(minter common.Address, stage *StageConfig) hash.Hash256 {
	return hash.Hash(minter[:], stage.Encode())
}

// unpackCompactSignature expands a 64-byte r, vs signature into the
// 65-byte r, s, v form go-ethereum recovery expects
func unpackCompactSignature(compact []byte) common.Signature {
	sig := make(common.Signature, common.MinSignatureSize)
	copy(sig[:32], compact[:32])
	copy(sig[32:64], compact[32:])
	sig[64] = compact[32] >> 7
	sig[32] &= 0x7f
	return sig
}

func (cont *DropContract) checkPayer(cc *types.ContractContext, payer common.Address, minter common.Address) error {
	if payer == minter {
		return nil
	}
	if payers.Contains(cc, payer) {
		return nil
	}
	registry := cont.delegationRegistry(cc)
	if registry != common.ZeroAddr {
		is, err := cc.Exec(cc, registry, "IsDelegateForAll", []interface{}{payer, minter})
		if err != nil {
			return err
		}
		if len(is) > 0 {
			if ok, _ := is[0].(bool); ok {
				return nil
			}
		}
	}
	return errors.Wrapf(ErrPayerNotAllowed, "payer %v minter %v", payer.String(), minter.String())
}

func (cont *DropContract) checkFeeRecipient(cc *types.ContractContext, feeRecipient common.Address, stage *StageConfig) error {
	if feeRecipient == common.ZeroAddr {
		return errors.WithStack(ErrNullFeeRecipient)
	}
	if stage.RestrictFeeRecipients && !feeRecipients.Contains(cc, feeRecipient) {
		return errors.Wrapf(ErrFeeRecipientNotAllowed, "fee recipient %v", feeRecipient.String())
	}
	return nil
}

func (cont *DropContract) verifyAllowListMint(cc *types.ContractContext, req *mintRequest) error {
	root := cont.AllowListRoot(cc)
	leaf := allowListLeaf(req.details.Minter, req.stage)
	if !verifyMerkleProof(root, leaf, req.proof) {
		return errors.Wrapf(ErrInvalidProof, "minter %v stage %v", req.details.Minter.String(), req.stage.StageIndex)
	}
	return nil
}

func (cont *DropContract) verifySignedMint(cc *types.ContractContext, req *mintRequest) error {
	digest, err := cont.SignedMintDigest(cc, req.details.Minter, req.details.FeeRecipient, req.stage, req.salt)
	if err != nil {
		return err
	}
	if cont.IsDigestUsed(cc, digest) {
		return errors.Wrapf(ErrSignatureAlreadyUsed, "digest %v", digest.String())
	}
	// The digest is consumed before the signer is recovered, so a re-entrant
	// call made during recovery or the set lookup cannot replay it.
	if req.details.Commit {
		cc.SetContractData(makeUsedDigestKey(digest), []byte{1})
	}
	sig := unpackCompactSignature(req.signature)
	signer, err := common.RecoverAddress(digest[:], sig)
	if err != nil {
		return errors.Wrapf(ErrInvalidSignature, "recover: %v", err)
	}
	if !signers.Contains(cc, signer) {
		return errors.Wrapf(ErrInvalidSignature, "signer %v", signer.String())
	}
	return nil
}

func (cont *DropContract) verifyEligibility(cc *types.ContractContext, req *mintRequest) error {
	if err := cont.checkPayer(cc, req.details.Payer, req.details.Minter); err != nil {
		return err
	}
	if err := cont.checkFeeRecipient(cc, req.details.FeeRecipient, req.stage); err != nil {
		return err
	}
	switch req.substandard {
	case substandardAllowList:
		return cont.verifyAllowListMint(cc, req)
	case substandardSigned:
		return cont.verifySignedMint(cc, req)
	default:
		return nil
	}
}

// IsDigestUsed reports whether a signed mint digest has been consumed
func (cont *DropContract) IsDigestUsed(cc types.ContractLoader, digest hash.Hash256) bool {
	bs := cc.ContractData(makeUsedDigestKey(digest))
	return len(bs) == 1 && bs[0] == 1
}

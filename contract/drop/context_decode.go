package drop

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/mintdrop/common"
	"github.com/meverselabs/mintdrop/common/hash"
)

const (
	contextVersion = byte(0x00)

	substandardPublic    = uint8(0)
	substandardAllowList = uint8(1)
	substandardSigned    = uint8(2)

	minContextSize   = 42
	stageOffset      = 42
	proofOffset      = stageOffset + StageConfigSize
	saltOffset       = proofOffset
	signatureOffset  = saltOffset + 32
	signedContextLen = signatureOffset + common.CompactSignatureSize
)

// shape flags collected before any decode error is raised, so the most
// specific applicable error is the one reported
const (
	flagBadVersion = 1 << iota
	flagBadItemShape
	flagBadSubstandard
	flagShortContext
)

func checkOfferedItem(collection common.Address, offer []SpentItem) bool {
	if len(offer) != 1 {
		return false
	}
	item := offer[0]
	if item.Kind != AssetQuantity {
		return false
	}
	if item.Token != collection {
		return false
	}
	if item.Identifier == nil || item.Identifier.Sign() != 0 {
		return false
	}
	if item.Amount == nil || item.Amount.Sign() <= 0 {
		return false
	}
	return true
}

// decodeMintContext parses the offered item and the opaque context buffer into
// a typed mint request. It never touches state.
func decodeMintContext(collection common.Address, fulfiller common.Address, offer []SpentItem, context []byte) (*mintRequest, error) {
	var flags uint8
	if !checkOfferedItem(collection, offer) {
		flags |= flagBadItemShape
	}
	if len(context) >= 1 && context[0] != contextVersion {
		flags |= flagBadVersion
	}
	if len(context) >= 2 && context[1] > substandardSigned {
		flags |= flagBadSubstandard
	}
	if len(context) < minContextSize {
		flags |= flagShortContext
	}
	if flags != 0 {
		switch {
		case flags&flagBadVersion != 0:
			return nil, errors.Wrapf(ErrUnsupportedVersion, "version %#x", context[0])
		case flags&flagBadItemShape != 0:
			return nil, errors.WithStack(ErrMalformedOfferedItem)
		case flags&flagBadSubstandard != 0:
			return nil, errors.Wrapf(ErrUnsupportedSubstandard, "substandard %v", context[1])
		default:
			return nil, errors.Wrapf(ErrContextTooShort, "length %v", len(context))
		}
	}

	req := &mintRequest{
		substandard: context[1],
		details: MintDetails{
			FeeRecipient: common.BytesToAddress(context[2:22]),
			Minter:       common.BytesToAddress(context[22:42]),
			Payer:        fulfiller,
			Quantity:     offer[0].Amount,
		},
	}
	if req.details.Minter == common.ZeroAddr {
		req.details.Minter = fulfiller
	}
	if req.substandard == substandardPublic {
		return req, nil
	}

	if len(context) < stageOffset+StageConfigSize {
		return nil, errors.Wrapf(ErrContextTooShort, "length %v", len(context))
	}
	stage, err := DecodeStageConfig(context[stageOffset : stageOffset+StageConfigSize])
	if err != nil {
		return nil, err
	}
	req.stage = stage

	switch req.substandard {
	case substandardAllowList:
		proofBytes := context[proofOffset:]
		if len(proofBytes)%hash.Hash256Size != 0 {
			return nil, errors.Wrapf(ErrContextTooShort, "proof length %v", len(proofBytes))
		}
		req.proof = make([]hash.Hash256, len(proofBytes)/hash.Hash256Size)
		for i := range req.proof {
			copy(req.proof[i][:], proofBytes[i*hash.Hash256Size:])
		}
	case substandardSigned:
		if len(context) < signedContextLen {
			return nil, errors.Wrapf(ErrContextTooShort, "length %v", len(context))
		}
		copy(req.salt[:], context[saltOffset:signatureOffset])
		req.signature = append([]byte{}, context[signatureOffset:signedContextLen]...)
	}
	return req, nil
}

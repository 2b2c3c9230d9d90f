package drop

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/mintdrop/core/types"
)

// ReadOp enumerates the read operations the drop serves through one entry
// point. The enumeration is closed: anything else is rejected with a typed
// error instead of falling through to a default handler.
type ReadOp uint8

const (
	ReadCollection ReadOp = iota
	ReadDelegationRegistry
	ReadPublicStage
	ReadCreatorPayouts
	ReadAllowListRoot
	ReadAllowedFeeRecipients
	ReadAllowedSigners
	ReadAllowedPayers
	ReadAllowedCallers
)

// Read serves a single read operation
func (cont *DropContract) Read(cc types.ContractLoader, op ReadOp) (interface{}, error) {
	switch op {
	case ReadCollection:
		return cont.Collection(cc), nil
	case ReadDelegationRegistry:
		return cont.DelegationRegistry(cc), nil
	case ReadPublicStage:
		return cont.PublicStage(cc), nil
	case ReadCreatorPayouts:
		return cont.CreatorPayouts(cc), nil
	case ReadAllowListRoot:
		return cont.AllowListRoot(cc), nil
	case ReadAllowedFeeRecipients:
		return feeRecipients.Items(cc), nil
	case ReadAllowedSigners:
		return signers.Items(cc), nil
	case ReadAllowedPayers:
		return payers.Items(cc), nil
	case ReadAllowedCallers:
		return allowedCallers.Items(cc), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedOperation, "op %v", op)
	}
}

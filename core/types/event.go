package types

import (
	"github.com/meverselabs/mintdrop/common"
)

// Event is an execution record emitted by a contract to the top snapshot
type Event struct {
	Contract common.Address
	Type     string
	Result   []byte
}

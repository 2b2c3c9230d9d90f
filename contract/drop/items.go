package drop

import (
	"math/big"

	"github.com/meverselabs/mintdrop/common"
	"github.com/meverselabs/mintdrop/common/hash"
)

// AssetKind classifies the asset a settlement item moves
type AssetKind uint8

const (
	// AssetNative is the chain's native currency
	AssetNative AssetKind = 0
	// AssetFungible is a fungible token contract balance
	AssetFungible AssetKind = 1
	// AssetQuantity is an amount of tokens minted from the drop's collection
	AssetQuantity AssetKind = 2
)

// SpentItem is an item the fulfiller asks the settlement engine to receive
type SpentItem struct {
	Kind       AssetKind
	Token      common.Address
	Identifier *big.Int
	Amount     *big.Int
}

// ReceivedItem is a payment obligation the settlement engine must satisfy
// atomically alongside the mint
type ReceivedItem struct {
	Kind       AssetKind
	Token      common.Address
	Identifier *big.Int
	Amount     *big.Int
	Recipient  common.Address
}

// MintDetails are the fields every mint request carries
type MintDetails struct {
	FeeRecipient common.Address
	Payer        common.Address
	Minter       common.Address
	Quantity     *big.Int
	Commit       bool
}

// mintRequest is a decoded mint context. The substandard selects which of the
// optional fields are populated: stage and proof for allow list mints, stage,
// salt and signature for signed mints.
type mintRequest struct {
	substandard uint8
	details     MintDetails
	stage       *StageConfig
	proof       []hash.Hash256
	salt        hash.Hash256
	signature   []byte
}

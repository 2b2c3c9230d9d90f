package drop

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/meverselabs/mintdrop/common"
	"github.com/meverselabs/mintdrop/common/bin"
	"github.com/meverselabs/mintdrop/core/types"
)

// CreatorPayout is a proportional share of the sale proceeds
type CreatorPayout struct {
	PayoutAddress common.Address
	BasisPoints   uint16
}

const creatorPayoutSize = common.AddressLength + 2

func encodeCreatorPayouts(payouts []CreatorPayout) []byte {
	bs := make([]byte, len(payouts)*creatorPayoutSize)
	for i, p := range payouts {
		offset := i * creatorPayoutSize
		copy(bs[offset:], p.PayoutAddress[:])
		bin.PutUint16(bs[offset+common.AddressLength:], p.BasisPoints)
	}
	return bs
}

func decodeCreatorPayouts(bs []byte) []CreatorPayout {
	payouts := make([]CreatorPayout, 0, len(bs)/creatorPayoutSize)
	for i := 0; i+creatorPayoutSize <= len(bs); i += creatorPayoutSize {
		payouts = append(payouts, CreatorPayout{
			PayoutAddress: common.BytesToAddress(bs[i : i+common.AddressLength]),
			BasisPoints:   bin.Uint16(bs[i+common.AddressLength : i+creatorPayoutSize]),
		})
	}
	return payouts
}

// CreatorPayouts returns the configured payout list in registration order
func (cont *DropContract) CreatorPayouts(cc types.ContractLoader) []CreatorPayout {
	return decodeCreatorPayouts(cc.ContractData([]byte{tagCreatorPayouts}))
}

func validateCreatorPayouts(payouts []CreatorPayout) error {
	if len(payouts) == 0 {
		return errors.Wrap(ErrInvalidPayouts, "empty payout list")
	}
	sum := 0
	for _, p := range payouts {
		if p.BasisPoints == 0 {
			return errors.Wrapf(ErrInvalidPayouts, "zero share for %v", p.PayoutAddress.String())
		}
		sum += int(p.BasisPoints)
	}
	if sum != MaxBasisPoints {
		return errors.Wrapf(ErrInvalidPayouts, "shares sum to %v", sum)
	}
	return nil
}

func paymentItem(stage *StageConfig, amount *big.Int, recipient common.Address) ReceivedItem {
	kind := AssetNative
	if stage.PaymentToken != common.ZeroAddr {
		kind = AssetFungible
	}
	return ReceivedItem{
		Kind:       kind,
		Token:      stage.PaymentToken,
		Identifier: big.NewInt(0),
		Amount:     amount,
		Recipient:  recipient,
	}
}

// computeConsideration splits the total price into the fee item followed by
// one item per creator payout entry. Each share rounds down; the rounding
// dust is not redistributed and stays with whoever controls settlement.
func (cont *DropContract) computeConsideration(cc types.ContractLoader, stage *StageConfig, feeRecipient common.Address, quantity *big.Int, unitPrice *big.Int) ([]ReceivedItem, error) {
	totalPrice := big.NewInt(0).Mul(quantity, unitPrice)
	if totalPrice.Sign() == 0 {
		return []ReceivedItem{}, nil
	}
	if stage.FeeBps > MaxBasisPoints {
		return nil, errors.WithStack(ErrInvalidFeeBps)
	}
	payouts := cont.CreatorPayouts(cc)
	if len(payouts) == 0 {
		return nil, errors.WithStack(ErrPayoutsNotConfigured)
	}

	bps := big.NewInt(MaxBasisPoints)
	feeAmount := big.NewInt(0).Mul(totalPrice, big.NewInt(0).SetUint64(stage.FeeBps))
	feeAmount.Quo(feeAmount, bps)
	payoutPool := big.NewInt(0).Sub(totalPrice, feeAmount)

	items := make([]ReceivedItem, 0, len(payouts)+1)
	if feeAmount.Sign() > 0 {
		items = append(items, paymentItem(stage, feeAmount, feeRecipient))
	}
	for _, p := range payouts {
		share := big.NewInt(0).Mul(payoutPool, big.NewInt(int64(p.BasisPoints)))
		share.Quo(share, bps)
		items = append(items, paymentItem(stage, share, p.PayoutAddress))
	}
	return items, nil
}

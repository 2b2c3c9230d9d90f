package drop

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/meverselabs/mintdrop/common"
	"github.com/meverselabs/mintdrop/core/types"
)

// mintStats is the quantity bookkeeping the collection ledger reports for a minter
type mintStats struct {
	mintedByWallet *big.Int
	totalMinted    *big.Int
	maxSupply      *big.Int
}

func (cont *DropContract) getMintStats(cc *types.ContractContext, minter common.Address) (*mintStats, error) {
	is, err := cc.Exec(cc, cont.Collection(cc), "GetMintStats", []interface{}{minter})
	if err != nil {
		return nil, err
	}
	if len(is) < 3 {
		return nil, errors.Errorf("invalid mint stats result count %v", len(is))
	}
	stats := &mintStats{}
	var ok bool
	if stats.mintedByWallet, ok = is[0].(*big.Int); !ok {
		return nil, errors.Errorf("minted by wallet is not big.Int %v", is[0])
	}
	if stats.totalMinted, ok = is[1].(*big.Int); !ok {
		return nil, errors.Errorf("total minted is not big.Int %v", is[1])
	}
	if stats.maxSupply, ok = is[2].(*big.Int); !ok {
		return nil, errors.Errorf("max supply is not big.Int %v", is[2])
	}
	return stats, nil
}

// checkMintQuota re-reads the authoritative counters from the collection
// ledger and validates the requested quantity against the wallet, global and
// stage ceilings. Each ceiling reports its own error so the caller sees the
// true reason.
func (cont *DropContract) checkMintQuota(cc *types.ContractContext, stage *StageConfig, minter common.Address, quantity *big.Int) error {
	stats, err := cont.getMintStats(cc, minter)
	if err != nil {
		return err
	}
	walletTotal := big.NewInt(0).Add(quantity, stats.mintedByWallet)
	if walletTotal.Cmp(stage.MaxPerWallet) > 0 {
		return errors.Wrapf(ErrExceedsWalletCap, "quantity %v minted %v cap %v", quantity, stats.mintedByWallet, stage.MaxPerWallet)
	}
	supplyTotal := big.NewInt(0).Add(quantity, stats.totalMinted)
	if supplyTotal.Cmp(stats.maxSupply) > 0 {
		return errors.Wrapf(ErrExceedsGlobalSupply, "quantity %v minted %v cap %v", quantity, stats.totalMinted, stats.maxSupply)
	}
	if stage.MaxSupplyForStage.Sign() > 0 && supplyTotal.Cmp(stage.MaxSupplyForStage) > 0 {
		return errors.Wrapf(ErrExceedsStageSupply, "quantity %v minted %v cap %v", quantity, stats.totalMinted, stage.MaxSupplyForStage)
	}
	return nil
}

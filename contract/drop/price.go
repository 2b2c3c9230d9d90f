package drop

import (
	"math/big"

	"github.com/pkg/errors"
)

// currentPrice returns the unit price of the stage at the given time.
// The window is half open: now == StartTime is active, now == EndTime is not.
func currentPrice(stage *StageConfig, now uint64) (*big.Int, error) {
	if now < stage.StartTime || now >= stage.EndTime {
		return nil, errors.Wrapf(ErrStageNotActive, "now %v not in [%v, %v)", now, stage.StartTime, stage.EndTime)
	}
	if stage.StartPrice.Cmp(stage.EndPrice) == 0 {
		return big.NewInt(0).Set(stage.StartPrice), nil
	}

	duration := stage.EndTime - stage.StartTime
	elapsed := now - stage.StartTime
	remaining := duration - elapsed

	// price = ceil((startPrice*remaining + endPrice*elapsed) / duration).
	// Rounding up keeps the obligation owed to the seller from ever being
	// undercut by integer division; an exact zero stays zero.
	weighted := big.NewInt(0).Mul(stage.StartPrice, big.NewInt(0).SetUint64(remaining))
	weighted.Add(weighted, big.NewInt(0).Mul(stage.EndPrice, big.NewInt(0).SetUint64(elapsed)))

	q, r := big.NewInt(0).QuoRem(weighted, big.NewInt(0).SetUint64(duration), big.NewInt(0))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q, nil
}

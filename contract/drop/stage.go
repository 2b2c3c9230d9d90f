package drop

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/meverselabs/mintdrop/common"
)

const (
	// MaxBasisPoints is the denominator of every fee and payout proportion
	MaxBasisPoints = 10000

	stageFieldSize = 32

	// StageConfigSize is the fixed wire size of an encoded stage: 10 32-byte fields
	StageConfigSize = 10 * stageFieldSize

	// publicStageIndex is the reserved index of the long-lived public stage
	publicStageIndex = uint64(0)
)

// StageConfig is a time-boxed sale configuration. A zero MaxSupplyForStage
// means the stage itself carries no supply ceiling.
type StageConfig struct {
	StartPrice            *big.Int
	EndPrice              *big.Int
	StartTime             uint64
	EndTime               uint64
	PaymentToken          common.Address
	MaxPerWallet          *big.Int
	MaxSupplyForStage     *big.Int
	StageIndex            uint64
	FeeBps                uint64
	RestrictFeeRecipients bool
}

// Clone returns the cloned value of it
func (s *StageConfig) Clone() *StageConfig {
	return &StageConfig{
		StartPrice:            big.NewInt(0).Set(s.StartPrice),
		EndPrice:              big.NewInt(0).Set(s.EndPrice),
		StartTime:             s.StartTime,
		EndTime:               s.EndTime,
		PaymentToken:          s.PaymentToken,
		MaxPerWallet:          big.NewInt(0).Set(s.MaxPerWallet),
		MaxSupplyForStage:     big.NewInt(0).Set(s.MaxSupplyForStage),
		StageIndex:            s.StageIndex,
		FeeBps:                s.FeeBps,
		RestrictFeeRecipients: s.RestrictFeeRecipients,
	}
}

// Encode returns the canonical 320-byte big-endian encoding of the stage.
// The same bytes back both the wire context and the allow list leaf.
func (s *StageConfig) Encode() []byte {
	bs := make([]byte, StageConfigSize)
	s.StartPrice.FillBytes(bs[0:32])
	s.EndPrice.FillBytes(bs[32:64])
	binary.BigEndian.PutUint64(bs[88:96], s.StartTime)
	binary.BigEndian.PutUint64(bs[120:128], s.EndTime)
	copy(bs[140:160], s.PaymentToken[:])
	s.MaxPerWallet.FillBytes(bs[160:192])
	s.MaxSupplyForStage.FillBytes(bs[192:224])
	binary.BigEndian.PutUint64(bs[248:256], s.StageIndex)
	binary.BigEndian.PutUint64(bs[280:288], s.FeeBps)
	if s.RestrictFeeRecipients {
		bs[StageConfigSize-1] = 1
	}
	return bs
}

func decodeStageScalar(bs []byte) (uint64, error) {
	for _, b := range bs[:24] {
		if b != 0 {
			return 0, errors.New("stage scalar out of range")
		}
	}
	return binary.BigEndian.Uint64(bs[24:32]), nil
}

// DecodeStageConfig parses a 320-byte stage encoding
func DecodeStageConfig(bs []byte) (*StageConfig, error) {
	if len(bs) != StageConfigSize {
		return nil, errors.Errorf("invalid stage config length %v", len(bs))
	}
	s := &StageConfig{
		StartPrice:        big.NewInt(0).SetBytes(bs[0:32]),
		EndPrice:          big.NewInt(0).SetBytes(bs[32:64]),
		PaymentToken:      common.BytesToAddress(bs[140:160]),
		MaxPerWallet:      big.NewInt(0).SetBytes(bs[160:192]),
		MaxSupplyForStage: big.NewInt(0).SetBytes(bs[192:224]),
	}
	var err error
	if s.StartTime, err = decodeStageScalar(bs[64:96]); err != nil {
		return nil, err
	}
	if s.EndTime, err = decodeStageScalar(bs[96:128]); err != nil {
		return nil, err
	}
	if s.StageIndex, err = decodeStageScalar(bs[224:256]); err != nil {
		return nil, err
	}
	if s.FeeBps, err = decodeStageScalar(bs[256:288]); err != nil {
		return nil, err
	}
	for _, b := range bs[288 : StageConfigSize-1] {
		if b != 0 {
			return nil, errors.New("stage scalar out of range")
		}
	}
	s.RestrictFeeRecipients = bs[StageConfigSize-1] != 0
	return s, nil
}

func validateStageConfig(s *StageConfig) error {
	if s.FeeBps > MaxBasisPoints {
		return errors.WithStack(ErrInvalidFeeBps)
	}
	if s.StartTime > s.EndTime {
		return errors.Errorf("stage start time %v after end time %v", s.StartTime, s.EndTime)
	}
	return nil
}

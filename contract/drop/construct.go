package drop

import (
	"io"

	"github.com/meverselabs/mintdrop/common"
	"github.com/meverselabs/mintdrop/common/bin"
)

type DropContractConstruction struct {
	Collection         common.Address
	DelegationRegistry common.Address
	AllowedCallers     []common.Address
	InitialStage       *StageConfig
}

func (s *DropContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Collection); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.DelegationRegistry); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, uint32(len(s.AllowedCallers))); err != nil {
		return sum, err
	}
	for _, caller := range s.AllowedCallers {
		if sum, err := sw.Address(w, caller); err != nil {
			return sum, err
		}
	}
	if sum, err := sw.Bool(w, s.InitialStage != nil); err != nil {
		return sum, err
	}
	if s.InitialStage != nil {
		if sum, err := sw.Bytes(w, s.InitialStage.Encode()); err != nil {
			return sum, err
		}
	}
	return sw.Sum(), nil
}

func (s *DropContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Collection); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.DelegationRegistry); err != nil {
		return sum, err
	}
	if Len, sum, err := sr.GetUint32(r); err != nil {
		return sum, err
	} else {
		s.AllowedCallers = make([]common.Address, 0, Len)
		for i := uint32(0); i < Len; i++ {
			var caller common.Address
			if sum, err := sr.Address(r, &caller); err != nil {
				return sum, err
			}
			s.AllowedCallers = append(s.AllowedCallers, caller)
		}
	}
	var hasStage bool
	if sum, err := sr.Bool(r, &hasStage); err != nil {
		return sum, err
	}
	if hasStage {
		var bs []byte
		if sum, err := sr.Bytes(r, &bs); err != nil {
			return sum, err
		}
		stage, err := DecodeStageConfig(bs)
		if err != nil {
			return sr.Sum(), err
		}
		s.InitialStage = stage
	}
	return sr.Sum(), nil
}

package test

import (
	"bytes"
	"math/big"

	"github.com/meverselabs/mintdrop/common"
	"github.com/meverselabs/mintdrop/common/hash"
	"github.com/meverselabs/mintdrop/contract/drop"
	"github.com/meverselabs/mintdrop/core/types"
)

var (
	chainID = big.NewInt(7770)

	adminAddr      = common.HexToAddress("0x0000000000000000000000000000000000000a01")
	exchangeAddr   = common.HexToAddress("0x0000000000000000000000000000000000000e01")
	dropAddr       = common.HexToAddress("0x0000000000000000000000000000000000000d01")
	collectionAddr = common.HexToAddress("0x0000000000000000000000000000000000000c01")
	registryAddr   = common.HexToAddress("0x0000000000000000000000000000000000000901")

	minterAddr   = common.HexToAddress("0x0000000000000000000000000000000000000101")
	payerAddr    = common.HexToAddress("0x0000000000000000000000000000000000000102")
	feeAddr      = common.HexToAddress("0x0000000000000000000000000000000000000103")
	creatorAAddr = common.HexToAddress("0x0000000000000000000000000000000000000104")
	creatorBAddr = common.HexToAddress("0x0000000000000000000000000000000000000105")
)

// collectionLedger stands in for the collection contract's mint bookkeeping
type collectionLedger struct {
	mintedByWallet map[common.Address]*big.Int
	totalMinted    *big.Int
	maxSupply      *big.Int
}

func newCollectionLedger(maxSupply int64) *collectionLedger {
	return &collectionLedger{
		mintedByWallet: map[common.Address]*big.Int{},
		totalMinted:    big.NewInt(0),
		maxSupply:      big.NewInt(maxSupply),
	}
}

func (l *collectionLedger) minted(minter common.Address) *big.Int {
	if v, has := l.mintedByWallet[minter]; has {
		return v
	}
	return big.NewInt(0)
}

func (l *collectionLedger) record(minter common.Address, quantity int64) {
	l.mintedByWallet[minter] = big.NewInt(0).Add(l.minted(minter), big.NewInt(quantity))
	l.totalMinted.Add(l.totalMinted, big.NewInt(quantity))
}

type dropEnv struct {
	ctx        *types.Context
	cont       *drop.DropContract
	ledger     *collectionLedger
	delegation map[common.Address]common.Address
}

func (env *dropEnv) exec(Cc *types.ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error) {
	switch {
	case Addr == collectionAddr && MethodName == "GetMintStats":
		minter := Args[0].(common.Address)
		return []interface{}{
			big.NewInt(0).Set(env.ledger.minted(minter)),
			big.NewInt(0).Set(env.ledger.totalMinted),
			big.NewInt(0).Set(env.ledger.maxSupply),
		}, nil
	case Addr == registryAddr && MethodName == "IsDelegateForAll":
		payer := Args[0].(common.Address)
		minter := Args[1].(common.Address)
		return []interface{}{env.delegation[payer] == minter}, nil
	}
	return nil, nil
}

func (env *dropEnv) ccFrom(from common.Address) *types.ContractContext {
	return types.NewContractContext(env.ctx, from, dropAddr, env.exec)
}

func newDropEnv(now uint64) *dropEnv {
	env := &dropEnv{
		ctx:        types.NewContext(chainID),
		ledger:     newCollectionLedger(1000),
		delegation: map[common.Address]common.Address{},
	}
	env.ctx.NextContext(now)
	env.cont = &drop.DropContract{}
	env.cont.Init(dropAddr, adminAddr)

	construction := &drop.DropContractConstruction{
		Collection:         collectionAddr,
		DelegationRegistry: registryAddr,
		AllowedCallers:     []common.Address{exchangeAddr},
	}
	var buffer bytes.Buffer
	if _, err := construction.WriteTo(&buffer); err != nil {
		panic(err)
	}
	if err := env.cont.OnCreate(env.ccFrom(adminAddr), buffer.Bytes()); err != nil {
		panic(err)
	}
	return env
}

func defaultStage() *drop.StageConfig {
	return &drop.StageConfig{
		StartPrice:        big.NewInt(100),
		EndPrice:          big.NewInt(200),
		StartTime:         100,
		EndTime:           200,
		MaxPerWallet:      big.NewInt(10),
		MaxSupplyForStage: big.NewInt(0),
		FeeBps:            500,
	}
}

func mintOffer(quantity int64) []drop.SpentItem {
	return []drop.SpentItem{{
		Kind:       drop.AssetQuantity,
		Token:      collectionAddr,
		Identifier: big.NewInt(0),
		Amount:     big.NewInt(quantity),
	}}
}

func publicMintContext(feeRecipient common.Address, minter common.Address) []byte {
	bs := make([]byte, 42)
	bs[1] = 0
	copy(bs[2:22], feeRecipient[:])
	copy(bs[22:42], minter[:])
	return bs
}

func allowListMintContext(feeRecipient common.Address, minter common.Address, stage *drop.StageConfig, proof []hash.Hash256) []byte {
	bs := publicMintContext(feeRecipient, minter)
	bs[1] = 1
	bs = append(bs, stage.Encode()...)
	for _, node := range proof {
		bs = append(bs, node[:]...)
	}
	return bs
}

func signedMintContext(feeRecipient common.Address, minter common.Address, stage *drop.StageConfig, salt hash.Hash256, compact []byte) []byte {
	bs := publicMintContext(feeRecipient, minter)
	bs[1] = 2
	bs = append(bs, stage.Encode()...)
	bs = append(bs, salt[:]...)
	bs = append(bs, compact...)
	return bs
}

func sortedPair(a hash.Hash256, b hash.Hash256) hash.Hash256 {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return hash.Hash(a[:], b[:])
	}
	return hash.Hash(b[:], a[:])
}

func stageLeaf(minter common.Address, stage *drop.StageConfig) hash.Hash256 {
	return hash.Hash(minter[:], stage.Encode())
}

func compactSignature(sig common.Signature) []byte {
	compact := make([]byte, common.CompactSignatureSize)
	copy(compact, sig[:64])
	compact[32] |= sig[64] << 7
	return compact
}

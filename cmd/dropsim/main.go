package main

import (
	"bytes"
	"flag"
	"log"
	"math/big"

	"github.com/BurntSushi/toml"

	"github.com/meverselabs/mintdrop/common"
	"github.com/meverselabs/mintdrop/contract/drop"
	"github.com/meverselabs/mintdrop/core/types"
)

type stageConfig struct {
	StartPrice            int64
	EndPrice              int64
	StartTime             uint64
	EndTime               uint64
	PaymentToken          string
	MaxPerWallet          int64
	FeeBps                uint64
	RestrictFeeRecipients bool
}

type payoutConfig struct {
	Address     string
	BasisPoints uint16
}

type simConfig struct {
	ChainID      int64
	Timestamps   []uint64
	Quantity     int64
	MaxSupply    int64
	FeeRecipient string
	Minter       string
	Stage        stageConfig
	Payouts      []payoutConfig
}

var (
	adminAddr      = common.HexToAddress("0x0000000000000000000000000000000000000a01")
	exchangeAddr   = common.HexToAddress("0x0000000000000000000000000000000000000e01")
	dropAddr       = common.HexToAddress("0x0000000000000000000000000000000000000d01")
	collectionAddr = common.HexToAddress("0x0000000000000000000000000000000000000c01")
)

// dropsim deploys the drop contract into an in-memory context and previews
// the order a settlement exchange would receive at each configured timestamp.
func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./config.toml", "simulation config file")
	flag.Parse()

	var config simConfig
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		log.Fatalln("load config:", err)
	}
	feeRecipient, err := common.ParseAddress(config.FeeRecipient)
	if err != nil {
		log.Fatalln("fee recipient:", err)
	}
	minter, err := common.ParseAddress(config.Minter)
	if err != nil {
		log.Fatalln("minter:", err)
	}

	ctx := types.NewContext(big.NewInt(config.ChainID))
	cont := &drop.DropContract{}
	cont.Init(dropAddr, adminAddr)
	exec := func(Cc *types.ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error) {
		if Addr == collectionAddr && MethodName == "GetMintStats" {
			return []interface{}{
				big.NewInt(0),
				big.NewInt(0),
				big.NewInt(config.MaxSupply),
			}, nil
		}
		return nil, nil
	}
	adminCC := types.NewContractContext(ctx, adminAddr, dropAddr, exec)

	construction := &drop.DropContractConstruction{
		Collection:     collectionAddr,
		AllowedCallers: []common.Address{exchangeAddr},
	}
	var buffer bytes.Buffer
	if _, err := construction.WriteTo(&buffer); err != nil {
		log.Fatalln("construction:", err)
	}
	if err := cont.OnCreate(adminCC, buffer.Bytes()); err != nil {
		log.Fatalln("deploy:", err)
	}

	paymentToken := common.ZeroAddr
	if config.Stage.PaymentToken != "" {
		if paymentToken, err = common.ParseAddress(config.Stage.PaymentToken); err != nil {
			log.Fatalln("payment token:", err)
		}
	}
	stage := &drop.StageConfig{
		StartPrice:            big.NewInt(config.Stage.StartPrice),
		EndPrice:              big.NewInt(config.Stage.EndPrice),
		StartTime:             config.Stage.StartTime,
		EndTime:               config.Stage.EndTime,
		PaymentToken:          paymentToken,
		MaxPerWallet:          big.NewInt(config.Stage.MaxPerWallet),
		MaxSupplyForStage:     big.NewInt(0),
		FeeBps:                config.Stage.FeeBps,
		RestrictFeeRecipients: config.Stage.RestrictFeeRecipients,
	}
	if err := cont.SetPublicStage(adminCC, stage); err != nil {
		log.Fatalln("stage:", err)
	}
	payouts := make([]drop.CreatorPayout, 0, len(config.Payouts))
	for _, p := range config.Payouts {
		addr, err := common.ParseAddress(p.Address)
		if err != nil {
			log.Fatalln("payout address:", err)
		}
		payouts = append(payouts, drop.CreatorPayout{PayoutAddress: addr, BasisPoints: p.BasisPoints})
	}
	if err := cont.SetCreatorPayouts(adminCC, payouts); err != nil {
		log.Fatalln("payouts:", err)
	}

	offer := []drop.SpentItem{{
		Kind:       drop.AssetQuantity,
		Token:      collectionAddr,
		Identifier: big.NewInt(0),
		Amount:     big.NewInt(config.Quantity),
	}}
	context := make([]byte, 42)
	copy(context[2:22], feeRecipient[:])
	copy(context[22:42], minter[:])

	for _, now := range config.Timestamps {
		ctx.NextContext(now)
		cc := types.NewContractContext(ctx, exchangeAddr, dropAddr, exec)
		items, err := cont.PreviewOrder(cc, minter, offer, context)
		if err != nil {
			log.Println("t", now, "mint rejected:", err)
			continue
		}
		log.Println("t", now, "quantity", config.Quantity)
		for _, item := range items {
			log.Println("  pay", item.Amount, "to", item.Recipient.String())
		}
	}
}

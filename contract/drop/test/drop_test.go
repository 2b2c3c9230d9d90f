package test

import (
	"bytes"
	"math/big"
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/meverselabs/mintdrop/common"
	"github.com/meverselabs/mintdrop/common/hash"
	"github.com/meverselabs/mintdrop/contract/drop"
)

var _ = Describe("DropContract", func() {
	var env *dropEnv

	setStage := func(stage *drop.StageConfig) {
		Expect(env.cont.SetPublicStage(env.ccFrom(adminAddr), stage)).To(Succeed())
	}

	BeforeEach(func() {
		env = newDropEnv(150)
		setStage(defaultStage())
		Expect(env.cont.SetCreatorPayouts(env.ccFrom(adminAddr), []drop.CreatorPayout{
			{PayoutAddress: creatorAAddr, BasisPoints: 7000},
			{PayoutAddress: creatorBAddr, BasisPoints: 3000},
		})).To(Succeed())
	})

	Describe("public mint", func() {
		It("prices at the interpolated point and splits the payment", func() {
			items, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(2), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(Succeed())

			// unit price 150, total 300: fee 15, creators 199 and 85
			Expect(items).To(HaveLen(3))
			Expect(items[0].Recipient).To(Equal(feeAddr))
			Expect(items[0].Amount.Int64()).To(Equal(int64(15)))
			Expect(items[1].Recipient).To(Equal(creatorAAddr))
			Expect(items[1].Amount.Int64()).To(Equal(int64(199)))
			Expect(items[2].Recipient).To(Equal(creatorBAddr))
			Expect(items[2].Amount.Int64()).To(Equal(int64(85)))
		})

		It("previews byte-identically to generation", func() {
			context := publicMintContext(feeAddr, minterAddr)
			preview, err := env.cont.PreviewOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(2), context)
			Expect(err).To(Succeed())
			generated, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(2), context)
			Expect(err).To(Succeed())
			Expect(generated).To(Equal(preview))
		})

		It("records the mint as an event only on generation", func() {
			_, err := env.cont.PreviewOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(2), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(Succeed())
			Expect(env.ctx.Events()).To(BeEmpty())

			_, err = env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(2), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(Succeed())
			events := env.ctx.Events()
			Expect(events).To(HaveLen(1))
			Expect(events[0].Contract).To(Equal(dropAddr))
			Expect(events[0].Type).To(Equal("DropMinted"))
			Expect(bytes.HasPrefix(events[0].Result, minterAddr[:])).To(BeTrue())
		})

		It("substitutes the fulfiller when the minter field is zero", func() {
			items, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), publicMintContext(feeAddr, common.ZeroAddr))
			Expect(err).To(Succeed())
			Expect(items).To(HaveLen(3))
			Expect(bytes.HasPrefix(env.ctx.Events()[0].Result, minterAddr[:])).To(BeTrue())
		})

		It("owes nothing for a free stage", func() {
			stage := defaultStage()
			stage.StartPrice = big.NewInt(0)
			stage.EndPrice = big.NewInt(0)
			setStage(stage)
			items, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(2), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(Succeed())
			Expect(items).To(BeEmpty())
			Expect(env.ctx.Events()).To(HaveLen(1))
		})
	})

	Describe("stage window", func() {
		It("is active at the start boundary", func() {
			env.ctx.NextContext(100)
			_, err := env.cont.PreviewOrder(env.ccFrom(minterAddr), minterAddr, mintOffer(1), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(Succeed())
		})

		It("is inactive at the end boundary", func() {
			env.ctx.NextContext(200)
			_, err := env.cont.PreviewOrder(env.ccFrom(minterAddr), minterAddr, mintOffer(1), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(MatchError(drop.ErrStageNotActive))
		})

		It("rejects a public mint when no stage is configured", func() {
			fresh := newDropEnv(150)
			_, err := fresh.cont.PreviewOrder(fresh.ccFrom(minterAddr), minterAddr, mintOffer(1), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(MatchError(drop.ErrStageNotActive))
		})
	})

	Describe("caller gate", func() {
		It("rejects generation from an unknown caller", func() {
			_, err := env.cont.GenerateOrder(env.ccFrom(adminAddr), minterAddr, mintOffer(1), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(MatchError(drop.ErrNotAllowedCaller))
		})

		It("lets anybody preview", func() {
			_, err := env.cont.PreviewOrder(env.ccFrom(minterAddr), minterAddr, mintOffer(1), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(Succeed())
		})

		It("honors caller set changes", func() {
			Expect(env.cont.SetAllowedCaller(env.ccFrom(adminAddr), exchangeAddr, false)).To(Succeed())
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(MatchError(drop.ErrNotAllowedCaller))
		})
	})

	Describe("fee recipient", func() {
		It("rejects the zero fee recipient", func() {
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), publicMintContext(common.ZeroAddr, minterAddr))
			Expect(err).To(MatchError(drop.ErrNullFeeRecipient))
		})

		It("enforces the registry when the stage restricts recipients", func() {
			stage := defaultStage()
			stage.RestrictFeeRecipients = true
			setStage(stage)
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(MatchError(drop.ErrFeeRecipientNotAllowed))

			Expect(env.cont.SetAllowedFeeRecipient(env.ccFrom(adminAddr), feeAddr, true)).To(Succeed())
			_, err = env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(Succeed())
		})
	})

	Describe("payer", func() {
		It("rejects a third party paying for an unrelated minter", func() {
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), payerAddr, mintOffer(1), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(MatchError(drop.ErrPayerNotAllowed))
		})

		It("accepts an allowed payer", func() {
			Expect(env.cont.SetAllowedPayer(env.ccFrom(adminAddr), payerAddr, true)).To(Succeed())
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), payerAddr, mintOffer(1), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(Succeed())
		})

		It("accepts a payer delegated through the registry", func() {
			env.delegation[payerAddr] = minterAddr
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), payerAddr, mintOffer(1), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(Succeed())
		})
	})

	Describe("quota", func() {
		It("allows minting exactly up to the wallet cap", func() {
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(10), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(Succeed())
		})

		It("rejects crossing the wallet cap", func() {
			env.ledger.record(minterAddr, 9)
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(2), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(MatchError(drop.ErrExceedsWalletCap))
		})

		It("rejects crossing the collection supply", func() {
			env.ledger.maxSupply = big.NewInt(5)
			env.ledger.totalMinted = big.NewInt(4)
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(2), publicMintContext(feeAddr, minterAddr))
			Expect(err).To(MatchError(drop.ErrExceedsGlobalSupply))
		})
	})

	Describe("allow list mint", func() {
		var stage *drop.StageConfig
		var otherLeaf hash.Hash256

		BeforeEach(func() {
			stage = defaultStage()
			stage.StageIndex = 2
			stage.MaxSupplyForStage = big.NewInt(5)
			otherLeaf = stageLeaf(payerAddr, stage)
			root := sortedPair(stageLeaf(minterAddr, stage), otherLeaf)
			Expect(env.cont.SetAllowListRoot(env.ccFrom(adminAddr), root)).To(Succeed())
		})

		It("accepts a member with a valid proof", func() {
			context := allowListMintContext(feeAddr, minterAddr, stage, []hash.Hash256{otherLeaf})
			items, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), context)
			Expect(err).To(Succeed())
			Expect(items).To(HaveLen(3))
		})

		It("rejects a proof for another stage", func() {
			tampered := stage.Clone()
			tampered.StartPrice = big.NewInt(1)
			tampered.EndPrice = big.NewInt(1)
			context := allowListMintContext(feeAddr, minterAddr, tampered, []hash.Hash256{otherLeaf})
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), context)
			Expect(err).To(MatchError(drop.ErrInvalidProof))
		})

		It("rejects a non-member", func() {
			context := allowListMintContext(feeAddr, creatorAAddr, stage, []hash.Hash256{otherLeaf})
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), creatorAAddr, mintOffer(1), context)
			Expect(err).To(MatchError(drop.ErrInvalidProof))
		})

		It("enforces the stage supply ceiling", func() {
			env.ledger.totalMinted = big.NewInt(4)
			context := allowListMintContext(feeAddr, minterAddr, stage, []hash.Hash256{otherLeaf})
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(2), context)
			Expect(err).To(MatchError(drop.ErrExceedsStageSupply))

			_, err = env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), context)
			Expect(err).To(Succeed())
		})
	})

	Describe("signed mint", func() {
		var stage *drop.StageConfig
		var salt hash.Hash256

		BeforeEach(func() {
			stage = defaultStage()
			stage.StageIndex = 3
			salt = hash.Hash([]byte("salt-1"))
		})

		It("accepts an authorization from an allowed signer and consumes it", func() {
			key, err := common.GenerateKey()
			Expect(err).To(Succeed())
			Expect(env.cont.SetAllowedSigner(env.ccFrom(adminAddr), common.AddressFromPubkey(key), true)).To(Succeed())

			digest, err := env.cont.SignedMintDigest(env.ccFrom(exchangeAddr), minterAddr, feeAddr, stage, salt)
			Expect(err).To(Succeed())
			sig, err := common.Sign(digest[:], key)
			Expect(err).To(Succeed())
			context := signedMintContext(feeAddr, minterAddr, stage, salt, compactSignature(sig))

			_, err = env.cont.PreviewOrder(env.ccFrom(minterAddr), minterAddr, mintOffer(1), context)
			Expect(err).To(Succeed())
			Expect(env.cont.IsDigestUsed(env.ccFrom(exchangeAddr), digest)).To(BeFalse())

			_, err = env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), context)
			Expect(err).To(Succeed())
			Expect(env.cont.IsDigestUsed(env.ccFrom(exchangeAddr), digest)).To(BeTrue())

			_, err = env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), context)
			Expect(err).To(MatchError(drop.ErrSignatureAlreadyUsed))
			_, err = env.cont.PreviewOrder(env.ccFrom(minterAddr), minterAddr, mintOffer(1), context)
			Expect(err).To(MatchError(drop.ErrSignatureAlreadyUsed))
		})

		It("rejects an authorization from an unknown signer", func() {
			key, err := common.GenerateKey()
			Expect(err).To(Succeed())
			digest, err := env.cont.SignedMintDigest(env.ccFrom(exchangeAddr), minterAddr, feeAddr, stage, salt)
			Expect(err).To(Succeed())
			sig, err := common.Sign(digest[:], key)
			Expect(err).To(Succeed())
			context := signedMintContext(feeAddr, minterAddr, stage, salt, compactSignature(sig))

			_, err = env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), context)
			Expect(err).To(MatchError(drop.ErrInvalidSignature))
		})

		It("restores a consumed digest when the transaction reverts", func() {
			key, err := common.GenerateKey()
			Expect(err).To(Succeed())
			digest, err := env.cont.SignedMintDigest(env.ccFrom(exchangeAddr), minterAddr, feeAddr, stage, salt)
			Expect(err).To(Succeed())
			sig, err := common.Sign(digest[:], key)
			Expect(err).To(Succeed())
			context := signedMintContext(feeAddr, minterAddr, stage, salt, compactSignature(sig))

			sn := env.ctx.Snapshot()
			_, err = env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), context)
			Expect(err).To(MatchError(drop.ErrInvalidSignature))
			Expect(env.cont.IsDigestUsed(env.ccFrom(exchangeAddr), digest)).To(BeTrue())
			env.ctx.Revert(sn)
			Expect(env.cont.IsDigestUsed(env.ccFrom(exchangeAddr), digest)).To(BeFalse())
		})

		It("binds the digest to the salt", func() {
			key, err := common.GenerateKey()
			Expect(err).To(Succeed())
			Expect(env.cont.SetAllowedSigner(env.ccFrom(adminAddr), common.AddressFromPubkey(key), true)).To(Succeed())
			digest, err := env.cont.SignedMintDigest(env.ccFrom(exchangeAddr), minterAddr, feeAddr, stage, salt)
			Expect(err).To(Succeed())
			sig, err := common.Sign(digest[:], key)
			Expect(err).To(Succeed())

			otherSalt := hash.Hash([]byte("salt-2"))
			context := signedMintContext(feeAddr, minterAddr, stage, otherSalt, compactSignature(sig))
			_, err = env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), context)
			Expect(err).To(MatchError(drop.ErrInvalidSignature))
		})
	})

	Describe("malformed requests", func() {
		It("rejects an unsupported context version", func() {
			context := publicMintContext(feeAddr, minterAddr)
			context[0] = 0x01
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, mintOffer(1), context)
			Expect(err).To(MatchError(drop.ErrUnsupportedVersion))
		})

		It("rejects an offer that is not a single collection quantity", func() {
			offer := mintOffer(1)
			offer[0].Token = registryAddr
			_, err := env.cont.GenerateOrder(env.ccFrom(exchangeAddr), minterAddr, offer, publicMintContext(feeAddr, minterAddr))
			Expect(err).To(MatchError(drop.ErrMalformedOfferedItem))
		})
	})

	Describe("administration", func() {
		It("rejects writers other than the master", func() {
			Expect(env.cont.SetPublicStage(env.ccFrom(minterAddr), defaultStage())).To(HaveOccurred())
			Expect(env.cont.SetAllowedSigner(env.ccFrom(minterAddr), minterAddr, true)).To(HaveOccurred())
			Expect(env.cont.SetCreatorPayouts(env.ccFrom(minterAddr), []drop.CreatorPayout{
				{PayoutAddress: creatorAAddr, BasisPoints: 10000},
			})).To(HaveOccurred())
		})

		It("clears the stage supply ceiling on the public stage", func() {
			stage := defaultStage()
			stage.StageIndex = 9
			stage.MaxSupplyForStage = big.NewInt(7)
			setStage(stage)
			stored := env.cont.PublicStage(env.ccFrom(exchangeAddr))
			Expect(stored.StageIndex).To(Equal(uint64(0)))
			Expect(stored.MaxSupplyForStage.Sign()).To(Equal(0))
		})

		It("enumerates registry members through the front", func() {
			Expect(env.cont.SetAllowedSigner(env.ccFrom(adminAddr), creatorAAddr, true)).To(Succeed())
			Expect(env.cont.SetAllowedSigner(env.ccFrom(adminAddr), creatorBAddr, true)).To(Succeed())
			Expect(env.cont.SetAllowedSigner(env.ccFrom(adminAddr), creatorAAddr, false)).To(Succeed())

			// the invocation machinery reaches methods by name on the front
			method := reflect.ValueOf(env.cont.Front()).MethodByName("AllowedSigners")
			Expect(method.IsValid()).To(BeTrue())
			out := method.Call([]reflect.Value{reflect.ValueOf(env.ccFrom(exchangeAddr))})
			Expect(out).To(HaveLen(1))
			Expect(out[0].Interface()).To(Equal([]common.Address{creatorBAddr}))
		})
	})
})

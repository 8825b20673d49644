package usecase

import (
	"strings"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/ethereum"
	"github.com/openloot/goapi/base/log"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/auction"
)

type VerifierCfg struct {
	ChainId domain.ChainId

	// VerifyingContract is the engine identity bound into every signed
	// bid. A signature produced for another deployment never verifies
	// here.
	VerifyingContract domain.Address

	Recoverer ethereum.SignerRecoverer
	NonceRepo auction.NonceRepo
}

type impl struct {
	chainId           domain.ChainId
	verifyingContract domain.Address
	recoverer         ethereum.SignerRecoverer
	nonceRepo         auction.NonceRepo
}

func New(cfg *VerifierCfg) auction.Verifier {
	return &impl{
		chainId:           cfg.ChainId,
		verifyingContract: cfg.VerifyingContract,
		recoverer:         cfg.Recoverer,
		nonceRepo:         cfg.NonceRepo,
	}
}

func (im *impl) Verify(ctx ctx.Ctx, bid *auction.Bid, v uint8, r, s string) error {
	if len(bid.TokenIds) != len(bid.Amounts) {
		return domain.ErrLengthMismatch
	}

	digest, err := bid.Digest(im.chainId, im.verifyingContract)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": bid.AuctionId,
		}).Error("failed to build bid digest")
		return domain.ErrInvalidSignature
	}

	sig, err := ethereum.CombineSignature(v, r, s)
	if err != nil {
		return domain.ErrInvalidSignature
	}

	signer, err := im.recoverer.RecoverSigner(digest, sig)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": bid.AuctionId,
		}).Error("failed to recover signer")
		return domain.ErrInvalidSignature
	}

	if !strings.EqualFold(signer.Hex(), string(bid.Bidder)) {
		return domain.ErrInvalidSignature
	}

	current, err := im.nonceRepo.Get(ctx, bid.AuctionId)
	if err != nil {
		return err
	}
	if current != bid.Nonce {
		return domain.ErrNonceMismatch
	}
	return nil
}

func (im *impl) GetNonce(ctx ctx.Ctx, auctionId domain.AuctionId) (int64, error) {
	return im.nonceRepo.Get(ctx, auctionId)
}

func (im *impl) ConsumeNonce(ctx ctx.Ctx, auctionId domain.AuctionId, expected int64) error {
	return im.nonceRepo.Consume(ctx, auctionId, expected)
}

func (im *impl) RestoreNonce(ctx ctx.Ctx, auctionId domain.AuctionId, expected int64) error {
	return im.nonceRepo.Restore(ctx, auctionId, expected)
}

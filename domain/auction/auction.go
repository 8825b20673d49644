package auction

import (
	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
)

// Bid is the off-chain negotiated auction commitment. It is never
// persisted; every settlement call reconstructs it from the caller's
// input and checks it against the signature the bidder produced.
type Bid struct {
	AuctionId domain.AuctionId `json:"auctionId"`
	TokenIds  []domain.TokenId `json:"tokenIds"`
	Amounts   []int64          `json:"amounts"`
	Bidder    domain.Address   `json:"bidder"`
	Price     string           `json:"price"`
	Token     domain.Address   `json:"token"`
	Nonce     int64            `json:"nonce"`
}

// Nonce is the replay guard for one auction. Consuming a bid increments
// Value, permanently invalidating the exact signed message.
type Nonce struct {
	ChainId   domain.ChainId   `json:"chainId" bson:"chainId"`
	AuctionId domain.AuctionId `json:"auctionId" bson:"auctionId"`
	Value     int64            `json:"value" bson:"value"`
}

type NonceRepo interface {
	// Get returns the current nonce for the auction, zero when the
	// auction has never been settled.
	Get(c ctx.Ctx, auctionId domain.AuctionId) (int64, error)

	// Consume advances the stored nonce from expected to expected+1.
	// It returns domain.ErrNonceMismatch when the stored nonce moved,
	// making the consumption an exactly-once claim on the signature.
	Consume(c ctx.Ctx, auctionId domain.AuctionId, expected int64) error

	// Restore walks the stored nonce back from expected+1 to expected
	// when the settlement that consumed it failed, un-burning the signed
	// bid so it can be retried. It returns domain.ErrNonceMismatch when
	// the stored nonce is not expected+1 anymore.
	Restore(c ctx.Ctx, auctionId domain.AuctionId, expected int64) error
}

// Verifier checks a bid's signature and nonce without mutating state.
// Callers consume the nonce through NonceRepo after a successful
// verification and before moving any asset or payment.
type Verifier interface {
	Verify(c ctx.Ctx, bid *Bid, v uint8, r, s string) error
	GetNonce(c ctx.Ctx, auctionId domain.AuctionId) (int64, error)
	ConsumeNonce(c ctx.Ctx, auctionId domain.AuctionId, expected int64) error
	RestoreNonce(c ctx.Ctx, auctionId domain.AuctionId, expected int64) error
}

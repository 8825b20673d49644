package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/log"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/auction"
	"github.com/openloot/goapi/service/query"
)

type nonceRepoImpl struct {
	q       query.Mongo
	chainId domain.ChainId
}

// NewNonceRepo builds the auction nonce store. The backing collection
// needs a unique index on (chainId, auctionId) so that two racing
// first-time consumptions cannot both upsert.
func NewNonceRepo(q query.Mongo, chainId domain.ChainId) auction.NonceRepo {
	return &nonceRepoImpl{q, chainId}
}

func (im *nonceRepoImpl) Get(ctx ctx.Ctx, auctionId domain.AuctionId) (int64, error) {
	nonce := &auction.Nonce{}
	err := im.q.FindOne(ctx, domain.TableAuctionNonces, bson.M{
		"chainId":   im.chainId,
		"auctionId": auctionId,
	}, nonce)
	if err == query.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
		}).Error("failed to q.FindOne")
		return 0, err
	}
	return nonce.Value, nil
}

func (im *nonceRepoImpl) Consume(ctx ctx.Ctx, auctionId domain.AuctionId, expected int64) error {
	selector := bson.M{
		"chainId":   im.chainId,
		"auctionId": auctionId,
		"value":     expected,
	}
	update := bson.M{
		"$inc": bson.M{"value": 1},
	}

	// upsert covers the never-settled auction whose nonce document does
	// not exist yet; a duplicate key there means someone else consumed
	// nonce zero first
	err := im.q.CustomPatch(ctx, domain.TableAuctionNonces, selector, update, expected == 0)
	if err == query.ErrNotFound || err == query.ErrDuplicateKey {
		return domain.ErrNonceMismatch
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
			"expected":  expected,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}

func (im *nonceRepoImpl) Restore(ctx ctx.Ctx, auctionId domain.AuctionId, expected int64) error {
	// the conditional selector leaves a nonce alone once another
	// settlement advanced it past expected+1
	selector := bson.M{
		"chainId":   im.chainId,
		"auctionId": auctionId,
		"value":     expected + 1,
	}
	update := bson.M{
		"$inc": bson.M{"value": -1},
	}

	err := im.q.CustomPatch(ctx, domain.TableAuctionNonces, selector, update, false)
	if err == query.ErrNotFound {
		return domain.ErrNonceMismatch
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
			"expected":  expected,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}

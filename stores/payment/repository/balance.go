package repository

import (
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/log"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/payment"
	"github.com/openloot/goapi/service/query"
)

const balanceCasAttempts = 3

type balanceRepoImpl struct {
	q       query.Mongo
	chainId domain.ChainId
}

func NewBalanceRepo(q query.Mongo, chainId domain.ChainId) payment.BalanceRepo {
	return &balanceRepoImpl{q, chainId}
}

// Amounts are persisted as decimal strings, so credits and debits go
// through a compare-and-swap on the previous amount instead of $inc.
func (im *balanceRepoImpl) Add(ctx ctx.Ctx, currency domain.Currency, amount *big.Int) error {
	return im.adjust(ctx, currency, amount)
}

func (im *balanceRepoImpl) Sub(ctx ctx.Ctx, currency domain.Currency, amount *big.Int) error {
	return im.adjust(ctx, currency, new(big.Int).Neg(amount))
}

func (im *balanceRepoImpl) adjust(ctx ctx.Ctx, currency domain.Currency, delta *big.Int) error {
	var lastErr error
	for i := 0; i < balanceCasAttempts; i++ {
		current, err := im.Get(ctx, currency)
		if err != nil && err != domain.ErrNotFound {
			return err
		}

		old := new(big.Int)
		exists := err == nil
		if exists {
			if old, err = domain.ParseAmount(current.Amount); err != nil {
				ctx.WithFields(log.Fields{
					"err":      err,
					"currency": currency.Key(),
				}).Error("failed to parse stored balance")
				return err
			}
		}

		next := new(big.Int).Add(old, delta)
		if next.Sign() < 0 {
			return domain.ErrInsufficientRemaining
		}

		if !exists {
			err = im.q.Insert(ctx, domain.TablePendingBalances, &payment.PendingBalance{
				ChainId:     im.chainId,
				CurrencyKey: currency.Key(),
				Currency:    currency,
				Amount:      next.String(),
				UpdatedAt:   time.Now(),
			})
			if err == query.ErrDuplicateKey {
				lastErr = err
				continue
			}
			return err
		}

		selector := bson.M{
			"chainId":     im.chainId,
			"currencyKey": currency.Key(),
			"amount":      old.String(),
		}
		update := bson.M{"$set": bson.M{
			"amount":    next.String(),
			"updatedAt": time.Now(),
		}}
		err = im.q.CustomPatch(ctx, domain.TablePendingBalances, selector, update, false)
		if err == nil {
			return nil
		}
		if err != query.ErrNotFound {
			ctx.WithFields(log.Fields{
				"err":      err,
				"currency": currency.Key(),
			}).Error("failed to q.CustomPatch")
			return err
		}
		// the stored amount moved under us, retry with a fresh read
		lastErr = err
	}

	ctx.WithFields(log.Fields{
		"err":      lastErr,
		"currency": currency.Key(),
	}).Error("failed to adjust balance after retries")
	return domain.ErrConflict
}

func (im *balanceRepoImpl) Get(ctx ctx.Ctx, currency domain.Currency) (*payment.PendingBalance, error) {
	res := &payment.PendingBalance{}
	selector := bson.M{"chainId": im.chainId, "currencyKey": currency.Key()}
	if err := im.q.FindOne(ctx, domain.TablePendingBalances, selector, res); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": currency.Key(),
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *balanceRepoImpl) FindAll(ctx ctx.Ctx) ([]*payment.PendingBalance, error) {
	res := []*payment.PendingBalance{}
	if err := im.q.Search(ctx, domain.TablePendingBalances, 0, 0, "currencyKey", bson.M{"chainId": im.chainId}, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

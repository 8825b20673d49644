package usecase

import (
	"math/big"
	"time"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/log"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/event"
	"github.com/openloot/goapi/domain/ledger"
	"github.com/openloot/goapi/domain/payment"
	"github.com/openloot/goapi/domain/round"
)

type RoundsCfg struct {
	// EngineAddress custodies escrowed collectables until purchase or
	// recovery
	EngineAddress domain.Address
	Owner         domain.Address

	RoundRepo  round.Repo
	Assets     ledger.AssetLedger
	Settlement payment.Settlement
	EventRepo  event.Repo
}

type impl struct {
	engineAddress domain.Address
	owner         domain.Address
	roundRepo     round.Repo
	assets        ledger.AssetLedger
	settlement    payment.Settlement
	eventRepo     event.Repo
}

func New(cfg *RoundsCfg) round.UseCase {
	return &impl{
		engineAddress: cfg.EngineAddress.ToLower(),
		owner:         cfg.Owner.ToLower(),
		roundRepo:     cfg.RoundRepo,
		assets:        cfg.Assets,
		settlement:    cfg.Settlement,
		eventRepo:     cfg.EventRepo,
	}
}

func buildCollectables(itemIds []domain.TokenId, amounts []int64, currencies []domain.Currency, prices []string) ([]round.Collectable, error) {
	if len(itemIds) == 0 ||
		len(itemIds) != len(amounts) ||
		len(itemIds) != len(currencies) ||
		len(itemIds) != len(prices) {
		return nil, domain.ErrLengthMismatch
	}

	collectables := make([]round.Collectable, 0, len(itemIds))
	for i := range itemIds {
		if amounts[i] <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if err := currencies[i].Validate(); err != nil {
			return nil, err
		}
		if p, err := domain.ParseAmount(prices[i]); err != nil || p.Sign() <= 0 {
			return nil, domain.ErrInvalidPrice
		}
		collectables = append(collectables, round.Collectable{
			ItemId:    itemIds[i],
			Available: amounts[i],
			Currency:  currencies[i],
			Price:     prices[i],
		})
	}
	return collectables, nil
}

func (im *impl) AddToCollection(ctx ctx.Ctx, curator domain.Address, itemIds []domain.TokenId, amounts []int64, currencies []domain.Currency, prices []string, lockTimestamp time.Time) (*round.Round, error) {
	collectables, err := buildCollectables(itemIds, amounts, currencies, prices)
	if err != nil {
		return nil, err
	}
	if !lockTimestamp.After(time.Now()) {
		return nil, domain.ErrInvalidLock
	}

	if err := im.escrow(ctx, curator, collectables); err != nil {
		return nil, err
	}

	index, err := im.roundRepo.NextIndex(ctx)
	if err != nil {
		im.unescrow(ctx, curator, collectables)
		return nil, err
	}

	r := &round.Round{
		RoundIndex:    index,
		Curator:       curator.ToLower(),
		Collectables:  collectables,
		LockTimestamp: lockTimestamp,
		CreatedAt:     time.Now(),
	}
	if err := im.roundRepo.Create(ctx, r); err != nil {
		ctx.WithFields(log.Fields{
			"err":        err,
			"roundIndex": index,
		}).Error("failed to roundRepo.Create")
		im.unescrow(ctx, curator, collectables)
		return nil, err
	}

	im.record(ctx, event.TypeRoundItemAdded, map[string]interface{}{
		"roundIndex": index,
		"curator":    r.Curator,
		"items":      len(collectables),
	})
	return r, nil
}

func (im *impl) AddToRound(ctx ctx.Ctx, curator domain.Address, roundIndex int64, itemIds []domain.TokenId, amounts []int64, currencies []domain.Currency, prices []string) error {
	collectables, err := buildCollectables(itemIds, amounts, currencies, prices)
	if err != nil {
		return err
	}

	r, err := im.roundRepo.FindOne(ctx, roundIndex)
	if err != nil {
		return err
	}
	if !r.Curator.Equals(curator) {
		return domain.ErrUnauthorized
	}

	if err := im.escrow(ctx, curator, collectables); err != nil {
		return err
	}

	if err := im.roundRepo.Append(ctx, roundIndex, collectables); err != nil {
		im.unescrow(ctx, curator, collectables)
		return err
	}

	im.record(ctx, event.TypeRoundItemAdded, map[string]interface{}{
		"roundIndex": roundIndex,
		"curator":    r.Curator,
		"items":      len(collectables),
	})
	return nil
}

func (im *impl) BuyCollectable(ctx ctx.Ctx, buyer domain.Address, roundIndex int64, collectableIndex int, qty int64, attachedValue string) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}

	col, err := im.GetCollectable(ctx, roundIndex, collectableIndex)
	if err != nil {
		return err
	}
	if col.Available < qty {
		return domain.ErrSoldOut
	}

	unit, err := domain.ParseAmount(col.Price)
	if err != nil {
		return err
	}
	total := new(big.Int).Mul(unit, big.NewInt(qty))

	attached, err := parseAttached(attachedValue)
	if err != nil {
		return domain.ErrWrongPayment
	}
	if col.Currency.IsNative() {
		if attached.Cmp(total) != 0 {
			return domain.ErrWrongPayment
		}
	} else if attached.Sign() != 0 {
		return domain.ErrWrongPayment
	}

	// the conditional decrement is the exactly-once reservation; it is
	// handed back when a later leg fails
	if err := im.roundRepo.DecrementAvailable(ctx, roundIndex, collectableIndex, qty); err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrSoldOut
		}
		return err
	}

	if err := im.settlement.Collect(ctx, buyer, total, col.Currency, attached); err != nil {
		im.release(ctx, roundIndex, collectableIndex, qty)
		return err
	}

	if err := im.assets.Transfer(ctx, im.engineAddress, im.engineAddress, buyer, col.ItemId, qty); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": col.ItemId,
		}).Error("failed to transfer collectable")
		if rerr := im.settlement.Refund(ctx, buyer, total, col.Currency); rerr != nil {
			ctx.WithFields(log.Fields{
				"err":    rerr,
				"itemId": col.ItemId,
			}).Error("failed to refund after transfer failure")
		}
		im.release(ctx, roundIndex, collectableIndex, qty)
		return err
	}

	// proceeds stay on the pending balance until the owner withdraws them

	im.record(ctx, event.TypeItemPurchased, map[string]interface{}{
		"roundIndex": roundIndex,
		"itemId":     col.ItemId,
		"buyer":      buyer.ToLower(),
		"qty":        qty,
	})
	return nil
}

func (im *impl) WithdrawERC1155(ctx ctx.Ctx, caller domain.Address, roundIndex int64, collectableIndex int, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}

	r, err := im.roundRepo.FindOne(ctx, roundIndex)
	if err != nil {
		return err
	}
	if !r.Curator.Equals(caller) {
		return domain.ErrUnauthorized
	}
	if time.Now().Before(r.LockTimestamp) {
		return domain.ErrLockActive
	}
	if collectableIndex < 0 || collectableIndex >= len(r.Collectables) {
		return domain.ErrNotFound
	}
	col := r.Collectables[collectableIndex]
	if col.Available < qty {
		return domain.ErrInsufficientRemaining
	}

	if err := im.roundRepo.DecrementAvailable(ctx, roundIndex, collectableIndex, qty); err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrInsufficientRemaining
		}
		return err
	}

	if err := im.assets.Transfer(ctx, im.engineAddress, im.engineAddress, r.Curator, col.ItemId, qty); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": col.ItemId,
		}).Error("failed to transfer recovered items")
		im.release(ctx, roundIndex, collectableIndex, qty)
		return err
	}

	im.record(ctx, event.TypeItemRecovered, map[string]interface{}{
		"roundIndex": roundIndex,
		"itemId":     col.ItemId,
		"qty":        qty,
	})
	return nil
}

func (im *impl) WithdrawAllERC1155(ctx ctx.Ctx, caller domain.Address, roundIndex int64) error {
	r, err := im.roundRepo.FindOne(ctx, roundIndex)
	if err != nil {
		return err
	}
	if !r.Curator.Equals(caller) {
		return domain.ErrUnauthorized
	}
	if time.Now().Before(r.LockTimestamp) {
		return domain.ErrLockActive
	}

	// draining entry by entry keeps the call idempotent: entries already
	// at zero are skipped, racing buyers just shrink the drained amount
	for i, col := range r.Collectables {
		if col.Available <= 0 {
			continue
		}
		if err := im.roundRepo.DecrementAvailable(ctx, roundIndex, i, col.Available); err != nil {
			if err == domain.ErrNotFound {
				continue
			}
			return err
		}
		if err := im.assets.Transfer(ctx, im.engineAddress, im.engineAddress, r.Curator, col.ItemId, col.Available); err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"itemId": col.ItemId,
			}).Error("failed to transfer recovered items")
			im.release(ctx, roundIndex, i, col.Available)
			return err
		}
		im.record(ctx, event.TypeItemRecovered, map[string]interface{}{
			"roundIndex": roundIndex,
			"itemId":     col.ItemId,
			"qty":        col.Available,
		})
	}
	return nil
}

func (im *impl) SweepERC1155(ctx ctx.Ctx, caller domain.Address, itemId domain.TokenId, qty int64) error {
	if !caller.Equals(im.owner) {
		return domain.ErrUnauthorized
	}
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}

	custody, err := im.assets.BalanceOf(ctx, im.engineAddress, itemId)
	if err != nil {
		return err
	}
	outstanding, err := im.roundRepo.OutstandingAvailable(ctx, itemId)
	if err != nil {
		return err
	}
	if qty > custody-outstanding {
		return domain.ErrInsufficientUnaccounted
	}

	if err := im.assets.Transfer(ctx, im.engineAddress, im.engineAddress, im.owner, itemId, qty); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("failed to sweep surplus")
		return err
	}

	im.record(ctx, event.TypeSurplusSwept, map[string]interface{}{
		"itemId": itemId,
		"qty":    qty,
	})
	return nil
}

func (im *impl) GetRound(ctx ctx.Ctx, roundIndex int64) (*round.Round, error) {
	return im.roundRepo.FindOne(ctx, roundIndex)
}

func (im *impl) GetCollectable(ctx ctx.Ctx, roundIndex int64, collectableIndex int) (*round.Collectable, error) {
	r, err := im.roundRepo.FindOne(ctx, roundIndex)
	if err != nil {
		return nil, err
	}
	if collectableIndex < 0 || collectableIndex >= len(r.Collectables) {
		return nil, domain.ErrNotFound
	}
	col := r.Collectables[collectableIndex]
	return &col, nil
}

// escrow pulls every collectable into the engine's custody, unwinding
// completed pulls when a later one fails.
func (im *impl) escrow(ctx ctx.Ctx, curator domain.Address, collectables []round.Collectable) error {
	for i, col := range collectables {
		if err := im.assets.Transfer(ctx, im.engineAddress, curator, im.engineAddress, col.ItemId, col.Available); err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"itemId": col.ItemId,
			}).Error("failed to escrow collectable")
			im.unescrow(ctx, curator, collectables[:i])
			return err
		}
	}
	return nil
}

func (im *impl) unescrow(ctx ctx.Ctx, curator domain.Address, collectables []round.Collectable) {
	for _, col := range collectables {
		if err := im.assets.Transfer(ctx, im.engineAddress, im.engineAddress, curator, col.ItemId, col.Available); err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"itemId": col.ItemId,
			}).Error("failed to return escrowed collectable")
		}
	}
}

func (im *impl) release(ctx ctx.Ctx, roundIndex int64, collectableIndex int, qty int64) {
	if err := im.roundRepo.IncrementAvailable(ctx, roundIndex, collectableIndex, qty); err != nil {
		ctx.WithFields(log.Fields{
			"err":        err,
			"roundIndex": roundIndex,
			"index":      collectableIndex,
		}).Error("failed to roundRepo.IncrementAvailable")
	}
}

func (im *impl) record(ctx ctx.Ctx, t event.Type, payload map[string]interface{}) {
	if err := im.eventRepo.Insert(ctx, &event.Event{Type: t, Payload: payload}); err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"type": t,
		}).Error("failed to eventRepo.Insert")
	}
}

func parseAttached(value string) (*big.Int, error) {
	if value == "" {
		return big.NewInt(0), nil
	}
	return domain.ParseAmount(value)
}

package usecase

import (
	"math/big"
	"time"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/log"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/auction"
	"github.com/openloot/goapi/domain/event"
	"github.com/openloot/goapi/domain/ledger"
	"github.com/openloot/goapi/domain/payment"
	"github.com/openloot/goapi/domain/sale"
)

type ListingCfg struct {
	// EngineAddress acts as the transfer operator, so sellers must have
	// approved it on the asset ledger before their sale can settle
	EngineAddress domain.Address

	// ClaimSeller is the account whose assets back signature-settled
	// claims
	ClaimSeller domain.Address

	FeeBps int64

	SaleRepo   sale.Repo
	Assets     ledger.AssetLedger
	Settlement payment.Settlement
	Verifier   auction.Verifier
	EventRepo  event.Repo
}

type impl struct {
	engineAddress domain.Address
	claimSeller   domain.Address
	feeBps        int64
	saleRepo      sale.Repo
	assets        ledger.AssetLedger
	settlement    payment.Settlement
	verifier      auction.Verifier
	eventRepo     event.Repo
}

func New(cfg *ListingCfg) sale.UseCase {
	return &impl{
		engineAddress: cfg.EngineAddress.ToLower(),
		claimSeller:   cfg.ClaimSeller.ToLower(),
		feeBps:        cfg.FeeBps,
		saleRepo:      cfg.SaleRepo,
		assets:        cfg.Assets,
		settlement:    cfg.Settlement,
		verifier:      cfg.Verifier,
		eventRepo:     cfg.EventRepo,
	}
}

func (im *impl) ListNewSale(ctx ctx.Ctx, seller domain.Address, itemIds []domain.TokenId, amounts []int64, price string, currency domain.Currency) (*sale.Sale, error) {
	if len(itemIds) == 0 || len(itemIds) != len(amounts) {
		return nil, domain.ErrInvalidBundle
	}
	for _, qty := range amounts {
		if qty <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}
	p, err := domain.ParseAmount(price)
	if err != nil || p.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	if err := currency.Validate(); err != nil {
		return nil, err
	}

	// operator approval is only required once a buyer shows up, but an
	// unapproved seller's sale can never settle, so flag it early
	if approved, err := im.assets.IsApprovedForAll(ctx, seller, im.engineAddress); err == nil && !approved {
		ctx.WithFields(log.Fields{
			"seller": seller.ToLowerStr(),
		}).Warn("seller has not approved the engine operator")
	}

	id, err := im.saleRepo.NextId(ctx)
	if err != nil {
		return nil, err
	}

	s := &sale.Sale{
		SaleId:    id,
		Seller:    seller.ToLower(),
		ItemIds:   itemIds,
		Amounts:   amounts,
		Price:     price,
		Currency:  currency,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := im.saleRepo.Create(ctx, s); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"saleId": id,
		}).Error("failed to saleRepo.Create")
		return nil, err
	}

	im.record(ctx, event.TypeSaleCreated, map[string]interface{}{
		"saleId": id,
		"seller": s.Seller,
		"price":  price,
	})
	return s, nil
}

func (im *impl) CancelSale(ctx ctx.Ctx, caller domain.Address, id domain.SaleId) error {
	s, err := im.saleRepo.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if !s.Seller.Equals(caller) {
		return domain.ErrNotSeller
	}
	if err := im.saleRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	im.record(ctx, event.TypeSaleCancelled, map[string]interface{}{
		"saleId": id,
	})
	return nil
}

func (im *impl) BuyFromSale(ctx ctx.Ctx, buyer domain.Address, id domain.SaleId, attachedValue string) error {
	s, err := im.saleRepo.FindOne(ctx, id)
	if err != nil {
		return err
	}
	price, err := domain.ParseAmount(s.Price)
	if err != nil {
		return err
	}
	attached, err := parseAttached(attachedValue)
	if err != nil {
		return domain.ErrWrongPayment
	}

	// the flag flip is the exactly-once claim on the sale; everything
	// after it compensates on failure
	if err := im.saleRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	if err := im.settlement.Collect(ctx, buyer, price, s.Currency, attached); err != nil {
		im.reactivate(ctx, id)
		return err
	}

	// payout runs before the asset leg: the buyer never approved the
	// engine as operator, so collected funds can always be unwound but
	// delivered assets cannot
	if err := im.settlement.Payout(ctx, s.Seller, price, s.Currency, im.feeBps); err != nil {
		if rerr := im.settlement.Refund(ctx, buyer, price, s.Currency); rerr != nil {
			ctx.WithFields(log.Fields{
				"err":    rerr,
				"saleId": id,
			}).Error("failed to refund after payout failure")
		}
		im.reactivate(ctx, id)
		return err
	}

	if err := im.transferBundle(ctx, s.Seller, buyer, s.ItemIds, s.Amounts); err != nil {
		if rerr := im.settlement.ReversePayout(ctx, s.Seller, price, s.Currency, im.feeBps); rerr != nil {
			ctx.WithFields(log.Fields{
				"err":    rerr,
				"saleId": id,
			}).Error("failed to reverse payout after transfer failure")
		}
		if rerr := im.settlement.Refund(ctx, buyer, price, s.Currency); rerr != nil {
			ctx.WithFields(log.Fields{
				"err":    rerr,
				"saleId": id,
			}).Error("failed to refund after transfer failure")
		}
		im.reactivate(ctx, id)
		return err
	}

	im.record(ctx, event.TypeSaleCompleted, map[string]interface{}{
		"saleId": id,
		"seller": s.Seller,
		"buyer":  buyer.ToLower(),
		"price":  s.Price,
	})
	return nil
}

func (im *impl) SellerClaimBySig(ctx ctx.Ctx, bid *auction.Bid, v uint8, r, sv string) error {
	if err := im.verifier.Verify(ctx, bid, v, r, sv); err != nil {
		return err
	}
	price, err := domain.ParseAmount(bid.Price)
	if err != nil || price.Sign() <= 0 {
		return domain.ErrInvalidPrice
	}
	currency := bidCurrency(bid)

	// consuming the nonce is the exactly-once claim on the signature;
	// failures past this point restore it so the signed bid stays usable
	if err := im.verifier.ConsumeNonce(ctx, bid.AuctionId, bid.Nonce); err != nil {
		return err
	}

	var attached *big.Int
	if currency.IsNative() {
		attached = price
	}
	if err := im.settlement.Collect(ctx, bid.Bidder, price, currency, attached); err != nil {
		im.restoreNonce(ctx, bid)
		return err
	}

	if err := im.settlement.Payout(ctx, im.claimSeller, price, currency, im.feeBps); err != nil {
		if rerr := im.settlement.Refund(ctx, bid.Bidder, price, currency); rerr != nil {
			ctx.WithFields(log.Fields{
				"err":       rerr,
				"auctionId": bid.AuctionId,
			}).Error("failed to refund after payout failure")
		}
		im.restoreNonce(ctx, bid)
		return err
	}

	if err := im.transferBundle(ctx, im.claimSeller, bid.Bidder, bid.TokenIds, bid.Amounts); err != nil {
		if rerr := im.settlement.ReversePayout(ctx, im.claimSeller, price, currency, im.feeBps); rerr != nil {
			ctx.WithFields(log.Fields{
				"err":       rerr,
				"auctionId": bid.AuctionId,
			}).Error("failed to reverse payout after transfer failure")
		}
		if rerr := im.settlement.Refund(ctx, bid.Bidder, price, currency); rerr != nil {
			ctx.WithFields(log.Fields{
				"err":       rerr,
				"auctionId": bid.AuctionId,
			}).Error("failed to refund after transfer failure")
		}
		im.restoreNonce(ctx, bid)
		return err
	}

	im.record(ctx, event.TypeAuctionSettled, map[string]interface{}{
		"auctionId": bid.AuctionId,
		"bidder":    bid.Bidder.ToLower(),
		"price":     bid.Price,
		"nonce":     bid.Nonce,
	})
	return nil
}

func (im *impl) GetSale(ctx ctx.Ctx, id domain.SaleId) (*sale.Sale, error) {
	return im.saleRepo.FindOne(ctx, id)
}

func (im *impl) GetSales(ctx ctx.Ctx, opts ...sale.FindOptions) ([]*sale.Sale, error) {
	return im.saleRepo.FindAll(ctx, opts...)
}

// transferBundle moves every (id, qty) pair and rolls back completed
// pairs when a later one fails.
func (im *impl) transferBundle(ctx ctx.Ctx, from, to domain.Address, itemIds []domain.TokenId, amounts []int64) error {
	for i := range itemIds {
		if err := im.assets.Transfer(ctx, im.engineAddress, from, to, itemIds[i], amounts[i]); err != nil {
			// the return leg is initiated by the recipient, who may never
			// have approved the engine as operator
			for j := i - 1; j >= 0; j-- {
				if rerr := im.assets.Transfer(ctx, to, to, from, itemIds[j], amounts[j]); rerr != nil {
					ctx.WithFields(log.Fields{
						"err":    rerr,
						"itemId": itemIds[j],
					}).Error("failed to reverse partial bundle transfer")
				}
			}
			return err
		}
	}
	return nil
}

func (im *impl) restoreNonce(ctx ctx.Ctx, bid *auction.Bid) {
	if err := im.verifier.RestoreNonce(ctx, bid.AuctionId, bid.Nonce); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": bid.AuctionId,
		}).Error("failed to verifier.RestoreNonce")
	}
}

func (im *impl) reactivate(ctx ctx.Ctx, id domain.SaleId) {
	if err := im.saleRepo.Reactivate(ctx, id); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"saleId": id,
		}).Error("failed to saleRepo.Reactivate")
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

func bidCurrency(bid *auction.Bid) domain.Currency {
	if bid.Token.IsEmpty() || bid.Token.Equals(domain.EmptyAddress) {
		return domain.NativeCurrency()
	}
	return domain.TokenCurrency(bid.Token)
}

func parseAttached(value string) (*big.Int, error) {
	if value == "" {
		return big.NewInt(0), nil
	}
	return domain.ParseAmount(value)
}

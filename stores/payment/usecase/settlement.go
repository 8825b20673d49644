package usecase

import (
	"math/big"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/log"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/ledger"
	"github.com/openloot/goapi/domain/payment"
)

const feeDenominator = 10000

type SettlementCfg struct {
	// EngineAddress is the holding account every collected payment lands
	// on before payout or withdrawal
	EngineAddress domain.Address
	Treasury      domain.Address
	Owner         domain.Address
	Ledgers       ledger.Registry
	BalanceRepo   payment.BalanceRepo
}

type impl struct {
	engineAddress domain.Address
	treasury      domain.Address
	owner         domain.Address
	ledgers       ledger.Registry
	balanceRepo   payment.BalanceRepo
}

func New(cfg *SettlementCfg) payment.Settlement {
	return &impl{
		engineAddress: cfg.EngineAddress.ToLower(),
		treasury:      cfg.Treasury.ToLower(),
		owner:         cfg.Owner.ToLower(),
		ledgers:       cfg.Ledgers,
		balanceRepo:   cfg.BalanceRepo,
	}
}

func (im *impl) Collect(ctx ctx.Ctx, payer domain.Address, amount *big.Int, currency domain.Currency, attachedValue *big.Int) error {
	l, err := im.ledgers.Resolve(ctx, currency)
	if err != nil {
		return err
	}

	switch currency.Kind {
	case domain.CurrencyKindNative:
		if attachedValue == nil || attachedValue.Cmp(amount) != 0 {
			return domain.ErrInsufficientPayment
		}
		if err := l.TransferFrom(ctx, im.engineAddress, payer, im.engineAddress, amount); err != nil {
			ctx.WithFields(log.Fields{
				"err":   err,
				"payer": payer,
			}).Error("failed to collect native payment")
			return domain.ErrInsufficientPayment
		}
	case domain.CurrencyKindToken:
		if attachedValue != nil && attachedValue.Sign() != 0 {
			return domain.ErrWrongPayment
		}
		if err := l.TransferFrom(ctx, im.engineAddress, payer, im.engineAddress, amount); err != nil {
			ctx.WithFields(log.Fields{
				"err":   err,
				"payer": payer,
				"token": currency.Token,
			}).Error("failed to pull token payment")
			return domain.ErrTransferFailed
		}
	default:
		return domain.ErrInvalidCurrency
	}

	if err := im.balanceRepo.Add(ctx, currency, amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": currency.Key(),
		}).Error("failed to balanceRepo.Add")
		// the funds were pulled already, push them back
		if rerr := l.Transfer(ctx, im.engineAddress, payer, amount); rerr != nil {
			ctx.WithFields(log.Fields{
				"err":   rerr,
				"payer": payer,
			}).Error("failed to return payment after accounting failure")
		}
		return err
	}
	return nil
}

func (im *impl) Refund(ctx ctx.Ctx, payer domain.Address, amount *big.Int, currency domain.Currency) error {
	l, err := im.ledgers.Resolve(ctx, currency)
	if err != nil {
		return err
	}
	if err := im.balanceRepo.Sub(ctx, currency, amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": currency.Key(),
		}).Error("failed to balanceRepo.Sub")
		return err
	}
	if err := l.Transfer(ctx, im.engineAddress, payer, amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"payer": payer,
		}).Error("failed to refund payment")
		return domain.ErrPayoutFailed
	}
	return nil
}

func (im *impl) Payout(ctx ctx.Ctx, recipient domain.Address, amount *big.Int, currency domain.Currency, feeBps int64) error {
	l, err := im.ledgers.Resolve(ctx, currency)
	if err != nil {
		return err
	}

	fee := new(big.Int).Mul(amount, big.NewInt(feeBps))
	fee.Div(fee, big.NewInt(feeDenominator))
	reward := new(big.Int).Sub(amount, fee)

	if err := im.balanceRepo.Sub(ctx, currency, amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": currency.Key(),
		}).Error("failed to balanceRepo.Sub")
		return domain.ErrPayoutFailed
	}

	if fee.Sign() > 0 {
		if err := l.Transfer(ctx, im.engineAddress, im.treasury, fee); err != nil {
			ctx.WithFields(log.Fields{
				"err":      err,
				"treasury": im.treasury,
			}).Error("failed to transfer fee")
			im.restoreBalance(ctx, currency, amount)
			return domain.ErrPayoutFailed
		}
	}

	if err := l.Transfer(ctx, im.engineAddress, recipient, reward); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"recipient": recipient,
		}).Error("failed to transfer reward")
		// claw the fee back so the payout is all-or-nothing
		if fee.Sign() > 0 {
			if rerr := l.Transfer(ctx, im.treasury, im.engineAddress, fee); rerr != nil {
				ctx.WithFields(log.Fields{
					"err": rerr,
				}).Error("failed to return fee after payout failure")
			}
		}
		im.restoreBalance(ctx, currency, amount)
		return domain.ErrPayoutFailed
	}
	return nil
}

func (im *impl) ReversePayout(ctx ctx.Ctx, recipient domain.Address, amount *big.Int, currency domain.Currency, feeBps int64) error {
	l, err := im.ledgers.Resolve(ctx, currency)
	if err != nil {
		return err
	}

	fee := new(big.Int).Mul(amount, big.NewInt(feeBps))
	fee.Div(fee, big.NewInt(feeDenominator))
	reward := new(big.Int).Sub(amount, fee)

	if err := l.Transfer(ctx, recipient, im.engineAddress, reward); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"recipient": recipient,
		}).Error("failed to pull reward back")
		return domain.ErrPayoutFailed
	}

	if fee.Sign() > 0 {
		if err := l.Transfer(ctx, im.treasury, im.engineAddress, fee); err != nil {
			ctx.WithFields(log.Fields{
				"err":      err,
				"treasury": im.treasury,
			}).Error("failed to pull fee back")
			// hand the reward back so the reversal is all-or-nothing
			if rerr := l.Transfer(ctx, im.engineAddress, recipient, reward); rerr != nil {
				ctx.WithFields(log.Fields{
					"err": rerr,
				}).Error("failed to return reward after reversal failure")
			}
			return domain.ErrPayoutFailed
		}
	}

	if err := im.balanceRepo.Add(ctx, currency, amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": currency.Key(),
		}).Error("failed to balanceRepo.Add")
		return err
	}
	return nil
}

func (im *impl) restoreBalance(ctx ctx.Ctx, currency domain.Currency, amount *big.Int) {
	if err := im.balanceRepo.Add(ctx, currency, amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": currency.Key(),
		}).Error("failed to restore balance after payout failure")
	}
}

func (im *impl) WithdrawCurrency(ctx ctx.Ctx, caller domain.Address, currency domain.Currency) error {
	if !caller.Equals(im.owner) {
		return domain.ErrUnauthorized
	}
	return im.withdraw(ctx, currency)
}

func (im *impl) WithdrawAllCurrencies(ctx ctx.Ctx, caller domain.Address) error {
	if !caller.Equals(im.owner) {
		return domain.ErrUnauthorized
	}
	balances, err := im.balanceRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, b := range balances {
		amount, err := domain.ParseAmount(b.Amount)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":      err,
				"currency": b.CurrencyKey,
			}).Error("failed to parse stored balance")
			return err
		}
		if amount.Sign() == 0 {
			continue
		}
		if err := im.withdraw(ctx, b.Currency); err != nil {
			return err
		}
	}
	return nil
}

func (im *impl) withdraw(ctx ctx.Ctx, currency domain.Currency) error {
	balance, err := im.balanceRepo.Get(ctx, currency)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil
		}
		return err
	}
	amount, err := domain.ParseAmount(balance.Amount)
	if err != nil {
		return err
	}
	if amount.Sign() == 0 {
		return nil
	}

	l, err := im.ledgers.Resolve(ctx, currency)
	if err != nil {
		return err
	}
	if err := im.balanceRepo.Sub(ctx, currency, amount); err != nil {
		return err
	}
	if err := l.Transfer(ctx, im.engineAddress, im.owner, amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": currency.Key(),
		}).Error("failed to withdraw currency")
		im.restoreBalance(ctx, currency, amount)
		return domain.ErrPayoutFailed
	}
	return nil
}

func (im *impl) GetBalances(ctx ctx.Ctx) ([]*payment.PendingBalance, error) {
	return im.balanceRepo.FindAll(ctx)
}

package payment

import (
	"math/big"
	"time"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
)

// PendingBalance accumulates collected proceeds for one currency until
// the owner withdraws them. Amount is a decimal string so arbitrarily
// large token amounts survive the round trip through storage.
type PendingBalance struct {
	ChainId     domain.ChainId  `json:"chainId" bson:"chainId"`
	CurrencyKey string          `json:"currencyKey" bson:"currencyKey"`
	Currency    domain.Currency `json:"currency" bson:"currency"`
	Amount      string          `json:"amount" bson:"amount"`

	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type BalanceRepo interface {
	// Add credits amount to the currency's accumulated balance,
	// creating the entry the first time the currency is seen.
	Add(c ctx.Ctx, currency domain.Currency, amount *big.Int) error

	// Sub debits amount from the currency's accumulated balance. Fails
	// with domain.ErrInsufficientRemaining when the balance would go
	// negative.
	Sub(c ctx.Ctx, currency domain.Currency, amount *big.Int) error

	Get(c ctx.Ctx, currency domain.Currency) (*PendingBalance, error)

	// FindAll returns every currency ever collected, zero balances
	// included.
	FindAll(c ctx.Ctx) ([]*PendingBalance, error)
}

// Settlement is the currency-agnostic payment leg shared by the listing
// and collection paths.
type Settlement interface {
	// Collect takes amount from payer in the given currency. For the
	// native currency the attached value must equal amount exactly; for
	// tokens the amount is pulled via a pre-approved TransferFrom.
	// Collected proceeds accumulate in the engine's holding.
	Collect(c ctx.Ctx, payer domain.Address, amount *big.Int, currency domain.Currency, attachedValue *big.Int) error

	// Refund returns a previously collected amount to payer when a later
	// settlement leg failed and the operation rolls back.
	Refund(c ctx.Ctx, payer domain.Address, amount *big.Int, currency domain.Currency) error

	// Payout splits amount into fee = amount*feeBps/10000 routed to the
	// treasury and the remainder routed to recipient. Failures surface
	// as domain.ErrPayoutFailed.
	Payout(c ctx.Ctx, recipient domain.Address, amount *big.Int, currency domain.Currency, feeBps int64) error

	// ReversePayout undoes a completed Payout when a later settlement leg
	// failed: the reward is pulled back from recipient, the fee from the
	// treasury, and the pending balance re-credited. Transfer failures
	// surface as domain.ErrPayoutFailed.
	ReversePayout(c ctx.Ctx, recipient domain.Address, amount *big.Int, currency domain.Currency, feeBps int64) error

	// WithdrawCurrency moves one currency's accumulated balance to the
	// owner. Owner only.
	WithdrawCurrency(c ctx.Ctx, caller domain.Address, currency domain.Currency) error

	// WithdrawAllCurrencies iterates every currency ever collected and
	// withdraws its balance, skipping zero balances without failing the
	// whole call. Owner only.
	WithdrawAllCurrencies(c ctx.Ctx, caller domain.Address) error

	GetBalances(c ctx.Ctx) ([]*PendingBalance, error)
}

package ledger

import (
	"math/big"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
)

// AssetLedger is the multi-unit ownership registry the engine settles
// against. The engine never bookkeeps ownership itself; it debits and
// credits through this collaborator, and sellers must have approved the
// engine as an operator before their assets can be moved.
type AssetLedger interface {
	BalanceOf(c ctx.Ctx, holder domain.Address, id domain.TokenId) (int64, error)

	// Transfer moves qty units of id from `from` to `to`. The operator
	// must be `from` itself or an approved operator of `from`, otherwise
	// the transfer fails.
	Transfer(c ctx.Ctx, operator, from, to domain.Address, id domain.TokenId, qty int64) error

	IsApprovedForAll(c ctx.Ctx, owner, operator domain.Address) (bool, error)
}

// FungibleLedger is a standard balance/transfer/allowance ledger for one
// payment currency. The native currency is exposed through the same
// interface; its TransferFrom is equivalent to Transfer since attaching
// value to the call is the authorization.
type FungibleLedger interface {
	BalanceOf(c ctx.Ctx, holder domain.Address) (*big.Int, error)
	Transfer(c ctx.Ctx, from, to domain.Address, amount *big.Int) error

	// TransferFrom pulls amount from `from` to `to` on behalf of spender,
	// honoring a prior allowance from `from` to spender.
	TransferFrom(c ctx.Ctx, spender, from, to domain.Address, amount *big.Int) error

	Approve(c ctx.Ctx, owner, spender domain.Address, amount *big.Int) error
}

// Registry resolves the ledger for a payment currency.
type Registry interface {
	// Resolve returns the ledger for the currency, or
	// domain.ErrInvalidCurrency for an unsupported token.
	Resolve(c ctx.Ctx, currency domain.Currency) (FungibleLedger, error)
}

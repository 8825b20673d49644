package memory

import (
	"math/big"
	"sync"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/ledger"
)

// FungibleLedger is an in-memory balance/transfer/allowance ledger for
// one currency.
type FungibleLedger struct {
	mu         sync.RWMutex
	balances   map[domain.Address]*big.Int
	allowances map[domain.Address]map[domain.Address]*big.Int

	// the native currency has no allowance model; attaching value to the
	// call is the authorization, so TransferFrom skips the allowance
	// check when native is set
	native bool
}

func NewTokenLedger() *FungibleLedger {
	return &FungibleLedger{
		balances:   map[domain.Address]*big.Int{},
		allowances: map[domain.Address]map[domain.Address]*big.Int{},
	}
}

func NewNativeLedger() *FungibleLedger {
	l := NewTokenLedger()
	l.native = true
	return l
}

var _ ledger.FungibleLedger = (*FungibleLedger)(nil)

// Mint credits amount to holder. Test and bootstrap helper.
func (l *FungibleLedger) Mint(holder domain.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(holder.ToLower(), amount)
}

func (l *FungibleLedger) BalanceOf(c ctx.Ctx, holder domain.Address) (*big.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if b, ok := l.balances[holder.ToLower()]; ok {
		return new(big.Int).Set(b), nil
	}
	return new(big.Int), nil
}

func (l *FungibleLedger) Transfer(c ctx.Ctx, from, to domain.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(from.ToLower(), to.ToLower(), amount)
}

func (l *FungibleLedger) TransferFrom(c ctx.Ctx, spender, from, to domain.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	spender = spender.ToLower()
	from = from.ToLower()

	if !l.native && !spender.Equals(from) {
		allowance := l.allowances[from][spender]
		if allowance == nil || allowance.Cmp(amount) < 0 {
			return domain.ErrTransferFailed
		}
		allowance.Sub(allowance, amount)
	}
	return l.move(from, to.ToLower(), amount)
}

func (l *FungibleLedger) Approve(c ctx.Ctx, owner, spender domain.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.allowances[owner.ToLower()]
	if !ok {
		m = map[domain.Address]*big.Int{}
		l.allowances[owner.ToLower()] = m
	}
	m[spender.ToLower()] = new(big.Int).Set(amount)
	return nil
}

func (l *FungibleLedger) move(from, to domain.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return domain.ErrTransferFailed
	}
	balance := l.balances[from]
	if balance == nil || balance.Cmp(amount) < 0 {
		return domain.ErrTransferFailed
	}
	balance.Sub(balance, amount)
	l.credit(to, amount)
	return nil
}

func (l *FungibleLedger) credit(holder domain.Address, amount *big.Int) {
	if b, ok := l.balances[holder]; ok {
		b.Add(b, amount)
		return
	}
	l.balances[holder] = new(big.Int).Set(amount)
}

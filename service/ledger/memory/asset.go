package memory

import (
	"sync"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/ledger"
	"golang.org/x/xerrors"
)

// AssetLedger is an in-memory multi-unit ownership registry. It backs
// the engine in local mode and in tests; a chain-backed registry can be
// swapped in behind the same interface.
type AssetLedger struct {
	mu        sync.RWMutex
	balances  map[domain.Address]map[domain.TokenId]int64
	operators map[domain.Address]map[domain.Address]bool
}

func NewAssetLedger() *AssetLedger {
	return &AssetLedger{
		balances:  map[domain.Address]map[domain.TokenId]int64{},
		operators: map[domain.Address]map[domain.Address]bool{},
	}
}

var _ ledger.AssetLedger = (*AssetLedger)(nil)

// Mint credits qty units of id to holder. Test and bootstrap helper,
// not part of the ledger.AssetLedger interface.
func (l *AssetLedger) Mint(holder domain.Address, id domain.TokenId, qty int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(holder.ToLower(), id, qty)
}

// SetApprovalForAll grants or revokes operator rights over owner's
// holdings.
func (l *AssetLedger) SetApprovalForAll(owner, operator domain.Address, approved bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.operators[owner.ToLower()]
	if !ok {
		m = map[domain.Address]bool{}
		l.operators[owner.ToLower()] = m
	}
	m[operator.ToLower()] = approved
}

func (l *AssetLedger) BalanceOf(c ctx.Ctx, holder domain.Address, id domain.TokenId) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[holder.ToLower()][id], nil
}

func (l *AssetLedger) IsApprovedForAll(c ctx.Ctx, owner, operator domain.Address) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.operators[owner.ToLower()][operator.ToLower()], nil
}

func (l *AssetLedger) Transfer(c ctx.Ctx, operator, from, to domain.Address, id domain.TokenId, qty int64) error {
	if qty <= 0 {
		return xerrors.Errorf("invalid transfer quantity %d", qty)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	operator = operator.ToLower()
	from = from.ToLower()
	to = to.ToLower()

	if !operator.Equals(from) && !l.operators[from][operator] {
		return domain.ErrOperatorNotApproved
	}
	if l.balances[from][id] < qty {
		return domain.ErrTransferFailed
	}
	l.balances[from][id] -= qty
	l.credit(to, id, qty)
	return nil
}

func (l *AssetLedger) credit(holder domain.Address, id domain.TokenId, qty int64) {
	m, ok := l.balances[holder]
	if !ok {
		m = map[domain.TokenId]int64{}
		l.balances[holder] = m
	}
	m[id] += qty
}

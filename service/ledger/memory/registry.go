package memory

import (
	"sync"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/ledger"
)

// Registry resolves payment currencies to in-memory ledgers. Token
// ledgers must be registered up front; resolving an unknown token fails
// with domain.ErrInvalidCurrency.
type Registry struct {
	mu     sync.RWMutex
	native ledger.FungibleLedger
	tokens map[domain.Address]ledger.FungibleLedger
}

func NewRegistry(native ledger.FungibleLedger) *Registry {
	return &Registry{
		native: native,
		tokens: map[domain.Address]ledger.FungibleLedger{},
	}
}

var _ ledger.Registry = (*Registry)(nil)

func (r *Registry) Register(token domain.Address, l ledger.FungibleLedger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.ToLower()] = l
}

func (r *Registry) Resolve(c ctx.Ctx, currency domain.Currency) (ledger.FungibleLedger, error) {
	if currency.IsNative() {
		return r.native, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if l, ok := r.tokens[currency.Token.ToLower()]; ok {
		return l, nil
	}
	return nil, domain.ErrInvalidCurrency
}

package memory

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
)

type memorySuite struct {
	suite.Suite
}

func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(memorySuite))
}

func (s *memorySuite) TestAssetTransferRequiresOperator() {
	c := ctx.Background()
	l := NewAssetLedger()
	owner := domain.Address("0xaa01")
	engine := domain.Address("0xee01")
	buyer := domain.Address("0xbb01")

	l.Mint(owner, 1, 3)

	err := l.Transfer(c, engine, owner, buyer, 1, 1)
	s.Equal(domain.ErrOperatorNotApproved, err)

	l.SetApprovalForAll(owner, engine, true)
	err = l.Transfer(c, engine, owner, buyer, 1, 1)
	s.NoError(err)

	balance, err := l.BalanceOf(c, buyer, 1)
	s.NoError(err)
	s.EqualValues(1, balance)

	balance, err = l.BalanceOf(c, owner, 1)
	s.NoError(err)
	s.EqualValues(2, balance)
}

func (s *memorySuite) TestAssetTransferInsufficientBalance() {
	c := ctx.Background()
	l := NewAssetLedger()
	owner := domain.Address("0xaa02")

	l.Mint(owner, 7, 1)
	err := l.Transfer(c, owner, owner, domain.Address("0xbb02"), 7, 2)
	s.Equal(domain.ErrTransferFailed, err)
}

func (s *memorySuite) TestFungibleAllowance() {
	c := ctx.Background()
	l := NewTokenLedger()
	payer := domain.Address("0xaa03")
	spender := domain.Address("0xee03")
	recipient := domain.Address("0xcc03")

	l.Mint(payer, big.NewInt(100))

	err := l.TransferFrom(c, spender, payer, recipient, big.NewInt(40))
	s.Equal(domain.ErrTransferFailed, err)

	s.NoError(l.Approve(c, payer, spender, big.NewInt(50)))
	s.NoError(l.TransferFrom(c, spender, payer, recipient, big.NewInt(40)))

	// remaining allowance is too small now
	err = l.TransferFrom(c, spender, payer, recipient, big.NewInt(40))
	s.Equal(domain.ErrTransferFailed, err)

	balance, err := l.BalanceOf(c, recipient)
	s.NoError(err)
	s.EqualValues(0, balance.Cmp(big.NewInt(40)))
}

func (s *memorySuite) TestNativeLedgerSkipsAllowance() {
	c := ctx.Background()
	l := NewNativeLedger()
	payer := domain.Address("0xaa04")
	engine := domain.Address("0xee04")

	l.Mint(payer, big.NewInt(10))
	s.NoError(l.TransferFrom(c, engine, payer, engine, big.NewInt(10)))

	balance, err := l.BalanceOf(c, engine)
	s.NoError(err)
	s.EqualValues(0, balance.Cmp(big.NewInt(10)))
}

func (s *memorySuite) TestRegistryResolve() {
	c := ctx.Background()
	native := NewNativeLedger()
	tokenA := NewTokenLedger()
	registry := NewRegistry(native)
	registry.Register(domain.Address("0xt0ka"), tokenA)

	l, err := registry.Resolve(c, domain.NativeCurrency())
	s.NoError(err)
	s.Equal(native, l)

	l, err = registry.Resolve(c, domain.TokenCurrency("0xT0KA"))
	s.NoError(err)
	s.Equal(tokenA, l)

	_, err = registry.Resolve(c, domain.TokenCurrency("0xdead"))
	s.Equal(domain.ErrInvalidCurrency, err)
}

package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/payment"
	"github.com/openloot/goapi/domain/payment/mocks"
	"github.com/openloot/goapi/service/ledger/memory"
)

var (
	engineAddr = domain.Address("0x000000000000000000000000000000000000e143")
	treasury   = domain.Address("0x00000000000000000000000000000000000feee5")
	owner      = domain.Address("0x0000000000000000000000000000000000000add")
	buyer      = domain.Address("0x00000000000000000000000000000000000b0001")
	seller     = domain.Address("0x000000000000000000000000000000000005e111")
	wethAddr   = domain.Address("0x0000000000000000000000000000000000111111")
)

type settlementTestSuite struct {
	suite.Suite

	native      *memory.FungibleLedger
	weth        *memory.FungibleLedger
	balanceRepo *mocks.BalanceRepo
	settlement  payment.Settlement
}

func (s *settlementTestSuite) SetupTest() {
	s.native = memory.NewNativeLedger()
	s.weth = memory.NewTokenLedger()
	registry := memory.NewRegistry(s.native)
	registry.Register(wethAddr, s.weth)
	s.balanceRepo = &mocks.BalanceRepo{}
	s.settlement = New(&SettlementCfg{
		EngineAddress: engineAddr,
		Treasury:      treasury,
		Owner:         owner,
		Ledgers:       registry,
		BalanceRepo:   s.balanceRepo,
	})
}

func TestSettlementTestSuite(t *testing.T) {
	suite.Run(t, new(settlementTestSuite))
}

func (s *settlementTestSuite) balanceOf(l *memory.FungibleLedger, holder domain.Address) *big.Int {
	b, err := l.BalanceOf(ctx.Background(), holder)
	s.Require().NoError(err)
	return b
}

func (s *settlementTestSuite) TestCollectNative() {
	c := ctx.Background()
	price := big.NewInt(1000)
	s.native.Mint(buyer, big.NewInt(5000))
	s.balanceRepo.On("Add", mock.Anything, domain.NativeCurrency(), price).Return(nil).Once()

	err := s.settlement.Collect(c, buyer, price, domain.NativeCurrency(), big.NewInt(1000))
	s.Require().NoError(err)
	s.Equal(big.NewInt(1000), s.balanceOf(s.native, engineAddr))
	s.Equal(big.NewInt(4000), s.balanceOf(s.native, buyer))
	s.balanceRepo.AssertExpectations(s.T())
}

func (s *settlementTestSuite) TestCollectNativeWrongAttachedValue() {
	c := ctx.Background()
	s.native.Mint(buyer, big.NewInt(5000))

	err := s.settlement.Collect(c, buyer, big.NewInt(1000), domain.NativeCurrency(), big.NewInt(999))
	s.Require().ErrorIs(err, domain.ErrInsufficientPayment)

	err = s.settlement.Collect(c, buyer, big.NewInt(1000), domain.NativeCurrency(), big.NewInt(1001))
	s.Require().ErrorIs(err, domain.ErrInsufficientPayment)

	err = s.settlement.Collect(c, buyer, big.NewInt(1000), domain.NativeCurrency(), nil)
	s.Require().ErrorIs(err, domain.ErrInsufficientPayment)

	s.Equal(big.NewInt(5000), s.balanceOf(s.native, buyer))
	s.balanceRepo.AssertNotCalled(s.T(), "Add", mock.Anything, mock.Anything, mock.Anything)
}

func (s *settlementTestSuite) TestCollectToken() {
	c := ctx.Background()
	currency := domain.TokenCurrency(wethAddr)
	price := big.NewInt(700)
	s.weth.Mint(buyer, big.NewInt(700))
	s.Require().NoError(s.weth.Approve(c, buyer, engineAddr, big.NewInt(700)))
	s.balanceRepo.On("Add", mock.Anything, currency, price).Return(nil).Once()

	err := s.settlement.Collect(c, buyer, price, currency, nil)
	s.Require().NoError(err)
	s.Equal(big.NewInt(700), s.balanceOf(s.weth, engineAddr))
	s.Equal(big.NewInt(0), s.balanceOf(s.weth, buyer))
	s.balanceRepo.AssertExpectations(s.T())
}

func (s *settlementTestSuite) TestCollectTokenRejectsAttachedValue() {
	c := ctx.Background()
	currency := domain.TokenCurrency(wethAddr)
	s.weth.Mint(buyer, big.NewInt(700))

	err := s.settlement.Collect(c, buyer, big.NewInt(700), currency, big.NewInt(1))
	s.Require().ErrorIs(err, domain.ErrWrongPayment)
	s.Equal(big.NewInt(700), s.balanceOf(s.weth, buyer))
}

func (s *settlementTestSuite) TestCollectTokenWithoutAllowance() {
	c := ctx.Background()
	currency := domain.TokenCurrency(wethAddr)
	s.weth.Mint(buyer, big.NewInt(700))

	err := s.settlement.Collect(c, buyer, big.NewInt(700), currency, nil)
	s.Require().ErrorIs(err, domain.ErrTransferFailed)
	s.Equal(big.NewInt(700), s.balanceOf(s.weth, buyer))
}

func (s *settlementTestSuite) TestCollectUnknownToken() {
	c := ctx.Background()
	err := s.settlement.Collect(c, buyer, big.NewInt(1), domain.TokenCurrency("0x00000000000000000000000000000000deadbeef"), nil)
	s.Require().ErrorIs(err, domain.ErrInvalidCurrency)
}

func (s *settlementTestSuite) TestCollectAccountingFailureReturnsFunds() {
	c := ctx.Background()
	s.native.Mint(buyer, big.NewInt(1000))
	s.balanceRepo.On("Add", mock.Anything, domain.NativeCurrency(), big.NewInt(1000)).Return(domain.ErrNotFound).Once()

	err := s.settlement.Collect(c, buyer, big.NewInt(1000), domain.NativeCurrency(), big.NewInt(1000))
	s.Require().Error(err)
	s.Equal(big.NewInt(1000), s.balanceOf(s.native, buyer))
	s.Equal(big.NewInt(0), s.balanceOf(s.native, engineAddr))
}

func (s *settlementTestSuite) TestRefund() {
	c := ctx.Background()
	s.native.Mint(engineAddr, big.NewInt(1000))
	s.balanceRepo.On("Sub", mock.Anything, domain.NativeCurrency(), big.NewInt(1000)).Return(nil).Once()

	err := s.settlement.Refund(c, buyer, big.NewInt(1000), domain.NativeCurrency())
	s.Require().NoError(err)
	s.Equal(big.NewInt(1000), s.balanceOf(s.native, buyer))
	s.Equal(big.NewInt(0), s.balanceOf(s.native, engineAddr))
	s.balanceRepo.AssertExpectations(s.T())
}

func (s *settlementTestSuite) TestPayoutSplitsFee() {
	c := ctx.Background()
	s.native.Mint(engineAddr, big.NewInt(10000))
	s.balanceRepo.On("Sub", mock.Anything, domain.NativeCurrency(), big.NewInt(10000)).Return(nil).Once()

	err := s.settlement.Payout(c, seller, big.NewInt(10000), domain.NativeCurrency(), 500)
	s.Require().NoError(err)
	s.Equal(big.NewInt(500), s.balanceOf(s.native, treasury))
	s.Equal(big.NewInt(9500), s.balanceOf(s.native, seller))
	s.Equal(big.NewInt(0), s.balanceOf(s.native, engineAddr))
	s.balanceRepo.AssertExpectations(s.T())
}

func (s *settlementTestSuite) TestPayoutZeroFee() {
	c := ctx.Background()
	s.native.Mint(engineAddr, big.NewInt(100))
	s.balanceRepo.On("Sub", mock.Anything, domain.NativeCurrency(), big.NewInt(100)).Return(nil).Once()

	err := s.settlement.Payout(c, seller, big.NewInt(100), domain.NativeCurrency(), 0)
	s.Require().NoError(err)
	s.Equal(big.NewInt(0), s.balanceOf(s.native, treasury))
	s.Equal(big.NewInt(100), s.balanceOf(s.native, seller))
}

func (s *settlementTestSuite) TestPayoutFeeRoundsDown() {
	c := ctx.Background()
	s.native.Mint(engineAddr, big.NewInt(101))
	s.balanceRepo.On("Sub", mock.Anything, domain.NativeCurrency(), big.NewInt(101)).Return(nil).Once()

	// 101 * 500 / 10000 = 5.05 truncated to 5
	err := s.settlement.Payout(c, seller, big.NewInt(101), domain.NativeCurrency(), 500)
	s.Require().NoError(err)
	s.Equal(big.NewInt(5), s.balanceOf(s.native, treasury))
	s.Equal(big.NewInt(96), s.balanceOf(s.native, seller))
}

func (s *settlementTestSuite) TestPayoutRewardFailureRestoresBalance() {
	c := ctx.Background()
	// fund only the fee so the reward transfer cannot complete
	s.native.Mint(engineAddr, big.NewInt(500))
	s.balanceRepo.On("Sub", mock.Anything, domain.NativeCurrency(), big.NewInt(10000)).Return(nil).Once()
	s.balanceRepo.On("Add", mock.Anything, domain.NativeCurrency(), big.NewInt(10000)).Return(nil).Once()

	err := s.settlement.Payout(c, seller, big.NewInt(10000), domain.NativeCurrency(), 500)
	s.Require().ErrorIs(err, domain.ErrPayoutFailed)
	s.Equal(big.NewInt(0), s.balanceOf(s.native, treasury))
	s.Equal(big.NewInt(0), s.balanceOf(s.native, seller))
	s.Equal(big.NewInt(500), s.balanceOf(s.native, engineAddr))
	s.balanceRepo.AssertExpectations(s.T())
}

func (s *settlementTestSuite) TestReversePayout() {
	c := ctx.Background()
	s.native.Mint(engineAddr, big.NewInt(10000))
	s.balanceRepo.On("Sub", mock.Anything, domain.NativeCurrency(), big.NewInt(10000)).Return(nil).Once()
	s.balanceRepo.On("Add", mock.Anything, domain.NativeCurrency(), big.NewInt(10000)).Return(nil).Once()

	err := s.settlement.Payout(c, seller, big.NewInt(10000), domain.NativeCurrency(), 500)
	s.Require().NoError(err)

	err = s.settlement.ReversePayout(c, seller, big.NewInt(10000), domain.NativeCurrency(), 500)
	s.Require().NoError(err)
	s.Equal(big.NewInt(10000), s.balanceOf(s.native, engineAddr))
	s.Equal(big.NewInt(0), s.balanceOf(s.native, seller))
	s.Equal(big.NewInt(0), s.balanceOf(s.native, treasury))
	s.balanceRepo.AssertExpectations(s.T())
}

func (s *settlementTestSuite) TestReversePayoutRewardSpent() {
	c := ctx.Background()
	// the recipient no longer holds the reward, nothing moves
	s.native.Mint(treasury, big.NewInt(500))

	err := s.settlement.ReversePayout(c, seller, big.NewInt(10000), domain.NativeCurrency(), 500)
	s.Require().ErrorIs(err, domain.ErrPayoutFailed)
	s.Equal(big.NewInt(500), s.balanceOf(s.native, treasury))
	s.balanceRepo.AssertNotCalled(s.T(), "Add", mock.Anything, mock.Anything, mock.Anything)
}

func (s *settlementTestSuite) TestReversePayoutFeeSpentReturnsReward() {
	c := ctx.Background()
	// treasury already drained the fee, the pulled reward goes back
	s.native.Mint(seller, big.NewInt(9500))

	err := s.settlement.ReversePayout(c, seller, big.NewInt(10000), domain.NativeCurrency(), 500)
	s.Require().ErrorIs(err, domain.ErrPayoutFailed)
	s.Equal(big.NewInt(9500), s.balanceOf(s.native, seller))
	s.Equal(big.NewInt(0), s.balanceOf(s.native, engineAddr))
	s.balanceRepo.AssertNotCalled(s.T(), "Add", mock.Anything, mock.Anything, mock.Anything)
}

func (s *settlementTestSuite) TestWithdrawCurrencyOwnerOnly() {
	c := ctx.Background()
	err := s.settlement.WithdrawCurrency(c, buyer, domain.NativeCurrency())
	s.Require().ErrorIs(err, domain.ErrUnauthorized)
}

func (s *settlementTestSuite) TestWithdrawCurrency() {
	c := ctx.Background()
	s.native.Mint(engineAddr, big.NewInt(4200))
	s.balanceRepo.On("Get", mock.Anything, domain.NativeCurrency()).Return(&payment.PendingBalance{
		CurrencyKey: "native",
		Currency:    domain.NativeCurrency(),
		Amount:      "4200",
	}, nil).Once()
	s.balanceRepo.On("Sub", mock.Anything, domain.NativeCurrency(), big.NewInt(4200)).Return(nil).Once()

	err := s.settlement.WithdrawCurrency(c, owner, domain.NativeCurrency())
	s.Require().NoError(err)
	s.Equal(big.NewInt(4200), s.balanceOf(s.native, owner))
	s.balanceRepo.AssertExpectations(s.T())
}

func (s *settlementTestSuite) TestWithdrawCurrencyNothingCollected() {
	c := ctx.Background()
	s.balanceRepo.On("Get", mock.Anything, domain.NativeCurrency()).Return(nil, domain.ErrNotFound).Once()

	err := s.settlement.WithdrawCurrency(c, owner, domain.NativeCurrency())
	s.Require().NoError(err)
}

func (s *settlementTestSuite) TestWithdrawAllCurrencies() {
	c := ctx.Background()
	wethCurrency := domain.TokenCurrency(wethAddr)
	s.native.Mint(engineAddr, big.NewInt(300))
	s.weth.Mint(engineAddr, big.NewInt(900))

	s.balanceRepo.On("FindAll", mock.Anything).Return([]*payment.PendingBalance{
		{CurrencyKey: "native", Currency: domain.NativeCurrency(), Amount: "300"},
		{CurrencyKey: wethAddr.ToLowerStr(), Currency: wethCurrency, Amount: "900"},
		{CurrencyKey: "0xdrained", Currency: domain.TokenCurrency("0x00000000000000000000000000000000deadbeef"), Amount: "0"},
	}, nil).Once()
	s.balanceRepo.On("Get", mock.Anything, domain.NativeCurrency()).Return(&payment.PendingBalance{
		Currency: domain.NativeCurrency(), Amount: "300",
	}, nil).Once()
	s.balanceRepo.On("Get", mock.Anything, wethCurrency).Return(&payment.PendingBalance{
		Currency: wethCurrency, Amount: "900",
	}, nil).Once()
	s.balanceRepo.On("Sub", mock.Anything, domain.NativeCurrency(), big.NewInt(300)).Return(nil).Once()
	s.balanceRepo.On("Sub", mock.Anything, wethCurrency, big.NewInt(900)).Return(nil).Once()

	err := s.settlement.WithdrawAllCurrencies(c, owner)
	s.Require().NoError(err)
	s.Equal(big.NewInt(300), s.balanceOf(s.native, owner))
	s.Equal(big.NewInt(900), s.balanceOf(s.weth, owner))
	s.balanceRepo.AssertExpectations(s.T())
}

func (s *settlementTestSuite) TestGetBalances() {
	c := ctx.Background()
	want := []*payment.PendingBalance{{CurrencyKey: "native", Amount: "5"}}
	s.balanceRepo.On("FindAll", mock.Anything).Return(want, nil).Once()

	got, err := s.settlement.GetBalances(c)
	require.NoError(s.T(), err)
	s.Equal(want, got)
}

package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
	eventMocks "github.com/openloot/goapi/domain/event/mocks"
	paymentMocks "github.com/openloot/goapi/domain/payment/mocks"
	"github.com/openloot/goapi/domain/round"
	roundMocks "github.com/openloot/goapi/domain/round/mocks"
	"github.com/openloot/goapi/service/ledger/memory"
)

var (
	engineAddr  = domain.Address("0x000000000000000000000000000000000000e143")
	ownerAddr   = domain.Address("0x0000000000000000000000000000000000000add")
	curatorAddr = domain.Address("0x00000000000000000000000000000000000c0a01")
	buyerAddr   = domain.Address("0x00000000000000000000000000000000000b0001")
)

type roundsTestSuite struct {
	suite.Suite

	roundRepo  *roundMocks.Repo
	assets     *memory.AssetLedger
	settlement *paymentMocks.Settlement
	eventRepo  *eventMocks.Repo
	usecase    round.UseCase
}

func (s *roundsTestSuite) SetupTest() {
	s.roundRepo = &roundMocks.Repo{}
	s.assets = memory.NewAssetLedger()
	s.settlement = &paymentMocks.Settlement{}
	s.eventRepo = &eventMocks.Repo{}
	s.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	s.usecase = New(&RoundsCfg{
		EngineAddress: engineAddr,
		Owner:         ownerAddr,
		RoundRepo:     s.roundRepo,
		Assets:        s.assets,
		Settlement:    s.settlement,
		EventRepo:     s.eventRepo,
	})
}

func TestRoundsTestSuite(t *testing.T) {
	suite.Run(t, new(roundsTestSuite))
}

func (s *roundsTestSuite) balanceOf(holder domain.Address, id domain.TokenId) int64 {
	b, err := s.assets.BalanceOf(ctx.Background(), holder, id)
	s.Require().NoError(err)
	return b
}

func (s *roundsTestSuite) lockedRound(lock time.Time) *round.Round {
	return &round.Round{
		RoundIndex: 0,
		Curator:    curatorAddr,
		Collectables: []round.Collectable{
			{ItemId: 31, Available: 10, Currency: domain.NativeCurrency(), Price: "100"},
			{ItemId: 32, Available: 4, Currency: domain.NativeCurrency(), Price: "250"},
		},
		LockTimestamp: lock,
		CreatedAt:     time.Now(),
	}
}

func (s *roundsTestSuite) TestAddToCollection() {
	c := ctx.Background()
	s.assets.Mint(curatorAddr, 31, 10)
	s.assets.SetApprovalForAll(curatorAddr, engineAddr, true)
	s.roundRepo.On("NextIndex", mock.Anything).Return(int64(0), nil).Once()
	s.roundRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *round.Round) bool {
		return r.RoundIndex == 0 && r.Curator.Equals(curatorAddr) && len(r.Collectables) == 1
	})).Return(nil).Once()

	lock := time.Now().Add(time.Hour)
	r, err := s.usecase.AddToCollection(c, curatorAddr,
		[]domain.TokenId{31}, []int64{10}, []domain.Currency{domain.NativeCurrency()}, []string{"100"}, lock)
	s.Require().NoError(err)
	s.Equal(int64(0), r.RoundIndex)
	s.Equal(int64(10), s.balanceOf(engineAddr, 31))
	s.Equal(int64(0), s.balanceOf(curatorAddr, 31))
	s.roundRepo.AssertExpectations(s.T())
}

func (s *roundsTestSuite) TestAddToCollectionValidation() {
	c := ctx.Background()
	lock := time.Now().Add(time.Hour)

	_, err := s.usecase.AddToCollection(c, curatorAddr, nil, nil, nil, nil, lock)
	s.Require().ErrorIs(err, domain.ErrLengthMismatch)

	_, err = s.usecase.AddToCollection(c, curatorAddr,
		[]domain.TokenId{31}, []int64{10, 20}, []domain.Currency{domain.NativeCurrency()}, []string{"100"}, lock)
	s.Require().ErrorIs(err, domain.ErrLengthMismatch)

	_, err = s.usecase.AddToCollection(c, curatorAddr,
		[]domain.TokenId{31}, []int64{0}, []domain.Currency{domain.NativeCurrency()}, []string{"100"}, lock)
	s.Require().ErrorIs(err, domain.ErrInvalidQuantity)

	_, err = s.usecase.AddToCollection(c, curatorAddr,
		[]domain.TokenId{31}, []int64{10}, []domain.Currency{domain.NativeCurrency()}, []string{"0"}, lock)
	s.Require().ErrorIs(err, domain.ErrInvalidPrice)

	_, err = s.usecase.AddToCollection(c, curatorAddr,
		[]domain.TokenId{31}, []int64{10}, []domain.Currency{domain.NativeCurrency()}, []string{"100"}, time.Now().Add(-time.Second))
	s.Require().ErrorIs(err, domain.ErrInvalidLock)

	s.roundRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *roundsTestSuite) TestAddToCollectionEscrowFailure() {
	c := ctx.Background()
	// curator approved the engine but holds nothing
	s.assets.SetApprovalForAll(curatorAddr, engineAddr, true)

	_, err := s.usecase.AddToCollection(c, curatorAddr,
		[]domain.TokenId{31}, []int64{10}, []domain.Currency{domain.NativeCurrency()}, []string{"100"}, time.Now().Add(time.Hour))
	s.Require().ErrorIs(err, domain.ErrTransferFailed)
	s.roundRepo.AssertNotCalled(s.T(), "NextIndex", mock.Anything)
}

func (s *roundsTestSuite) TestAddToRound() {
	c := ctx.Background()
	r := s.lockedRound(time.Now().Add(time.Hour))
	s.assets.Mint(curatorAddr, 33, 5)
	s.assets.SetApprovalForAll(curatorAddr, engineAddr, true)
	s.roundRepo.On("FindOne", mock.Anything, int64(0)).Return(r, nil).Once()
	s.roundRepo.On("Append", mock.Anything, int64(0), mock.MatchedBy(func(cs []round.Collectable) bool {
		return len(cs) == 1 && cs[0].ItemId == 33 && cs[0].Available == 5
	})).Return(nil).Once()

	err := s.usecase.AddToRound(c, curatorAddr, 0,
		[]domain.TokenId{33}, []int64{5}, []domain.Currency{domain.NativeCurrency()}, []string{"50"})
	s.Require().NoError(err)
	s.Equal(int64(5), s.balanceOf(engineAddr, 33))
	s.roundRepo.AssertExpectations(s.T())
}

func (s *roundsTestSuite) TestAddToRoundWrongCurator() {
	c := ctx.Background()
	r := s.lockedRound(time.Now().Add(time.Hour))
	s.roundRepo.On("FindOne", mock.Anything, int64(0)).Return(r, nil).Once()

	err := s.usecase.AddToRound(c, buyerAddr, 0,
		[]domain.TokenId{33}, []int64{5}, []domain.Currency{domain.NativeCurrency()}, []string{"50"})
	s.Require().ErrorIs(err, domain.ErrUnauthorized)
}

func (s *roundsTestSuite) TestAddToRoundNotFound() {
	c := ctx.Background()
	s.roundRepo.On("FindOne", mock.Anything, int64(9)).Return(nil, domain.ErrRoundNotFound).Once()

	err := s.usecase.AddToRound(c, curatorAddr, 9,
		[]domain.TokenId{33}, []int64{5}, []domain.Currency{domain.NativeCurrency()}, []string{"50"})
	s.Require().ErrorIs(err, domain.ErrRoundNotFound)
}

func (s *roundsTestSuite) TestBuyCollectable() {
	c := ctx.Background()
	r := s.lockedRound(time.Now().Add(time.Hour))
	s.assets.Mint(engineAddr, 31, 10)
	s.roundRepo.On("FindOne", mock.Anything, int64(0)).Return(r, nil).Once()
	s.roundRepo.On("DecrementAvailable", mock.Anything, int64(0), 0, int64(3)).Return(nil).Once()
	s.settlement.On("Collect", mock.Anything, buyerAddr, big.NewInt(300), domain.NativeCurrency(), big.NewInt(300)).Return(nil).Once()

	err := s.usecase.BuyCollectable(c, buyerAddr, 0, 0, 3, "300")
	s.Require().NoError(err)
	s.Equal(int64(3), s.balanceOf(buyerAddr, 31))
	s.Equal(int64(7), s.balanceOf(engineAddr, 31))
	s.roundRepo.AssertExpectations(s.T())
	s.settlement.AssertExpectations(s.T())
}

func (s *roundsTestSuite) TestBuyCollectableValidation() {
	c := ctx.Background()
	r := s.lockedRound(time.Now().Add(time.Hour))
	s.roundRepo.On("FindOne", mock.Anything, int64(0)).Return(r, nil)

	err := s.usecase.BuyCollectable(c, buyerAddr, 0, 0, 0, "0")
	s.Require().ErrorIs(err, domain.ErrInvalidQuantity)

	err = s.usecase.BuyCollectable(c, buyerAddr, 0, 0, 11, "1100")
	s.Require().ErrorIs(err, domain.ErrSoldOut)

	err = s.usecase.BuyCollectable(c, buyerAddr, 0, 0, 3, "299")
	s.Require().ErrorIs(err, domain.ErrWrongPayment)

	err = s.usecase.BuyCollectable(c, buyerAddr, 0, 5, 1, "100")
	s.Require().ErrorIs(err, domain.ErrNotFound)

	s.roundRepo.AssertNotCalled(s.T(), "DecrementAvailable", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *roundsTestSuite) TestBuyCollectableRace() {
	c := ctx.Background()
	r := s.lockedRound(time.Now().Add(time.Hour))
	s.roundRepo.On("FindOne", mock.Anything, int64(0)).Return(r, nil).Once()
	// another buyer drained the entry between read and reserve
	s.roundRepo.On("DecrementAvailable", mock.Anything, int64(0), 0, int64(3)).Return(domain.ErrNotFound).Once()

	err := s.usecase.BuyCollectable(c, buyerAddr, 0, 0, 3, "300")
	s.Require().ErrorIs(err, domain.ErrSoldOut)
	s.settlement.AssertNotCalled(s.T(), "Collect", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *roundsTestSuite) TestBuyCollectableCollectFailureReleases() {
	c := ctx.Background()
	r := s.lockedRound(time.Now().Add(time.Hour))
	s.roundRepo.On("FindOne", mock.Anything, int64(0)).Return(r, nil).Once()
	s.roundRepo.On("DecrementAvailable", mock.Anything, int64(0), 0, int64(3)).Return(nil).Once()
	s.roundRepo.On("IncrementAvailable", mock.Anything, int64(0), 0, int64(3)).Return(nil).Once()
	s.settlement.On("Collect", mock.Anything, buyerAddr, big.NewInt(300), domain.NativeCurrency(), big.NewInt(300)).Return(domain.ErrInsufficientPayment).Once()

	err := s.usecase.BuyCollectable(c, buyerAddr, 0, 0, 3, "300")
	s.Require().ErrorIs(err, domain.ErrInsufficientPayment)
	s.roundRepo.AssertExpectations(s.T())
}

func (s *roundsTestSuite) TestWithdrawBeforeLock() {
	c := ctx.Background()
	r := s.lockedRound(time.Now().Add(time.Hour))
	s.roundRepo.On("FindOne", mock.Anything, int64(0)).Return(r, nil)

	err := s.usecase.WithdrawERC1155(c, curatorAddr, 0, 0, 1)
	s.Require().ErrorIs(err, domain.ErrLockActive)

	err = s.usecase.WithdrawAllERC1155(c, curatorAddr, 0)
	s.Require().ErrorIs(err, domain.ErrLockActive)
}

func (s *roundsTestSuite) TestWithdrawAfterLock() {
	c := ctx.Background()
	r := s.lockedRound(time.Now().Add(-time.Hour))
	s.assets.Mint(engineAddr, 31, 10)
	s.roundRepo.On("FindOne", mock.Anything, int64(0)).Return(r, nil).Once()
	s.roundRepo.On("DecrementAvailable", mock.Anything, int64(0), 0, int64(4)).Return(nil).Once()

	err := s.usecase.WithdrawERC1155(c, curatorAddr, 0, 0, 4)
	s.Require().NoError(err)
	s.Equal(int64(4), s.balanceOf(curatorAddr, 31))
	s.roundRepo.AssertExpectations(s.T())
}

func (s *roundsTestSuite) TestWithdrawTooMuch() {
	c := ctx.Background()
	r := s.lockedRound(time.Now().Add(-time.Hour))
	s.roundRepo.On("FindOne", mock.Anything, int64(0)).Return(r, nil).Once()

	err := s.usecase.WithdrawERC1155(c, curatorAddr, 0, 0, 11)
	s.Require().ErrorIs(err, domain.ErrInsufficientRemaining)
}

func (s *roundsTestSuite) TestWithdrawWrongCaller() {
	c := ctx.Background()
	r := s.lockedRound(time.Now().Add(-time.Hour))
	s.roundRepo.On("FindOne", mock.Anything, int64(0)).Return(r, nil).Once()

	err := s.usecase.WithdrawERC1155(c, buyerAddr, 0, 0, 1)
	s.Require().ErrorIs(err, domain.ErrUnauthorized)
}

func (s *roundsTestSuite) TestWithdrawAllDrainsEverything() {
	c := ctx.Background()
	r := s.lockedRound(time.Now().Add(-time.Hour))
	s.assets.Mint(engineAddr, 31, 10)
	s.assets.Mint(engineAddr, 32, 4)
	s.roundRepo.On("FindOne", mock.Anything, int64(0)).Return(r, nil).Once()
	s.roundRepo.On("DecrementAvailable", mock.Anything, int64(0), 0, int64(10)).Return(nil).Once()
	s.roundRepo.On("DecrementAvailable", mock.Anything, int64(0), 1, int64(4)).Return(nil).Once()

	err := s.usecase.WithdrawAllERC1155(c, curatorAddr, 0)
	s.Require().NoError(err)
	s.Equal(int64(10), s.balanceOf(curatorAddr, 31))
	s.Equal(int64(4), s.balanceOf(curatorAddr, 32))
	s.roundRepo.AssertExpectations(s.T())
}

func (s *roundsTestSuite) TestWithdrawAllIsIdempotent() {
	c := ctx.Background()
	r := s.lockedRound(time.Now().Add(-time.Hour))
	r.Collectables[0].Available = 0
	r.Collectables[1].Available = 0
	s.roundRepo.On("FindOne", mock.Anything, int64(0)).Return(r, nil).Once()

	err := s.usecase.WithdrawAllERC1155(c, curatorAddr, 0)
	s.Require().NoError(err)
	s.roundRepo.AssertNotCalled(s.T(), "DecrementAvailable", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *roundsTestSuite) TestSweep() {
	c := ctx.Background()
	// 10 units in custody, 7 still owed to rounds, 3 unaccounted
	s.assets.Mint(engineAddr, 31, 10)
	s.roundRepo.On("OutstandingAvailable", mock.Anything, domain.TokenId(31)).Return(int64(7), nil).Once()

	err := s.usecase.SweepERC1155(c, ownerAddr, 31, 3)
	s.Require().NoError(err)
	s.Equal(int64(3), s.balanceOf(ownerAddr, 31))
	s.Equal(int64(7), s.balanceOf(engineAddr, 31))
}

func (s *roundsTestSuite) TestSweepBeyondSurplus() {
	c := ctx.Background()
	s.assets.Mint(engineAddr, 31, 10)
	s.roundRepo.On("OutstandingAvailable", mock.Anything, domain.TokenId(31)).Return(int64(7), nil).Once()

	err := s.usecase.SweepERC1155(c, ownerAddr, 31, 4)
	s.Require().ErrorIs(err, domain.ErrInsufficientUnaccounted)
	s.Equal(int64(10), s.balanceOf(engineAddr, 31))
}

func (s *roundsTestSuite) TestSweepOwnerOnly() {
	c := ctx.Background()
	err := s.usecase.SweepERC1155(c, curatorAddr, 31, 1)
	s.Require().ErrorIs(err, domain.ErrUnauthorized)
}

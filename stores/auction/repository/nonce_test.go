package repository

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/auction"
	"github.com/openloot/goapi/service/query"
	queryMocks "github.com/openloot/goapi/service/query/mocks"
)

const testChainId = domain.ChainId(5)

type nonceRepoTestSuite struct {
	suite.Suite

	q    *queryMocks.Mongo
	repo auction.NonceRepo
}

func (s *nonceRepoTestSuite) SetupTest() {
	s.q = &queryMocks.Mongo{}
	s.repo = NewNonceRepo(s.q, testChainId)
}

func TestNonceRepoTestSuite(t *testing.T) {
	suite.Run(t, new(nonceRepoTestSuite))
}

func (s *nonceRepoTestSuite) TestConsumeFirstTimeUpserts() {
	c := ctx.Background()
	s.q.On("CustomPatch", mock.Anything, domain.TableAuctionNonces,
		bson.M{"chainId": testChainId, "auctionId": domain.AuctionId(7), "value": int64(0)},
		bson.M{"$inc": bson.M{"value": 1}}, true).Return(nil).Once()

	s.Require().NoError(s.repo.Consume(c, 7, 0))
	s.q.AssertExpectations(s.T())
}

func (s *nonceRepoTestSuite) TestConsumeStaleNonce() {
	c := ctx.Background()
	s.q.On("CustomPatch", mock.Anything, domain.TableAuctionNonces, mock.Anything, mock.Anything, false).
		Return(query.ErrNotFound).Once()

	err := s.repo.Consume(c, 7, 2)
	s.Require().ErrorIs(err, domain.ErrNonceMismatch)
}

func (s *nonceRepoTestSuite) TestConsumeUpsertRace() {
	c := ctx.Background()
	s.q.On("CustomPatch", mock.Anything, domain.TableAuctionNonces, mock.Anything, mock.Anything, true).
		Return(query.ErrDuplicateKey).Once()

	err := s.repo.Consume(c, 7, 0)
	s.Require().ErrorIs(err, domain.ErrNonceMismatch)
}

func (s *nonceRepoTestSuite) TestRestore() {
	c := ctx.Background()
	s.q.On("CustomPatch", mock.Anything, domain.TableAuctionNonces,
		bson.M{"chainId": testChainId, "auctionId": domain.AuctionId(7), "value": int64(1)},
		bson.M{"$inc": bson.M{"value": -1}}, false).Return(nil).Once()

	s.Require().NoError(s.repo.Restore(c, 7, 0))
	s.q.AssertExpectations(s.T())
}

func (s *nonceRepoTestSuite) TestRestoreLeavesAdvancedNonceAlone() {
	c := ctx.Background()
	s.q.On("CustomPatch", mock.Anything, domain.TableAuctionNonces, mock.Anything, mock.Anything, false).
		Return(query.ErrNotFound).Once()

	err := s.repo.Restore(c, 7, 0)
	s.Require().ErrorIs(err, domain.ErrNonceMismatch)
}

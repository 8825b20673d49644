package usecase

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/ethereum"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/auction"
	"github.com/openloot/goapi/domain/auction/mocks"
)

const (
	testChainId  = domain.ChainId(1)
	engineAddr   = domain.Address("0x00000000000000000000000000000000000e1439")
	bidderKeyHex = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
)

type verifierTestSuite struct {
	suite.Suite

	nonceRepo *mocks.NonceRepo
	verifier  auction.Verifier
}

func (s *verifierTestSuite) SetupTest() {
	s.nonceRepo = &mocks.NonceRepo{}
	s.verifier = New(&VerifierCfg{
		ChainId:           testChainId,
		VerifyingContract: engineAddr,
		Recoverer:         ethereum.NewRecoverer(),
		NonceRepo:         s.nonceRepo,
	})
}

func TestVerifierTestSuite(t *testing.T) {
	suite.Run(t, new(verifierTestSuite))
}

// signBid produces the split signature a wallet would attach to the bid.
func (s *verifierTestSuite) signBid(bid *auction.Bid, keyHex string) (uint8, string, string) {
	key, err := crypto.HexToECDSA(keyHex)
	s.Require().NoError(err)

	digest, err := bid.Digest(testChainId, engineAddr)
	s.Require().NoError(err)

	sig, err := crypto.Sign(digest, key)
	s.Require().NoError(err)

	r := hexutil.Encode(sig[:32])
	sVal := hexutil.Encode(sig[32:64])
	v := sig[64] + 27
	return v, r, sVal
}

func (s *verifierTestSuite) bidderAddress(keyHex string) domain.Address {
	key, err := crypto.HexToECDSA(keyHex)
	s.Require().NoError(err)
	return domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())
}

func (s *verifierTestSuite) testBid() *auction.Bid {
	return &auction.Bid{
		AuctionId: 7,
		TokenIds:  []domain.TokenId{1, 2},
		Amounts:   []int64{10, 20},
		Bidder:    s.bidderAddress(bidderKeyHex),
		Price:     "1000000000000000000",
		Token:     "0x0000000000000000000000000000000000111111",
		Nonce:     0,
	}
}

func (s *verifierTestSuite) TestVerify() {
	c := ctx.Background()
	bid := s.testBid()
	v, r, sv := s.signBid(bid, bidderKeyHex)
	s.nonceRepo.On("Get", mock.Anything, bid.AuctionId).Return(int64(0), nil).Once()

	s.Require().NoError(s.verifier.Verify(c, bid, v, r, sv))
	s.nonceRepo.AssertExpectations(s.T())
}

func (s *verifierTestSuite) TestVerifyRejectsTamperedPrice() {
	c := ctx.Background()
	bid := s.testBid()
	v, r, sv := s.signBid(bid, bidderKeyHex)

	bid.Price = "2000000000000000000"
	err := s.verifier.Verify(c, bid, v, r, sv)
	s.Require().ErrorIs(err, domain.ErrInvalidSignature)
}

func (s *verifierTestSuite) TestVerifyRejectsWrongBidder() {
	c := ctx.Background()
	bid := s.testBid()
	// signed by a key that is not the declared bidder
	v, r, sv := s.signBid(bid, "8a1f9a8f95be41cd7ccb6168179afb4504aefe388d1e14474d32c45c72ce7b7a")

	err := s.verifier.Verify(c, bid, v, r, sv)
	s.Require().ErrorIs(err, domain.ErrInvalidSignature)
}

func (s *verifierTestSuite) TestVerifyRejectsLengthMismatch() {
	c := ctx.Background()
	bid := s.testBid()
	bid.Amounts = bid.Amounts[:1]
	err := s.verifier.Verify(c, bid, 27, "0x00", "0x00")
	s.Require().ErrorIs(err, domain.ErrLengthMismatch)
}

func (s *verifierTestSuite) TestVerifyRejectsStaleNonce() {
	c := ctx.Background()
	bid := s.testBid()
	v, r, sv := s.signBid(bid, bidderKeyHex)
	s.nonceRepo.On("Get", mock.Anything, bid.AuctionId).Return(int64(1), nil).Once()

	err := s.verifier.Verify(c, bid, v, r, sv)
	s.Require().ErrorIs(err, domain.ErrNonceMismatch)
}

func (s *verifierTestSuite) TestVerifyAcceptsLegacyV() {
	c := ctx.Background()
	bid := s.testBid()
	v, r, sv := s.signBid(bid, bidderKeyHex)
	s.nonceRepo.On("Get", mock.Anything, bid.AuctionId).Return(int64(0), nil).Once()

	// raw 0/1 recovery id instead of the 27/28 convention
	s.Require().NoError(s.verifier.Verify(c, bid, v-27, r, sv))
}

func (s *verifierTestSuite) TestConsumeNonce() {
	c := ctx.Background()
	s.nonceRepo.On("Consume", mock.Anything, domain.AuctionId(7), int64(0)).Return(nil).Once()
	s.Require().NoError(s.verifier.ConsumeNonce(c, 7, 0))
	s.nonceRepo.AssertExpectations(s.T())
}

func (s *verifierTestSuite) TestRestoreNonce() {
	c := ctx.Background()
	s.nonceRepo.On("Restore", mock.Anything, domain.AuctionId(7), int64(0)).Return(nil).Once()
	s.Require().NoError(s.verifier.RestoreNonce(c, 7, 0))
	s.nonceRepo.AssertExpectations(s.T())
}

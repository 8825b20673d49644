package amountformatter

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/openloot/goapi/domain"
)

var usdcAddr = domain.Address("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")

type testsuite struct {
	suite.Suite

	formatter AmountFormatter
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.formatter = NewAmountFormatter(&AmountFormatterCfg{
		TokenDecimals: map[domain.Address]int32{usdcAddr: 6},
	})
}

func (ts *testsuite) TestDisplayAmountNative() {
	wei, ok := new(big.Int).SetString("1500000000000000000", 10)
	ts.Require().True(ok)
	ts.Equal("1.5", ts.formatter.DisplayAmount(domain.NativeCurrency(), wei).String())
}

func (ts *testsuite) TestDisplayAmountTokenOverride() {
	display := ts.formatter.DisplayAmount(domain.TokenCurrency(usdcAddr), big.NewInt(2500000))
	ts.Equal("2.5", display.String())
}

func (ts *testsuite) TestDisplayAmountUnknownTokenDefaultsTo18() {
	other := domain.Address("0x000000000000000000000000000000000000dEaD")
	display := ts.formatter.DisplayAmount(domain.TokenCurrency(other), big.NewInt(1))
	ts.Equal("0.000000000000000001", display.String())
}

func (ts *testsuite) TestDisplayAmountNil() {
	ts.True(ts.formatter.DisplayAmount(domain.NativeCurrency(), nil).IsZero())
}

func (ts *testsuite) TestDisplayAmountFromString() {
	display, err := ts.formatter.DisplayAmountFromString(domain.TokenCurrency(usdcAddr), "1000000")
	ts.Require().NoError(err)
	ts.Equal("1", display.String())

	_, err = ts.formatter.DisplayAmountFromString(domain.NativeCurrency(), "not-a-number")
	ts.Error(err)
}

func (ts *testsuite) TestRawAmountRoundTrip() {
	display := decimal.RequireFromString("3.25")
	raw := ts.formatter.RawAmount(domain.TokenCurrency(usdcAddr), display)
	ts.Equal(int64(3250000), raw.Int64())
	ts.Equal("3.25", ts.formatter.DisplayAmount(domain.TokenCurrency(usdcAddr), raw).String())
}

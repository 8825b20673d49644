package amountformatter

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/openloot/goapi/domain"
)

// AmountFormatter converts between raw integer amounts in a currency's
// smallest unit and human readable display amounts.
type AmountFormatter interface {
	DisplayAmount(currency domain.Currency, value *big.Int) decimal.Decimal
	DisplayAmountFromString(currency domain.Currency, value string) (decimal.Decimal, error)
	RawAmount(currency domain.Currency, display decimal.Decimal) *big.Int
}

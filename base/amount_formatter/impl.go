package amountformatter

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/openloot/goapi/domain"
)

const defaultDecimals = 18

type AmountFormatterCfg struct {
	// TokenDecimals overrides the decimal count for specific tokens.
	// Currencies without an entry use the default of 18.
	TokenDecimals map[domain.Address]int32
}

type impl struct {
	tokenDecimals map[domain.Address]int32
}

func NewAmountFormatter(cfg *AmountFormatterCfg) AmountFormatter {
	decimals := make(map[domain.Address]int32, len(cfg.TokenDecimals))
	for token, d := range cfg.TokenDecimals {
		decimals[token.ToLower()] = d
	}
	return &impl{tokenDecimals: decimals}
}

func (f *impl) decimals(currency domain.Currency) int32 {
	if currency.IsNative() {
		return defaultDecimals
	}
	if d, ok := f.tokenDecimals[currency.Token.ToLower()]; ok {
		return d
	}
	return defaultDecimals
}

func (f *impl) DisplayAmount(currency domain.Currency, value *big.Int) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -f.decimals(currency))
}

func (f *impl) DisplayAmountFromString(currency domain.Currency, value string) (decimal.Decimal, error) {
	raw, err := domain.ParseAmount(value)
	if err != nil {
		return decimal.Zero, err
	}
	return f.DisplayAmount(currency, raw), nil
}

func (f *impl) RawAmount(currency domain.Currency, display decimal.Decimal) *big.Int {
	return display.Shift(f.decimals(currency)).BigInt()
}

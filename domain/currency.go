package domain

// CurrencyKind discriminates the two payment-currency cases. Keeping the
// distinction a tagged variant instead of a zero-address sentinel makes
// the dispatch in the payment path exhaustive.
type CurrencyKind string

const (
	CurrencyKindNative CurrencyKind = "native"
	CurrencyKindToken  CurrencyKind = "token"
)

// Currency is the payment currency chosen at listing time. Token is only
// meaningful when Kind is CurrencyKindToken.
type Currency struct {
	Kind  CurrencyKind `json:"kind" bson:"kind"`
	Token Address      `json:"token,omitempty" bson:"token,omitempty"`
}

func NativeCurrency() Currency {
	return Currency{Kind: CurrencyKindNative}
}

func TokenCurrency(token Address) Currency {
	return Currency{Kind: CurrencyKindToken, Token: token.ToLower()}
}

func (c Currency) IsNative() bool {
	return c.Kind == CurrencyKindNative
}

func (c Currency) Equals(o Currency) bool {
	if c.Kind != o.Kind {
		return false
	}
	if c.Kind == CurrencyKindToken {
		return c.Token.Equals(o.Token)
	}
	return true
}

// Key is a stable identifier used to accumulate per-currency balances.
func (c Currency) Key() string {
	if c.IsNative() {
		return string(CurrencyKindNative)
	}
	return c.Token.ToLowerStr()
}

func (c Currency) Validate() error {
	switch c.Kind {
	case CurrencyKindNative:
		return nil
	case CurrencyKindToken:
		if c.Token.IsEmpty() || c.Token.Equals(EmptyAddress) {
			return ErrInvalidCurrency
		}
		return nil
	default:
		return ErrInvalidCurrency
	}
}

package domain

import (
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

type SortDir int8

const (
	SortDirAsc  SortDir = 1
	SortDirDesc SortDir = -1
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// TokenId identifies a semi-fungible asset within the asset ledger.
type TokenId int64

// SaleId identifies a direct-sale listing. Ids are assigned sequentially
// starting from 1, matching the listing counter semantics.
type SaleId int64

// AuctionId identifies an off-chain negotiated auction.
type AuctionId int64

// ToBigInt parses decimal strings into big ints. It returns an error on
// the first string that is not a valid base-10 integer.
func ToBigInt(strs []string) ([]*big.Int, error) {
	res := make([]*big.Int, 0, len(strs))
	for _, s := range strs {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, xerrors.Errorf("invalid number %s", s)
		}
		res = append(res, n)
	}
	return res, nil
}

// ParseAmount parses a single non-negative decimal string amount.
func ParseAmount(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, xerrors.Errorf("invalid amount %s", s)
	}
	return n, nil
}

type Table string

const (
	TableCounters         Table = "counters"
	TableSales            Table = "sales"
	TableRounds           Table = "rounds"
	TableAuctionNonces    Table = "auction_nonces"
	TablePendingBalances  Table = "pending_balances"
	TableSettlementEvents Table = "settlement_events"
)

package round

import (
	"time"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
)

// Collectable is one entry of a curated round: an asset id offered at a
// fixed per-unit price in one currency. Available only ever decreases,
// through purchase and recovery, and never goes negative.
type Collectable struct {
	ItemId    domain.TokenId  `json:"itemId" bson:"itemId"`
	Available int64           `json:"available" bson:"available"`
	Currency  domain.Currency `json:"currency" bson:"currency"`
	Price     string          `json:"price" bson:"price"`
}

// Round is an append-only batch of collectables. LockTimestamp gates the
// unsold-remainder recovery paths; it is fixed when the round is created
// and never decreased.
type Round struct {
	ChainId       domain.ChainId `json:"chainId" bson:"chainId"`
	RoundIndex    int64          `json:"roundIndex" bson:"roundIndex"`
	Curator       domain.Address `json:"curator" bson:"curator"`
	Collectables  []Collectable  `json:"collectables" bson:"collectables"`
	LockTimestamp time.Time      `json:"lockTimestamp" bson:"lockTimestamp"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type findOptions struct {
	SortBy  *string
	SortDir *domain.SortDir
	Offset  *int32
	Limit   *int32
	ChainId *domain.ChainId
	Curator *domain.Address
}

type FindOptions func(*findOptions) error

func GetFindOptions(opts ...FindOptions) (findOptions, error) {
	res := findOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithSort(sortby string, sortdir domain.SortDir) FindOptions {
	return func(options *findOptions) error {
		options.SortBy = &sortby
		options.SortDir = &sortdir
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindOptions {
	return func(options *findOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithChainId(chainId domain.ChainId) FindOptions {
	return func(options *findOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithCurator(curator domain.Address) FindOptions {
	return func(options *findOptions) error {
		options.Curator = curator.ToLowerPtr()
		return nil
	}
}

type Repo interface {
	// NextIndex allocates the next round index, starting from 0
	NextIndex(c ctx.Ctx) (int64, error)
	Create(c ctx.Ctx, value *Round) error
	FindOne(c ctx.Ctx, roundIndex int64) (*Round, error)
	FindAll(c ctx.Ctx, opts ...FindOptions) ([]*Round, error)

	// Append adds collectables to an existing round. Returns
	// domain.ErrRoundNotFound when the index is out of range.
	Append(c ctx.Ctx, roundIndex int64, collectables []Collectable) error

	// DecrementAvailable conditionally decreases a collectable's
	// available counter by qty. It fails with domain.ErrNotFound when no
	// round matches or the remaining quantity is below qty, leaving the
	// counter untouched, so a success is an exactly-once reservation.
	DecrementAvailable(c ctx.Ctx, roundIndex int64, collectableIndex int, qty int64) error

	// IncrementAvailable compensates a reservation whose settlement leg
	// failed.
	IncrementAvailable(c ctx.Ctx, roundIndex int64, collectableIndex int, qty int64) error

	// OutstandingAvailable sums all rounds' remaining available for one
	// asset id. Used by the sweep path to compute unaccounted surplus.
	OutstandingAvailable(c ctx.Ctx, itemId domain.TokenId) (int64, error)
}

type UseCase interface {
	AddToCollection(c ctx.Ctx, curator domain.Address, itemIds []domain.TokenId, amounts []int64, currencies []domain.Currency, prices []string, lockTimestamp time.Time) (*Round, error)
	AddToRound(c ctx.Ctx, curator domain.Address, roundIndex int64, itemIds []domain.TokenId, amounts []int64, currencies []domain.Currency, prices []string) error
	BuyCollectable(c ctx.Ctx, buyer domain.Address, roundIndex int64, collectableIndex int, qty int64, attachedValue string) error
	WithdrawERC1155(c ctx.Ctx, caller domain.Address, roundIndex int64, collectableIndex int, qty int64) error
	WithdrawAllERC1155(c ctx.Ctx, caller domain.Address, roundIndex int64) error
	SweepERC1155(c ctx.Ctx, caller domain.Address, itemId domain.TokenId, qty int64) error
	GetRound(c ctx.Ctx, roundIndex int64) (*Round, error)
	GetCollectable(c ctx.Ctx, roundIndex int64, collectableIndex int) (*Collectable, error)
}

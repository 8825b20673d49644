package event

import (
	"time"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
)

// Type enumerates the observable settlement events external indexers
// consume.
type Type string

const (
	TypeSaleCreated    Type = "sale-created"
	TypeSaleCancelled  Type = "sale-cancelled"
	TypeSaleCompleted  Type = "sale-completed"
	TypeAuctionSettled Type = "auction-settled"
	TypeRoundItemAdded Type = "round-item-added"
	TypeItemPurchased  Type = "item-purchased"
	TypeItemRecovered  Type = "item-recovered"
	TypeSurplusSwept   Type = "surplus-swept"
)

type Event struct {
	Id        string                 `json:"id" bson:"id"`
	ChainId   domain.ChainId         `json:"chainId" bson:"chainId"`
	Type      Type                   `json:"type" bson:"type"`
	Payload   map[string]interface{} `json:"payload" bson:"payload"`
	Timestamp time.Time              `json:"timestamp" bson:"timestamp"`
}

type findOptions struct {
	Offset *int32
	Limit  *int32
	Type   *Type
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

func WithPagination(offset int32, limit int32) FindOptions {
	return func(options *findOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithType(t Type) FindOptions {
	return func(options *findOptions) error {
		options.Type = &t
		return nil
	}
}

type Repo interface {
	Insert(c ctx.Ctx, value *Event) error
	FindAll(c ctx.Ctx, opts ...FindOptions) ([]*Event, error)
}

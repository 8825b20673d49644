package sale

import (
	"time"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/auction"
)

// Sale is a fixed-price direct listing. Assets stay with the seller
// until purchase; the engine only needs operator approval at buy time.
// A sale whose Active flag dropped is terminal and kept as an audit
// record, never deleted.
type Sale struct {
	ChainId  domain.ChainId   `json:"chainId" bson:"chainId"`
	SaleId   domain.SaleId    `json:"saleId" bson:"saleId"`
	Seller   domain.Address   `json:"seller" bson:"seller"`
	ItemIds  []domain.TokenId `json:"itemIds" bson:"itemIds"`
	Amounts  []int64          `json:"amounts" bson:"amounts"`
	Price    string           `json:"price" bson:"price"`
	Currency domain.Currency  `json:"currency" bson:"currency"`
	Active   bool             `json:"active" bson:"active"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type findOptions struct {
	SortBy  *string
	SortDir *domain.SortDir
	Offset  *int32
	Limit   *int32
	ChainId *domain.ChainId
	Seller  *domain.Address
	Active  *bool
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

func WithSeller(seller domain.Address) FindOptions {
	return func(options *findOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithActive(active bool) FindOptions {
	return func(options *findOptions) error {
		options.Active = &active
		return nil
	}
}

type Repo interface {
	// NextId allocates the next sale id, starting from 1
	NextId(c ctx.Ctx) (domain.SaleId, error)
	Create(c ctx.Ctx, value *Sale) error
	FindOne(c ctx.Ctx, id domain.SaleId) (*Sale, error)
	FindAll(c ctx.Ctx, opts ...FindOptions) ([]*Sale, error)

	// Deactivate flips Active from true to false. It returns
	// domain.ErrAlreadyInactive when the sale is already terminal, so a
	// successful call is an exactly-once claim on the sale.
	Deactivate(c ctx.Ctx, id domain.SaleId) error

	// Reactivate undoes a Deactivate when a later settlement leg failed
	// and the whole operation rolls back.
	Reactivate(c ctx.Ctx, id domain.SaleId) error
}

type UseCase interface {
	ListNewSale(c ctx.Ctx, seller domain.Address, itemIds []domain.TokenId, amounts []int64, price string, currency domain.Currency) (*Sale, error)
	CancelSale(c ctx.Ctx, caller domain.Address, id domain.SaleId) error
	BuyFromSale(c ctx.Ctx, buyer domain.Address, id domain.SaleId, attachedValue string) error
	SellerClaimBySig(c ctx.Ctx, bid *auction.Bid, v uint8, r, s string) error
	GetSale(c ctx.Ctx, id domain.SaleId) (*Sale, error)
	GetSales(c ctx.Ctx, opts ...FindOptions) ([]*Sale, error)
}

package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/log"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/sale"
	"github.com/openloot/goapi/service/query"
)

const saleCounterName = "saleId"

type saleRepoImpl struct {
	q       query.Mongo
	chainId domain.ChainId
}

func NewSaleRepo(q query.Mongo, chainId domain.ChainId) sale.Repo {
	return &saleRepoImpl{q, chainId}
}

func (im *saleRepoImpl) NextId(ctx ctx.Ctx) (domain.SaleId, error) {
	counter := struct {
		Seq int64 `bson:"seq"`
	}{}
	selector := bson.M{"chainId": im.chainId, "name": saleCounterName}
	if err := im.q.Increment(ctx, domain.TableCounters, selector, &counter, "seq", 1); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Increment")
		return 0, err
	}
	return domain.SaleId(counter.Seq), nil
}

func (im *saleRepoImpl) Create(ctx ctx.Ctx, value *sale.Sale) error {
	value.ChainId = im.chainId
	value.Seller = value.Seller.ToLower()
	if err := im.q.Insert(ctx, domain.TableSales, value); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"saleId": value.SaleId,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *saleRepoImpl) FindOne(ctx ctx.Ctx, id domain.SaleId) (*sale.Sale, error) {
	res := &sale.Sale{}
	err := im.q.FindOne(ctx, domain.TableSales, bson.M{"chainId": im.chainId, "saleId": id}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"saleId": id,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *saleRepoImpl) makeQuery(opts ...sale.FindOptions) (bson.M, findParams, error) {
	options, err := sale.GetFindOptions(opts...)
	if err != nil {
		return nil, findParams{}, err
	}

	qry := bson.M{"chainId": im.chainId}

	if options.ChainId != nil {
		qry["chainId"] = *options.ChainId
	}

	if options.Seller != nil {
		qry["seller"] = *options.Seller
	}

	if options.Active != nil {
		qry["active"] = *options.Active
	}

	params := findParams{sort: "_id"}

	if options.SortBy != nil {
		params.sort = *options.SortBy
		if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
			params.sort = "-" + params.sort
		}
	}

	if options.Offset != nil {
		params.offset = int(*options.Offset)
	}

	if options.Limit != nil {
		params.limit = int(*options.Limit)
	}

	return qry, params, nil
}

type findParams struct {
	offset int
	limit  int
	sort   string
}

func (im *saleRepoImpl) FindAll(ctx ctx.Ctx, opts ...sale.FindOptions) ([]*sale.Sale, error) {
	qry, params, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	res := []*sale.Sale{}
	err = im.q.Search(ctx, domain.TableSales, params.offset, params.limit, params.sort, qry, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *saleRepoImpl) Deactivate(ctx ctx.Ctx, id domain.SaleId) error {
	selector := bson.M{
		"chainId": im.chainId,
		"saleId":  id,
		"active":  true,
	}
	err := im.q.Patch(ctx, domain.TableSales, selector, bson.M{"active": false})
	if err == query.ErrNotFound {
		// distinguish a missing sale from one already claimed
		if _, ferr := im.FindOne(ctx, id); ferr != nil {
			return ferr
		}
		return domain.ErrAlreadyInactive
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"saleId": id,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}

func (im *saleRepoImpl) Reactivate(ctx ctx.Ctx, id domain.SaleId) error {
	selector := bson.M{
		"chainId": im.chainId,
		"saleId":  id,
		"active":  false,
	}
	err := im.q.Patch(ctx, domain.TableSales, selector, bson.M{"active": true})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"saleId": id,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}

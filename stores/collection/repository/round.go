package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/log"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/round"
	"github.com/openloot/goapi/service/query"
)

const roundCounterName = "roundIndex"

type roundRepoImpl struct {
	q       query.Mongo
	chainId domain.ChainId
}

func NewRoundRepo(q query.Mongo, chainId domain.ChainId) round.Repo {
	return &roundRepoImpl{q, chainId}
}

func (im *roundRepoImpl) NextIndex(ctx ctx.Ctx) (int64, error) {
	counter := struct {
		Seq int64 `bson:"seq"`
	}{}
	selector := bson.M{"chainId": im.chainId, "name": roundCounterName}
	if err := im.q.Increment(ctx, domain.TableCounters, selector, &counter, "seq", 1); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Increment")
		return 0, err
	}
	// counters start at 1, round indexes at 0
	return counter.Seq - 1, nil
}

func (im *roundRepoImpl) Create(ctx ctx.Ctx, value *round.Round) error {
	value.ChainId = im.chainId
	value.Curator = value.Curator.ToLower()
	if err := im.q.Insert(ctx, domain.TableRounds, value); err != nil {
		ctx.WithFields(log.Fields{
			"err":        err,
			"roundIndex": value.RoundIndex,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *roundRepoImpl) FindOne(ctx ctx.Ctx, roundIndex int64) (*round.Round, error) {
	res := &round.Round{}
	err := im.q.FindOne(ctx, domain.TableRounds, bson.M{"chainId": im.chainId, "roundIndex": roundIndex}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrRoundNotFound
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":        err,
			"roundIndex": roundIndex,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *roundRepoImpl) FindAll(ctx ctx.Ctx, opts ...round.FindOptions) ([]*round.Round, error) {
	options, err := round.GetFindOptions(opts...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{"chainId": im.chainId}
	if options.ChainId != nil {
		qry["chainId"] = *options.ChainId
	}
	if options.Curator != nil {
		qry["curator"] = *options.Curator
	}

	sort := "roundIndex"
	if options.SortBy != nil {
		sort = *options.SortBy
		if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*round.Round{}
	if err := im.q.Search(ctx, domain.TableRounds, offset, limit, sort, qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

func (im *roundRepoImpl) Append(ctx ctx.Ctx, roundIndex int64, collectables []round.Collectable) error {
	selector := bson.M{"chainId": im.chainId, "roundIndex": roundIndex}
	update := bson.M{
		"$push": bson.M{"collectables": bson.M{"$each": collectables}},
	}
	err := im.q.CustomPatch(ctx, domain.TableRounds, selector, update, false)
	if err == query.ErrNotFound {
		return domain.ErrRoundNotFound
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":        err,
			"roundIndex": roundIndex,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}

func (im *roundRepoImpl) DecrementAvailable(ctx ctx.Ctx, roundIndex int64, collectableIndex int, qty int64) error {
	field := fmt.Sprintf("collectables.%d.available", collectableIndex)
	selector := bson.M{
		"chainId":    im.chainId,
		"roundIndex": roundIndex,
		field:        bson.M{"$gte": qty},
	}
	update := bson.M{"$inc": bson.M{field: -qty}}
	err := im.q.CustomPatch(ctx, domain.TableRounds, selector, update, false)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":        err,
			"roundIndex": roundIndex,
			"index":      collectableIndex,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}

func (im *roundRepoImpl) IncrementAvailable(ctx ctx.Ctx, roundIndex int64, collectableIndex int, qty int64) error {
	field := fmt.Sprintf("collectables.%d.available", collectableIndex)
	selector := bson.M{
		"chainId":    im.chainId,
		"roundIndex": roundIndex,
		field:        bson.M{"$exists": true},
	}
	update := bson.M{"$inc": bson.M{field: qty}}
	err := im.q.CustomPatch(ctx, domain.TableRounds, selector, update, false)
	if err == query.ErrNotFound {
		return domain.ErrRoundNotFound
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":        err,
			"roundIndex": roundIndex,
			"index":      collectableIndex,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}

func (im *roundRepoImpl) OutstandingAvailable(ctx ctx.Ctx, itemId domain.TokenId) (int64, error) {
	matchStage := bson.D{{Key: "$match", Value: bson.M{"chainId": im.chainId}}}
	unwindStage := bson.D{{Key: "$unwind", Value: "$collectables"}}
	itemStage := bson.D{{Key: "$match", Value: bson.M{"collectables.itemId": itemId}}}
	groupStage := bson.D{{Key: "$group", Value: bson.M{
		"_id":   nil,
		"total": bson.M{"$sum": "$collectables.available"},
	}}}

	iter, fnClose, err := im.q.Pipe(ctx, domain.TableRounds, mongo.Pipeline{matchStage, unwindStage, itemStage, groupStage})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("failed to q.Pipe")
		return 0, err
	}
	defer fnClose()

	res := struct {
		Total int64 `bson:"total"`
	}{}
	if ok, err := iter.Next(ctx, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("failed to iter.Next")
		return 0, err
	} else if !ok {
		return 0, nil
	}
	return res.Total, nil
}

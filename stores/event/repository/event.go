package repository

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/log"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/event"
	"github.com/openloot/goapi/service/query"
)

type eventRepoImpl struct {
	q       query.Mongo
	chainId domain.ChainId
}

func NewEventRepo(q query.Mongo, chainId domain.ChainId) event.Repo {
	return &eventRepoImpl{q, chainId}
}

func (im *eventRepoImpl) Insert(ctx ctx.Ctx, value *event.Event) error {
	value.ChainId = im.chainId
	if value.Id == "" {
		value.Id = uuid.New().String()
	}
	if value.Timestamp.IsZero() {
		value.Timestamp = time.Now()
	}
	if err := im.q.Insert(ctx, domain.TableSettlementEvents, value); err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"type": value.Type,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *eventRepoImpl) FindAll(ctx ctx.Ctx, opts ...event.FindOptions) ([]*event.Event, error) {
	options, err := event.GetFindOptions(opts...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{"chainId": im.chainId}
	if options.Type != nil {
		qry["type"] = *options.Type
	}

	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*event.Event{}
	if err := im.q.Search(ctx, domain.TableSettlementEvents, offset, limit, "-timestamp", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/delivery"
	"github.com/openloot/goapi/domain/event"
)

type handler struct {
	events event.Repo
}

func New(e *echo.Echo, events event.Repo) {
	h := &handler{events: events}
	g := e.Group("/events")
	g.GET("", h.getEvents)
}

func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Type   string `query:"type"`
		Offset int32  `query:"offset"`
		Limit  int32  `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []event.FindOptions{}
	if p.Type != "" {
		opts = append(opts, event.WithType(event.Type(p.Type)))
	}
	if p.Limit > 0 {
		opts = append(opts, event.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.events.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

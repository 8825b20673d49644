package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/delivery"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/round"
	authMiddleware "github.com/openloot/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	rounds round.UseCase
}

func New(e *echo.Echo, ru round.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{rounds: ru}
	g := e.Group("/rounds")
	g.GET("/:roundIndex", h.getRound)
	g.GET("/:roundIndex/collectables/:index", h.getCollectable)
	g.POST("", h.addToCollection, authMiddleware.Auth())
	g.POST("/:roundIndex/collectables", h.addToRound, authMiddleware.Auth())
	g.POST("/:roundIndex/collectables/:index/buy", h.buyCollectable, authMiddleware.Auth())
	g.POST("/:roundIndex/collectables/:index/withdraw", h.withdraw, authMiddleware.Auth())
	g.POST("/:roundIndex/withdraw-all", h.withdrawAll, authMiddleware.Auth())
	g.POST("/sweep", h.sweep, authMiddleware.Auth())
}

type bundleParams struct {
	ItemIds    []domain.TokenId  `json:"itemIds"`
	Amounts    []int64           `json:"amounts"`
	Currencies []domain.Currency `json:"currencies"`
	Prices     []string          `json:"prices"`
}

func (h *handler) getRound(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	index, err := parseIndex(c.Param("roundIndex"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	res, err := h.rounds.GetRound(ctx, index)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getCollectable(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	index, err := parseIndex(c.Param("roundIndex"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	ci, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	res, err := h.rounds.GetCollectable(ctx, index, ci)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) addToCollection(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		bundleParams
		LockTimestamp int64 `json:"lockTimestamp"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.rounds.AddToCollection(ctx, address, p.ItemIds, p.Amounts, p.Currencies, p.Prices, time.Unix(p.LockTimestamp, 0))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) addToRound(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	index, err := parseIndex(c.Param("roundIndex"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	p := &bundleParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.rounds.AddToRound(ctx, address, index, p.ItemIds, p.Amounts, p.Currencies, p.Prices); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) buyCollectable(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	index, err := parseIndex(c.Param("roundIndex"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	ci, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	type params struct {
		Qty           int64  `json:"qty"`
		AttachedValue string `json:"attachedValue"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.rounds.BuyCollectable(ctx, address, index, ci, p.Qty, p.AttachedValue); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	index, err := parseIndex(c.Param("roundIndex"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	ci, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	type params struct {
		Qty int64 `json:"qty"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.rounds.WithdrawERC1155(ctx, address, index, ci, p.Qty); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) withdrawAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	index, err := parseIndex(c.Param("roundIndex"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if err := h.rounds.WithdrawAllERC1155(ctx, address, index); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) sweep(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		ItemId domain.TokenId `json:"itemId"`
		Qty    int64          `json:"qty"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.rounds.SweepERC1155(ctx, address, p.ItemId, p.Qty); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func parseIndex(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

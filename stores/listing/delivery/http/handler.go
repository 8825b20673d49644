package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/delivery"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/auction"
	"github.com/openloot/goapi/domain/sale"
	authMiddleware "github.com/openloot/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	sale sale.UseCase
}

func New(e *echo.Echo, su sale.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{sale: su}
	g := e.Group("/sales")
	g.GET("", h.getSales)
	g.GET("/:saleId", h.getSale)
	g.POST("", h.listNewSale, authMiddleware.Auth())
	g.DELETE("/:saleId", h.cancelSale, authMiddleware.Auth())
	g.POST("/:saleId/buy", h.buyFromSale, authMiddleware.Auth())
	g.POST("/claim-by-sig", h.sellerClaimBySig, authMiddleware.Auth())
}

func (h *handler) getSales(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Seller *domain.Address `query:"seller"`
		Active *bool           `query:"active"`
		Offset int32           `query:"offset"`
		Limit  int32           `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []sale.FindOptions{}
	if p.Seller != nil {
		opts = append(opts, sale.WithSeller(*p.Seller))
	}
	if p.Active != nil {
		opts = append(opts, sale.WithActive(*p.Active))
	}
	if p.Limit > 0 {
		opts = append(opts, sale.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.sale.GetSales(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getSale(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id, err := parseSaleId(c.Param("saleId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	res, err := h.sale.GetSale(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) listNewSale(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		ItemIds  []domain.TokenId `json:"itemIds"`
		Amounts  []int64          `json:"amounts"`
		Price    string           `json:"price"`
		Currency domain.Currency  `json:"currency"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.sale.ListNewSale(ctx, address, p.ItemIds, p.Amounts, p.Price, p.Currency)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) cancelSale(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	id, err := parseSaleId(c.Param("saleId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := h.sale.CancelSale(ctx, address, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) buyFromSale(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	id, err := parseSaleId(c.Param("saleId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	type params struct {
		AttachedValue string `json:"attachedValue"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.sale.BuyFromSale(ctx, address, id, p.AttachedValue); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) sellerClaimBySig(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Bid auction.Bid `json:"bid"`
		V   uint8       `json:"v"`
		R   string      `json:"r"`
		S   string      `json:"s"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.sale.SellerClaimBySig(ctx, &p.Bid, p.V, p.R, p.S); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func parseSaleId(raw string) (domain.SaleId, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return domain.SaleId(id), nil
}

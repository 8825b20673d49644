package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	amountformatter "github.com/openloot/goapi/base/amount_formatter"
	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/delivery"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/payment"
	authMiddleware "github.com/openloot/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	settlement payment.Settlement
	formatter  amountformatter.AmountFormatter
}

func New(e *echo.Echo, settlement payment.Settlement, formatter amountformatter.AmountFormatter, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{settlement: settlement, formatter: formatter}
	g := e.Group("/balances")
	g.GET("", h.getBalances)
	g.POST("/withdraw", h.withdraw, authMiddleware.Auth())
	g.POST("/withdraw-all", h.withdrawAll, authMiddleware.Auth())
}

func (h *handler) getBalances(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	balances, err := h.settlement.GetBalances(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	type balanceResp struct {
		*payment.PendingBalance
		DisplayAmount string `json:"displayAmount"`
	}

	res := make([]*balanceResp, 0, len(balances))
	for _, b := range balances {
		display, err := h.formatter.DisplayAmountFromString(b.Currency, b.Amount)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
		res = append(res, &balanceResp{PendingBalance: b, DisplayAmount: display.String()})
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		Currency domain.Currency `json:"currency"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := p.Currency.Validate(); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.settlement.WithdrawCurrency(ctx, address, p.Currency); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) withdrawAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	if err := h.settlement.WithdrawAllCurrencies(ctx, address); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

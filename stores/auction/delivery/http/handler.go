package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/delivery"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/domain/auction"
)

type handler struct {
	verifier auction.Verifier
}

func New(e *echo.Echo, verifier auction.Verifier) {
	h := &handler{verifier: verifier}
	g := e.Group("/auctions")
	g.GET("/:auctionId/nonce", h.getNonce)
}

// getNonce tells bidders which nonce their next signature must carry.
func (h *handler) getNonce(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	raw, err := strconv.ParseInt(c.Param("auctionId"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	nonce, err := h.verifier.GetNonce(ctx, domain.AuctionId(raw))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		AuctionId domain.AuctionId `json:"auctionId"`
		Nonce     int64            `json:"nonce"`
	}{domain.AuctionId(raw), nonce}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

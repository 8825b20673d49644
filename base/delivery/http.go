package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/openloot/goapi/domain"
	"github.com/openloot/goapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = statusForError(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

func statusForError(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound) || errors.Is(err, domain.ErrRoundNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotSeller):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrBadParamInput) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidBundle) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrLengthMismatch) ||
		errors.Is(err, domain.ErrInvalidLock) ||
		errors.Is(err, domain.ErrInvalidCurrency) ||
		errors.Is(err, domain.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyInactive) ||
		errors.Is(err, domain.ErrSoldOut) ||
		errors.Is(err, domain.ErrLockActive) ||
		errors.Is(err, domain.ErrInsufficientRemaining) ||
		errors.Is(err, domain.ErrInsufficientUnaccounted) ||
		errors.Is(err, domain.ErrNonceMismatch) ||
		errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientPayment) ||
		errors.Is(err, domain.ErrWrongPayment) ||
		errors.Is(err, domain.ErrTransferFailed) ||
		errors.Is(err, domain.ErrPayoutFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusBadRequest
	}
	return fallback
}

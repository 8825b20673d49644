package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// validation errors, always rejected before any state change
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidBundle   = errors.New("invalid bundle")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrLengthMismatch  = errors.New("length mismatch")
	ErrInvalidLock     = errors.New("invalid lock timestamp")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidAddress  = errors.New("Invalid address")

	// authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotSeller    = errors.New("caller is not the seller")

	// state errors
	ErrAlreadyInactive         = errors.New("sale is not active")
	ErrSoldOut                 = errors.New("sold out")
	ErrLockActive              = errors.New("lock period still active")
	ErrInsufficientRemaining   = errors.New("insufficient remaining quantity")
	ErrInsufficientUnaccounted = errors.New("insufficient unaccounted surplus")
	ErrRoundNotFound           = errors.New("round not found")
	ErrConflict                = errors.New("concurrent modification")

	// payment errors, any partial mutation is rolled back by the caller
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrWrongPayment        = errors.New("wrong payment value")
	ErrTransferFailed      = errors.New("token transfer failed")
	ErrPayoutFailed        = errors.New("payout failed")
	ErrOperatorNotApproved = errors.New("operator approval missing")

	// signature errors, rejected before nonce advancement
	ErrInvalidSignature = errors.New("Invalid signature")
	ErrNonceMismatch    = errors.New("nonce mismatch")
)

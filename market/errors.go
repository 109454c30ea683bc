// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"errors"
	"fmt"
)

// Error is a market failure carrying the numeric code clients match on.
type Error struct {
	Code uint64
	msg  string
}

func newError(code uint64, msg string) *Error {
	return &Error{Code: code, msg: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (code %d)", e.msg, e.Code)
}

// Error codes
var (
	ErrNotAuthorized         = newError(2, "not authorized")
	ErrInvalidTitle          = newError(11, "invalid title")
	ErrMarketNotFound        = newError(101, "market not found")
	ErrMarketResolved        = newError(102, "market resolved")
	ErrMarketNotResolved     = newError(103, "market not resolved")
	ErrNoOutcome             = newError(104, "no outcome")
	ErrInvalidAmount         = newError(105, "invalid amount")
	ErrInsufficientBalance   = newError(107, "insufficient balance")
	ErrArithmeticOverflow    = newError(108, "arithmetic overflow")
	ErrNoPosition            = newError(109, "no position")
	ErrNoWinnings            = newError(110, "no winnings")
	ErrInsufficientLiquidity = newError(111, "insufficient liquidity")
	ErrReentrantCall         = newError(112, "reentrant call")
	ErrInvalidMarket         = newError(113, "invalid market")
	ErrInvalidFee            = newError(114, "invalid fee")
	ErrNoFeesToClaim         = newError(115, "no fees to claim")
	ErrInvalidOdds           = newError(116, "invalid odds")
	ErrCalculationFailed     = newError(117, "calculation failed")
	ErrExcessiveSlippage     = newError(118, "excessive slippage")
	ErrContractPaused        = newError(119, "contract paused")
	ErrTransferFailed        = newError(120, "transfer failed")
)

var (
	ErrAlreadyInitialized = errors.New("market contract already initialized")
	ErrNotInitialized     = errors.New("market contract not initialized")
	ErrUnknownMethod      = errors.New("unknown method")
)

// ErrorCode returns the code of the first *Error in err's chain, or 0.
func ErrorCode(err error) uint64 {
	var merr *Error
	if errors.As(err, &merr) {
		return merr.Code
	}
	return 0
}

package trade

import "errors"

var (
	// ErrTradeNotFound indicates the trade doesn't exist.
	ErrTradeNotFound = errors.New("trade not found")
	// ErrInvalidInput indicates invalid trade input.
	ErrInvalidInput = errors.New("invalid trade input")
)

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error handling. Insufficiency during
// clearing is anticipated by the guard steps; these surface only from direct
// ledger calls or the execution safety net.
var (
	ErrTraderAlreadyExists   = errors.New("trader_already_exists")
	ErrTraderNotFound        = errors.New("trader_not_found")
	ErrInsufficientFunds     = errors.New("insufficient_funds")
	ErrInsufficientInventory = errors.New("insufficient_inventory")
	ErrUnpricedOrder         = errors.New("unpriced_order")
	ErrInvalidQuantity       = errors.New("invalid_quantity")
)

// TradeError reports a failed ledger mutation, identifying the offending
// party so the clearing loop can cancel the right order.
type TradeError struct {
	TraderID string
	Err      error
}

func (e *TradeError) Error() string {
	return fmt.Sprintf("trade failed for trader %s: %v", e.TraderID, e.Err)
}

func (e *TradeError) Unwrap() error { return e.Err }

// ValidationError represents an order placement validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

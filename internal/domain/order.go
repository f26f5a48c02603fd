package domain

import "github.com/google/uuid"

// Side indicates whether an order bids for stock or offers it.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Ranks reports whether price a ranks better than price b on this side:
// higher prices rank first for buys, lower prices first for sells.
func (s Side) Ranks(a, b int64) bool {
	if s == SideBuy {
		return a > b
	}
	return a < b
}

// Order is a simple limit order. The trader reference is shared, not owned:
// ledgers live in one authoritative store and many orders across many
// markets may point at the same trader.
//
// Remaining is mutated only through Fill (decrement) and Unfill (rollback
// restore); it never goes negative.
type Order struct {
	OrderID   string
	Side      Side
	Trader    *Trader
	Symbol    string
	Price     int64 // cents, always > 0
	Quantity  int64 // quantity at placement
	Remaining int64
}

// NewBuyOrder creates a limit buy order for quantity shares at price cents.
func NewBuyOrder(trader *Trader, symbol string, quantity, price int64) *Order {
	return newOrder(SideBuy, trader, symbol, quantity, price)
}

// NewSellOrder creates a limit sell order for quantity shares at price cents.
func NewSellOrder(trader *Trader, symbol string, quantity, price int64) *Order {
	return newOrder(SideSell, trader, symbol, quantity, price)
}

func newOrder(side Side, trader *Trader, symbol string, quantity, price int64) *Order {
	return &Order{
		OrderID:   uuid.New().String(),
		Side:      side,
		Trader:    trader,
		Symbol:    symbol,
		Price:     price,
		Quantity:  quantity,
		Remaining: quantity,
	}
}

// Equal reports structural equality: same symbol, price and remaining
// quantity. Cancellation looks orders up by this relation, not by id or
// object identity.
func (o *Order) Equal(other *Order) bool {
	if other == nil {
		return false
	}
	return o.Symbol == other.Symbol &&
		o.Price == other.Price &&
		o.Remaining == other.Remaining
}

// Fill consumes quantity shares from the order's remaining amount.
// Overfilling is programmer error.
func (o *Order) Fill(quantity int64) {
	if quantity < 0 || quantity > o.Remaining {
		panic("order: invalid fill quantity")
	}
	o.Remaining -= quantity
}

// Unfill restores quantity shares to the order's remaining amount. Used by
// trade rollback.
func (o *Order) Unfill(quantity int64) {
	if quantity < 0 {
		panic("order: negative unfill quantity")
	}
	o.Remaining += quantity
}

// Filled returns true once the order has no remaining quantity.
func (o *Order) Filled() bool {
	return o.Remaining == 0
}

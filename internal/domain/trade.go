package domain

import "github.com/google/uuid"

// Trade describes one match between a buy and a sell order. It is immutable
// once constructed and becomes part of history only after a successful
// Execute. Price is the maker price: the resting sell order's limit.
type Trade struct {
	TradeID  string
	Buy      *Order
	Sell     *Order
	Symbol   string
	Quantity int64
	Price    int64 // cents
}

// NewTrade creates a trade matching the two orders for quantity shares at
// price cents.
func NewTrade(buy, sell *Order, quantity, price int64) *Trade {
	return &Trade{
		TradeID:  uuid.New().String(),
		Buy:      buy,
		Sell:     sell,
		Symbol:   buy.Symbol,
		Quantity: quantity,
		Price:    price,
	}
}

// Execute stamps the trade with the next global tick, settles it against
// both traders' ledgers, and records the fill on both orders. Settlement is
// transactional: on failure neither ledger nor either order changes, and the
// returned TradeError identifies the offending party.
func (t *Trade) Execute(seq *Sequencer) (TickEvent[*Trade], error) {
	te := Stamp(seq, t)
	if err := SettleTrade(t.Buy.Trader, t.Sell.Trader, t.Symbol, t.Quantity, t.Price); err != nil {
		return TickEvent[*Trade]{}, err
	}
	t.Buy.Fill(t.Quantity)
	t.Sell.Fill(t.Quantity)
	return te, nil
}

// Rollback reverses a previously executed trade: the cash/inventory transfer
// is unwound and both orders regain the traded quantity. It is an explicit
// compensating operation for callers; the clearing loop never invokes it.
func (t *Trade) Rollback() error {
	if err := UnwindTrade(t.Buy.Trader, t.Sell.Trader, t.Symbol, t.Quantity, t.Price); err != nil {
		return err
	}
	t.Buy.Unfill(t.Quantity)
	t.Sell.Unfill(t.Quantity)
	return nil
}

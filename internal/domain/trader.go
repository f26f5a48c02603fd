package domain

import (
	"sort"
	"sync"
)

// Trader is a participant's ledger: a cash balance plus per-stock inventory.
// An absent inventory entry means a holding of zero.
//
// One trader can be a live counterparty in several concurrently clearing
// markets, so every ledger mutation and every guard read is serialised by
// the per-trader mutex. A settled trade never drives cash or inventory
// negative; operations that would do so fail without mutating anything.
type Trader struct {
	TraderID string
	Name     string

	mu        sync.Mutex
	cash      int64            // cents
	inventory map[string]int64 // symbol → quantity held
}

// NewTrader creates a trader with the given starting cash in cents and an
// empty inventory.
func NewTrader(id, name string, cash int64) *Trader {
	if cash < 0 {
		panic("trader: negative starting cash")
	}
	return &Trader{
		TraderID:  id,
		Name:      name,
		cash:      cash,
		inventory: make(map[string]int64),
	}
}

// Cash returns the trader's current cash balance in cents.
func (t *Trader) Cash() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cash
}

// Holding returns the quantity of symbol held, 0 when absent.
func (t *Trader) Holding(symbol string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inventory[symbol]
}

// TradedStocks returns the symbols the trader has ever held, in lexical
// order. Symbols whose holding has dropped to zero are included.
func (t *Trader) TradedStocks() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.inventory))
	for s := range t.inventory {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Endow adjusts the trader's holding of symbol by delta, outside of any
// trade. Used for initial positions and out-of-band transfers. Returns
// ErrInsufficientInventory if the adjustment would drive the holding
// negative.
func (t *Trader) Endow(symbol string, delta int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inventory[symbol]+delta < 0 {
		return &TradeError{TraderID: t.TraderID, Err: ErrInsufficientInventory}
	}
	t.inventory[symbol] += delta
	return nil
}

// ApplyBuy settles the buy side of a fill: the trader pays quantity×price
// cents and gains quantity shares of symbol. Fails with ErrInsufficientFunds
// (wrapped in a TradeError) when cash cannot cover the cost; on failure
// nothing is mutated.
func (t *Trader) ApplyBuy(symbol string, quantity, price int64) error {
	if quantity < 0 || price < 0 {
		panic("trader: negative quantity or price")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	cost := quantity * price
	if t.cash < cost {
		return &TradeError{TraderID: t.TraderID, Err: ErrInsufficientFunds}
	}
	t.cash -= cost
	t.inventory[symbol] += quantity
	return nil
}

// ApplySell settles the sell side of a fill: the trader gives up quantity
// shares of symbol and receives quantity×price cents. Fails with
// ErrInsufficientInventory (wrapped in a TradeError) when the holding cannot
// cover the quantity; on failure nothing is mutated.
func (t *Trader) ApplySell(symbol string, quantity, price int64) error {
	if quantity < 0 || price < 0 {
		panic("trader: negative quantity or price")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inventory[symbol] < quantity {
		return &TradeError{TraderID: t.TraderID, Err: ErrInsufficientInventory}
	}
	t.cash += quantity * price
	t.inventory[symbol] -= quantity
	return nil
}

// SettleTrade applies the bilateral transfer for one trade: the buyer pays
// quantity×price and gains inventory, the seller receives quantity×price and
// loses inventory. The settlement is transactional — both traders are locked
// (in TraderID order, so concurrent settlements cannot deadlock), both legs
// are validated, and then both commit or neither does.
func SettleTrade(buyer, seller *Trader, symbol string, quantity, price int64) error {
	if quantity <= 0 || price <= 0 {
		panic("trader: non-positive quantity or price")
	}
	lockPair(buyer, seller)
	defer unlockPair(buyer, seller)

	cost := quantity * price
	if buyer.cash < cost {
		return &TradeError{TraderID: buyer.TraderID, Err: ErrInsufficientFunds}
	}
	if seller.inventory[symbol] < quantity {
		return &TradeError{TraderID: seller.TraderID, Err: ErrInsufficientInventory}
	}

	buyer.cash -= cost
	buyer.inventory[symbol] += quantity
	seller.cash += cost
	seller.inventory[symbol] -= quantity
	return nil
}

// UnwindTrade reverses a previously settled trade: the seller pays back
// quantity×price to reacquire the shares from the buyer. Transactional in
// the same way as SettleTrade.
func UnwindTrade(buyer, seller *Trader, symbol string, quantity, price int64) error {
	if quantity <= 0 || price <= 0 {
		panic("trader: non-positive quantity or price")
	}
	lockPair(buyer, seller)
	defer unlockPair(buyer, seller)

	cost := quantity * price
	if seller.cash < cost {
		return &TradeError{TraderID: seller.TraderID, Err: ErrInsufficientFunds}
	}
	if buyer.inventory[symbol] < quantity {
		return &TradeError{TraderID: buyer.TraderID, Err: ErrInsufficientInventory}
	}

	seller.cash -= cost
	seller.inventory[symbol] += quantity
	buyer.cash += cost
	buyer.inventory[symbol] -= quantity
	return nil
}

// lockPair locks both traders in TraderID order. A trader crossing with
// itself is locked once.
func lockPair(a, b *Trader) {
	if a == b {
		a.mu.Lock()
		return
	}
	if a.TraderID > b.TraderID {
		a, b = b, a
	}
	a.mu.Lock()
	b.mu.Lock()
}

func unlockPair(a, b *Trader) {
	if a == b {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()
	b.mu.Unlock()
}

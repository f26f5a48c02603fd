package store

import (
	"sync"

	"github.com/efreitasn/marketsim/internal/domain"
)

// TradeHistory is the append-only, tick-ordered record of every executed
// trade across all markets, oldest first.
type TradeHistory struct {
	mu     sync.RWMutex
	trades []domain.TickEvent[*domain.Trade]
}

// NewTradeHistory creates an empty TradeHistory.
func NewTradeHistory() *TradeHistory {
	return &TradeHistory{}
}

// Append adds executed trades to the history in the given order.
func (h *TradeHistory) Append(trades ...domain.TickEvent[*domain.Trade]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.trades = append(h.trades, trades...)
}

// All returns the full history, oldest first.
func (h *TradeHistory) All() []domain.TickEvent[*domain.Trade] {
	h.mu.RLock()
	defer h.mu.RUnlock()

	// Return a copy to avoid callers mutating the internal slice.
	out := make([]domain.TickEvent[*domain.Trade], len(h.trades))
	copy(out, h.trades)
	return out
}

// BySymbol returns the trades involving the given stock, oldest first.
func (h *TradeHistory) BySymbol(symbol string) []domain.TickEvent[*domain.Trade] {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]domain.TickEvent[*domain.Trade], 0)
	for _, te := range h.trades {
		if te.Event.Symbol == symbol {
			out = append(out, te)
		}
	}
	return out
}

// Len returns the number of recorded trades.
func (h *TradeHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.trades)
}

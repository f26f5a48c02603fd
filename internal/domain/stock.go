package domain

import (
	"sort"
	"sync"
)

// Stocks are opaque identities compared by symbol. The registry tracks every
// symbol that has traded on the exchange; symbols are registered implicitly
// when their market is first created.
type StockRegistry struct {
	mu      sync.RWMutex
	symbols map[string]bool
}

// NewStockRegistry creates an empty StockRegistry.
func NewStockRegistry() *StockRegistry {
	return &StockRegistry{
		symbols: make(map[string]bool),
	}
}

// Register adds a symbol to the registry. Safe for concurrent use.
func (r *StockRegistry) Register(symbol string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.symbols[symbol] = true
}

// Exists returns true if the symbol has been registered. Safe for concurrent use.
func (r *StockRegistry) Exists(symbol string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.symbols[symbol]
}

// Symbols returns all registered symbols in lexical order.
func (r *StockRegistry) Symbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.symbols))
	for s := range r.symbols {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

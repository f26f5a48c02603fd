package engine

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/efreitasn/marketsim/internal/domain"
	"github.com/efreitasn/marketsim/internal/store"
)

// Exchange routes orders to per-stock markets and aggregates their trade
// histories. A market is created lazily on the first order for its symbol.
type Exchange struct {
	seq     *domain.Sequencer
	logger  *slog.Logger
	stocks  *domain.StockRegistry
	history *store.TradeHistory

	mu      sync.RWMutex
	markets map[string]*Market
}

// NewExchange creates an exchange stamping all events with seq and recording
// executed trades into history.
func NewExchange(seq *domain.Sequencer, stocks *domain.StockRegistry, history *store.TradeHistory, logger *slog.Logger) *Exchange {
	return &Exchange{
		seq:     seq,
		logger:  logger,
		stocks:  stocks,
		history: history,
		markets: make(map[string]*Market),
	}
}

// market returns the market for symbol, creating and registering it if it
// does not exist yet.
func (e *Exchange) market(symbol string) *Market {
	e.mu.RLock()
	m, ok := e.markets[symbol]
	e.mu.RUnlock()
	if ok {
		return m
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// Double-check after acquiring write lock.
	if m, ok = e.markets[symbol]; ok {
		return m
	}
	m = NewMarket(symbol, e.seq, e.logger)
	e.markets[symbol] = m
	e.stocks.Register(symbol)
	return m
}

// lookup returns the market for symbol without creating one.
func (e *Exchange) lookup(symbol string) (*Market, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.markets[symbol]
	return m, ok
}

func validateOrder(o *domain.Order, side domain.Side) error {
	if o.Side != side {
		return &domain.ValidationError{Message: "order side does not match placement"}
	}
	if o.Symbol == "" {
		return &domain.ValidationError{Message: "order symbol is required"}
	}
	if o.Price <= 0 {
		return domain.ErrUnpricedOrder
	}
	if o.Quantity <= 0 || o.Remaining <= 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// PlaceBuyOrder validates the order and records it on its stock's buy book.
func (e *Exchange) PlaceBuyOrder(o *domain.Order) error {
	if err := validateOrder(o, domain.SideBuy); err != nil {
		return err
	}
	e.market(o.Symbol).PlaceBuyOrder(o)
	return nil
}

// PlaceSellOrder validates the order and records it on its stock's sell book.
func (e *Exchange) PlaceSellOrder(o *domain.Order) error {
	if err := validateOrder(o, domain.SideSell); err != nil {
		return err
	}
	e.market(o.Symbol).PlaceSellOrder(o)
	return nil
}

// CancelBuyOrder removes the structurally matching buy order. Cancelling an
// absent order, or one for a symbol with no market, is a benign no-op.
func (e *Exchange) CancelBuyOrder(o *domain.Order) {
	if m, ok := e.lookup(o.Symbol); ok {
		m.CancelBuyOrder(o)
	}
}

// CancelSellOrder removes the structurally matching sell order. Cancelling
// an absent order, or one for a symbol with no market, is a benign no-op.
func (e *Exchange) CancelSellOrder(o *domain.Order) {
	if m, ok := e.lookup(o.Symbol); ok {
		m.CancelSellOrder(o)
	}
}

// DoClearing clears every market, in symbol order so runs are reproducible,
// and appends the produced trades to the global history in per-market
// execution order. Because markets drain one after another, the global
// history stays tick-ordered. The trades of this cycle are returned.
func (e *Exchange) DoClearing() []domain.TickEvent[*domain.Trade] {
	e.mu.RLock()
	markets := make([]*Market, 0, len(e.markets))
	for _, m := range e.markets {
		markets = append(markets, m)
	}
	e.mu.RUnlock()

	sort.Slice(markets, func(i, j int) bool {
		return markets[i].Symbol() < markets[j].Symbol()
	})

	var all []domain.TickEvent[*domain.Trade]
	for _, m := range markets {
		trades := m.DoClearing()
		if len(trades) == 0 {
			continue
		}
		e.history.Append(trades...)
		all = append(all, trades...)
	}
	return all
}

// BestBid returns the best bid price for symbol, false when the symbol has
// no market or no resting bids.
func (e *Exchange) BestBid(symbol string) (int64, bool) {
	m, ok := e.lookup(symbol)
	if !ok {
		return 0, false
	}
	return m.BestBid()
}

// BestOffer returns the best offer price for symbol, false when the symbol
// has no market or no resting offers.
func (e *Exchange) BestOffer(symbol string) (int64, bool) {
	m, ok := e.lookup(symbol)
	if !ok {
		return 0, false
	}
	return m.BestOffer()
}

// BuyDepth returns up to n aggregated buy price levels for symbol.
func (e *Exchange) BuyDepth(symbol string, n int) []PriceLevel {
	m, ok := e.lookup(symbol)
	if !ok {
		return nil
	}
	return m.BuyDepth(n)
}

// SellDepth returns up to n aggregated sell price levels for symbol.
func (e *Exchange) SellDepth(symbol string, n int) []PriceLevel {
	m, ok := e.lookup(symbol)
	if !ok {
		return nil
	}
	return m.SellDepth(n)
}

// TradeHistory returns the executed trades involving symbol, oldest first.
func (e *Exchange) TradeHistory(symbol string) []domain.TickEvent[*domain.Trade] {
	return e.history.BySymbol(symbol)
}

// ListedStocks returns every symbol that has had a market created, in
// lexical order.
func (e *Exchange) ListedStocks() []string {
	return e.stocks.Symbols()
}

package engine

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/efreitasn/marketsim/internal/domain"
)

// Market owns the buy and sell books for a single stock and runs the
// clearing algorithm. Markets for different stocks hold disjoint state and
// may clear concurrently; everything owned by one market is guarded by its
// mutex. Trader ledgers are shared across markets and serialise themselves.
type Market struct {
	symbol string
	seq    *domain.Sequencer
	logger *slog.Logger

	mu       sync.Mutex
	buyBook  *OrderBook
	sellBook *OrderBook
}

// NewMarket creates a market for symbol, stamping all events with seq.
func NewMarket(symbol string, seq *domain.Sequencer, logger *slog.Logger) *Market {
	return &Market{
		symbol:   symbol,
		seq:      seq,
		logger:   logger,
		buyBook:  NewOrderBook(domain.SideBuy, seq),
		sellBook: NewOrderBook(domain.SideSell, seq),
	}
}

// Symbol returns the stock this market trades.
func (m *Market) Symbol() string { return m.symbol }

// PlaceBuyOrder records the order on the buy book.
func (m *Market) PlaceBuyOrder(o *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buyBook.Record(o)
}

// PlaceSellOrder records the order on the sell book.
func (m *Market) PlaceSellOrder(o *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sellBook.Record(o)
}

// CancelBuyOrder removes the structurally matching order from the buy book.
// A no-op when absent.
func (m *Market) CancelBuyOrder(o *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buyBook.Cancel(o)
}

// CancelSellOrder removes the structurally matching order from the sell
// book. A no-op when absent.
func (m *Market) CancelSellOrder(o *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sellBook.Cancel(o)
}

// BestBid returns the price of the highest-ranked buy order, false if none.
func (m *Market) BestBid() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.buyBook.Best()
	if !ok {
		return 0, false
	}
	return o.Price, true
}

// BestOffer returns the price of the highest-ranked sell order, false if none.
func (m *Market) BestOffer() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.sellBook.Best()
	if !ok {
		return 0, false
	}
	return o.Price, true
}

// BuyDepth returns up to n aggregated buy-side price levels.
func (m *Market) BuyDepth(n int) []PriceLevel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buyBook.Depth(n)
}

// SellDepth returns up to n aggregated sell-side price levels.
func (m *Market) SellDepth(n int) []PriceLevel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sellBook.Depth(n)
}

// DoClearing repeatedly matches the best bid against the best offer until
// either book empties or the spread opens (best bid below best offer), so
// the books are never left crossed.
//
// Guards run before each execution: a seller whose remaining quantity
// exceeds their actual holding, and a buyer whose cash cannot cover the
// candidate trade in full, are force-cancelled without producing a trade or
// a history entry. The execution price is always the resting sell order's
// limit (the maker price). Fully filled orders leave their book
// immediately. Returned trades are in execution order, which equals tick
// order.
func (m *Market) DoClearing() []domain.TickEvent[*domain.Trade] {
	m.mu.Lock()
	defer m.mu.Unlock()

	var executed []domain.TickEvent[*domain.Trade]
	for {
		buyEntry, ok := m.buyBook.bestEntry()
		if !ok {
			break
		}
		sellEntry, ok := m.sellBook.bestEntry()
		if !ok {
			break
		}
		buy, sell := buyEntry.Event, sellEntry.Event
		if buy.Price < sell.Price {
			break
		}

		quantity := min(buy.Remaining, sell.Remaining)
		price := sell.Price

		// Inventory guard: the seller's holding may have shrunk since the
		// order was placed (out-of-band transfer or a fill in another market).
		if sell.Remaining > sell.Trader.Holding(m.symbol) {
			m.sellBook.remove(sellEntry)
			m.logger.Info("force-cancelled sell order",
				slog.String("symbol", m.symbol),
				slog.String("order_id", sell.OrderID),
				slog.String("trader_id", sell.Trader.TraderID),
				slog.String("reason", "insufficient_inventory"))
			continue
		}

		// Cash guard: the buyer must afford the candidate trade in full at
		// the maker price.
		if buy.Trader.Cash() < quantity*price {
			m.buyBook.remove(buyEntry)
			m.logger.Info("force-cancelled buy order",
				slog.String("symbol", m.symbol),
				slog.String("order_id", buy.OrderID),
				slog.String("trader_id", buy.Trader.TraderID),
				slog.String("reason", "insufficient_funds"))
			continue
		}

		trade := domain.NewTrade(buy, sell, quantity, price)
		te, err := trade.Execute(m.seq)
		if err != nil {
			// Settlement is transactional, so nothing was applied. The guards
			// make this unreachable unless a shared ledger changed between
			// guard and commit; drop the offending order and carry on so the
			// loop cannot wedge on it.
			m.logger.Error("trade execution failed",
				slog.String("symbol", m.symbol),
				slog.String("trade_id", trade.TradeID),
				slog.String("error", err.Error()))
			var tradeErr *domain.TradeError
			if errors.As(err, &tradeErr) && tradeErr.TraderID == sell.Trader.TraderID {
				m.sellBook.remove(sellEntry)
			} else {
				m.buyBook.remove(buyEntry)
			}
			continue
		}
		executed = append(executed, te)

		if buy.Filled() {
			m.buyBook.remove(buyEntry)
		}
		if sell.Filled() {
			m.sellBook.remove(sellEntry)
		}
	}
	return executed
}
